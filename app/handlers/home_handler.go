package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/helpers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/other"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/services"
	"github.com/unrolled/render"
)

type HomeCatalogBuilder interface {
	BuildHomePage(ctx context.Context, now time.Time) (*services.HomeCatalog, error)
}

type HomeHandler struct {
	render  *render.Render
	catalog HomeCatalogBuilder
	now     func() time.Time
}

func NewHomeHandler(r *render.Render, catalog HomeCatalogBuilder) *HomeHandler {
	return &HomeHandler{render: r, catalog: catalog, now: time.Now}
}

// Home always answers 200. Any failure while assembling the catalog,
// panics included, falls back to an empty page with a zero cart badge.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	catalog, ok := h.buildCatalog(r)

	data := &other.HomePageData{
		BasePageData: other.BasePageData{Title: "Trang chủ"},
		Categories:   catalog.Categories,
		NewProducts:  catalog.NewProducts,
		BestSellers:  catalog.BestSellers,
	}
	helpers.PopulateBaseData(r, &data.BasePageData)
	if !ok {
		data.CartCount = 0
	}

	_ = h.render.HTML(w, http.StatusOK, "home", data)
}

func (h *HomeHandler) buildCatalog(r *http.Request) (catalog *services.HomeCatalog, ok bool) {
	log := helpers.LoggerFrom(r.Context())
	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("Home: panic while building home page: %v", rec)
			catalog, ok = services.EmptyHomeCatalog(), false
		}
	}()

	catalog, err := h.catalog.BuildHomePage(r.Context(), h.now())
	if err != nil || catalog == nil {
		log.Errorf("Home: failed to build home page: %v", err)
		return services.EmptyHomeCatalog(), false
	}
	return catalog, true
}
