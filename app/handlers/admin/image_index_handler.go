package admin

import (
	"net/http"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/helpers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/other"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/repositories"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/services"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/breadcrumb"
	"github.com/unrolled/render"
)

const imageIndexPath = "/admin/image-search"

type AdminHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepositoryImpl
	featureRepo repositories.ProductFeatureRepositoryImpl
	indexer     services.FeatureIndexer
}

func NewAdminHandler(
	render *render.Render,
	productRepo repositories.ProductRepositoryImpl,
	featureRepo repositories.ProductFeatureRepositoryImpl,
	indexer services.FeatureIndexer,
) *AdminHandler {
	return &AdminHandler{
		render:      render,
		productRepo: productRepo,
		featureRepo: featureRepo,
		indexer:     indexer,
	}
}

func (h *AdminHandler) populateBaseDataForAdmin(r *http.Request, base *other.BasePageData) {
	helpers.PopulateBaseData(r, base)
	base.IsAdminPage = true
}

func (h *AdminHandler) GetImageIndexPage(w http.ResponseWriter, r *http.Request) {
	log := helpers.LoggerFrom(r.Context())

	data := &other.ImageIndexPageData{}
	data.Title = "Tìm kiếm bằng hình ảnh"
	data.Breadcrumbs = breadcrumb.With(
		breadcrumb.Breadcrumb{Name: "Quản trị", URL: imageIndexPath},
		breadcrumb.Breadcrumb{Name: "Đặc trưng hình ảnh", URL: imageIndexPath},
	)
	h.populateBaseDataForAdmin(r, &data.BasePageData)

	indexed, err := h.featureRepo.Count(r.Context())
	if err != nil {
		log.Errorf("GetImageIndexPage: failed to count features: %v", err)
		data.MessageStatus = "error"
		data.Message = "Không thể tải thống kê đặc trưng."
	}
	data.IndexedCount = indexed

	active, err := h.productRepo.CountActive(r.Context())
	if err != nil {
		log.Errorf("GetImageIndexPage: failed to count products: %v", err)
	}
	data.ActiveProducts = active

	last, err := h.featureRepo.LastExtractedAt(r.Context())
	if err != nil {
		log.Errorf("GetImageIndexPage: failed to read last extraction time: %v", err)
	}
	data.LastExtractedAt = last

	_ = h.render.HTML(w, http.StatusOK, "admin/image_index", data)
}

// ExtractFeatures always redirects back to the status page with the outcome
// as a flash message.
func (h *AdminHandler) ExtractFeatures(w http.ResponseWriter, r *http.Request) {
	log := helpers.LoggerFrom(r.Context())

	msg, err := h.indexer.Trigger(r.Context())
	if err != nil {
		log.Errorf("ExtractFeatures: extraction failed: %v", err)
		helpers.RedirectWithMessage(w, r, imageIndexPath, "error", "Đã xảy ra lỗi: "+err.Error())
		return
	}

	log.Info("ExtractFeatures: extraction triggered")
	helpers.RedirectWithMessage(w, r, imageIndexPath, "success", msg)
}
