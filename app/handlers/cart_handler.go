package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/helpers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/other"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/services"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/breadcrumb"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/sessions"
	"github.com/unrolled/render"
)

type CartHandler struct {
	render   *render.Render
	sessions sessions.SessionStore
	cartSvc  *services.CartService
	now      func() time.Time
}

func NewCartHandler(r *render.Render, s sessions.SessionStore, cartSvc *services.CartService) *CartHandler {
	return &CartHandler{render: r, sessions: s, cartSvc: cartSvc, now: time.Now}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	log := helpers.LoggerFrom(r.Context())

	data := &other.CartPageData{
		BasePageData: other.BasePageData{
			Title:       "Giỏ hàng",
			Breadcrumbs: breadcrumb.With(breadcrumb.Breadcrumb{Name: "Giỏ hàng", URL: "/cart"}),
		},
	}
	helpers.PopulateBaseData(r, &data.BasePageData)

	visitorID, err := h.sessions.VisitorID(w, r)
	if err != nil {
		log.Warnf("GetCart: could not resolve visitor: %v", err)
		data.Cart = models.NewShoppingCart("")
		_ = h.render.HTML(w, http.StatusOK, "cart", data)
		return
	}

	cart, err := h.cartSvc.GetCart(r, visitorID)
	if err != nil {
		log.Warnf("GetCart: could not load cart for %s: %v", visitorID, err)
		cart = models.NewShoppingCart(visitorID)
		data.MessageStatus = "error"
		data.Message = "Không thể đọc giỏ hàng, giỏ hàng đã được làm mới."
	}
	data.Cart = cart

	_ = h.render.HTML(w, http.StatusOK, "cart", data)
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	log := helpers.LoggerFrom(r.Context())

	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, "/cart", "error", "Dữ liệu gửi lên không hợp lệ.")
		return
	}
	productID := r.PostFormValue("product_id")
	qty := 1
	if raw := r.PostFormValue("quantity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			helpers.RedirectWithMessage(w, r, "/cart", "error", services.ErrInvalidQuantity.Error())
			return
		}
		qty = parsed
	}

	visitorID, err := h.sessions.VisitorID(w, r)
	if err != nil {
		log.Errorf("AddToCart: could not resolve visitor: %v", err)
		helpers.RedirectWithMessage(w, r, "/cart", "error", "Không thể xác định phiên làm việc.")
		return
	}

	_, err = h.cartSvc.AddItem(r.Context(), w, r, visitorID, productID, qty, h.now())
	switch {
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrProductNotFound):
		helpers.RedirectWithMessage(w, r, "/cart", "error", err.Error())
		return
	case err != nil:
		log.Errorf("AddToCart: failed to add %s for %s: %v", productID, visitorID, err)
		helpers.RedirectWithMessage(w, r, "/cart", "error", "Không thể thêm sản phẩm vào giỏ hàng.")
		return
	}

	helpers.RedirectWithMessage(w, r, "/cart", "success", "Đã thêm sản phẩm vào giỏ hàng.")
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	log := helpers.LoggerFrom(r.Context())

	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, "/cart", "error", "Dữ liệu gửi lên không hợp lệ.")
		return
	}
	productID := r.PostFormValue("product_id")

	visitorID, err := h.sessions.VisitorID(w, r)
	if err != nil {
		log.Errorf("RemoveFromCart: could not resolve visitor: %v", err)
		helpers.RedirectWithMessage(w, r, "/cart", "error", "Không thể xác định phiên làm việc.")
		return
	}

	if _, err := h.cartSvc.RemoveItem(w, r, visitorID, productID); err != nil {
		log.Errorf("RemoveFromCart: failed to remove %s for %s: %v", productID, visitorID, err)
		helpers.RedirectWithMessage(w, r, "/cart", "error", "Không thể xóa sản phẩm khỏi giỏ hàng.")
		return
	}

	helpers.RedirectWithMessage(w, r, "/cart", "success", "Đã xóa sản phẩm khỏi giỏ hàng.")
}
