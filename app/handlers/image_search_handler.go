package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/helpers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/other"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/services"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/breadcrumb"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

const (
	maxUploadSize  = 10 << 20
	imageFormField = "imageFile"

	MsgMissingImage = "Vui lòng chọn một hình ảnh."
	MsgNoMatch      = "Không tìm thấy sản phẩm tương tự. Vui lòng thử với hình ảnh khác."
	MsgNotAFlower   = "Ảnh không hợp lệ hoặc không phải ảnh hoa."
)

type imageSearchForm struct {
	Limit int `validate:"min=1,max=50"`
}

type ImageSearchHandler struct {
	render       *render.Render
	searcher     services.ImageSearcher
	validator    *validator.Validate
	defaultLimit int
}

func NewImageSearchHandler(r *render.Render, searcher services.ImageSearcher, v *validator.Validate, defaultLimit int) *ImageSearchHandler {
	if defaultLimit <= 0 {
		defaultLimit = services.DefaultSearchLimit
	}
	return &ImageSearchHandler{render: r, searcher: searcher, validator: v, defaultLimit: defaultLimit}
}

func (h *ImageSearchHandler) newPageData(r *http.Request) *other.ImageSearchPageData {
	data := &other.ImageSearchPageData{
		BasePageData: other.BasePageData{
			Title:       "Tìm kiếm bằng hình ảnh",
			Breadcrumbs: breadcrumb.With(breadcrumb.Breadcrumb{Name: "Tìm kiếm bằng hình ảnh", URL: "/image-search"}),
		},
		Results: []other.ImageSearchResult{},
		Limit:   h.defaultLimit,
	}
	helpers.PopulateBaseData(r, &data.BasePageData)
	return data
}

func (h *ImageSearchHandler) renderInput(w http.ResponseWriter, data *other.ImageSearchPageData, status, message string) {
	data.MessageStatus = status
	data.Message = message
	_ = h.render.HTML(w, http.StatusOK, "image_search", data)
}

func (h *ImageSearchHandler) Index(w http.ResponseWriter, r *http.Request) {
	_ = h.render.HTML(w, http.StatusOK, "image_search", h.newPageData(r))
}

// parseLimit returns the validated result limit, or a user-facing message.
func (h *ImageSearchHandler) parseLimit(raw string) (int, string) {
	if raw == "" {
		return h.defaultLimit, ""
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "Số lượng kết quả phải là số."
	}
	if err := h.validator.Struct(imageSearchForm{Limit: limit}); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return 0, helpers.FirstValidationError(verrs)
		}
		return 0, err.Error()
	}
	return limit, ""
}

// readUpload returns nil bytes with no error when no file was sent. A body
// that cannot be read is reported as an error.
func readUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	file, header, err := r.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if header.Size == 0 {
		return nil, nil
	}
	return io.ReadAll(file)
}

func (h *ImageSearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	log := helpers.LoggerFrom(r.Context())
	data := h.newPageData(r)

	img, err := readUpload(r)
	if err != nil {
		log.Errorf("Search: failed to read upload: %v", err)
		h.renderInput(w, data, "error", fmt.Sprintf("Đã xảy ra lỗi: %v", err))
		return
	}
	if len(img) == 0 {
		h.renderInput(w, data, "error", MsgMissingImage)
		return
	}

	limit, msg := h.parseLimit(r.FormValue("limit"))
	if msg != "" {
		h.renderInput(w, data, "error", msg)
		return
	}
	data.Limit = limit

	results, err := h.searcher.Search(r.Context(), img, limit)
	if err != nil {
		log.Errorf("Search: image search failed: %v", err)
		h.renderInput(w, data, "error", fmt.Sprintf("Đã xảy ra lỗi: %v", err))
		return
	}

	switch len(results) {
	case 0:
		h.renderInput(w, data, "info", MsgNoMatch)
	case 1:
		http.Redirect(w, r, "/products/"+url.PathEscape(results[0].Slug), http.StatusSeeOther)
	default:
		data.Title = "Kết quả tìm kiếm bằng hình ảnh"
		data.Results = results
		_ = h.render.HTML(w, http.StatusOK, "image_search_results", data)
	}
}

type imageSearchAPIResponse struct {
	Success     bool                      `json:"success"`
	Message     string                    `json:"message,omitempty"`
	FlowerName  string                    `json:"flowerName,omitempty"`
	IsFlower    bool                      `json:"isFlower"`
	Probability float64                   `json:"probability,omitempty"`
	ResultCount int                       `json:"resultCount"`
	Products    []other.ImageSearchResult `json:"products,omitempty"`
	RedirectURL string                    `json:"redirectUrl,omitempty"`
}

// SearchAPI serves the same search as Search for the header widget.
func (h *ImageSearchHandler) SearchAPI(w http.ResponseWriter, r *http.Request) {
	log := helpers.LoggerFrom(r.Context())

	img, err := readUpload(r)
	if err != nil {
		helpers.LoggerFrom(r.Context()).Errorf("readUpload: %v", err)
		_ = h.render.JSON(w, http.StatusBadRequest, imageSearchAPIResponse{Message: fmt.Sprintf("Đã xảy ra lỗi: %v", err)})
		return
	}
	if len(img) == 0 {
		_ = h.render.JSON(w, http.StatusBadRequest, imageSearchAPIResponse{Message: MsgMissingImage})
		return
	}

	limit, msg := h.parseLimit(r.FormValue("limit"))
	if msg != "" {
		_ = h.render.JSON(w, http.StatusBadRequest, imageSearchAPIResponse{Message: msg})
		return
	}

	if !h.searcher.IsFlowerImage(img) {
		_ = h.render.JSON(w, http.StatusOK, imageSearchAPIResponse{Message: MsgNotAFlower})
		return
	}

	name, err := h.searcher.RecognizeFlowerName(r.Context(), img)
	if err != nil {
		log.Errorf("SearchAPI: recognition failed: %v", err)
		_ = h.render.JSON(w, http.StatusOK, imageSearchAPIResponse{Message: fmt.Sprintf("Đã xảy ra lỗi: %v", err)})
		return
	}

	results, err := h.searcher.Search(r.Context(), img, limit)
	if err != nil {
		log.Errorf("SearchAPI: image search failed: %v", err)
		_ = h.render.JSON(w, http.StatusOK, imageSearchAPIResponse{Message: fmt.Sprintf("Đã xảy ra lỗi: %v", err)})
		return
	}

	resp := imageSearchAPIResponse{
		Success:     len(results) > 0,
		FlowerName:  name,
		IsFlower:    true,
		ResultCount: len(results),
		Products:    results,
	}
	switch len(results) {
	case 0:
		resp.Message = MsgNoMatch
	case 1:
		resp.RedirectURL = "/products/" + url.PathEscape(results[0].Slug)
	}
	if len(results) > 0 {
		resp.Probability = results[0].SimilarityScore
	}
	_ = h.render.JSON(w, http.StatusOK, resp)
}

func (h *ImageSearchHandler) RecognizeAPI(w http.ResponseWriter, r *http.Request) {
	img, err := readUpload(r)
	if err != nil {
		helpers.LoggerFrom(r.Context()).Errorf("readUpload: %v", err)
		_ = h.render.JSON(w, http.StatusBadRequest, imageSearchAPIResponse{Message: fmt.Sprintf("Đã xảy ra lỗi: %v", err)})
		return
	}
	if len(img) == 0 {
		_ = h.render.JSON(w, http.StatusBadRequest, imageSearchAPIResponse{Message: MsgMissingImage})
		return
	}

	if !h.searcher.IsFlowerImage(img) {
		_ = h.render.JSON(w, http.StatusOK, imageSearchAPIResponse{Message: MsgNotAFlower})
		return
	}

	name, err := h.searcher.RecognizeFlowerName(r.Context(), img)
	if err != nil {
		helpers.LoggerFrom(r.Context()).Errorf("RecognizeAPI: recognition failed: %v", err)
		_ = h.render.JSON(w, http.StatusOK, imageSearchAPIResponse{Message: fmt.Sprintf("Đã xảy ra lỗi: %v", err)})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, imageSearchAPIResponse{Success: true, FlowerName: name, IsFlower: true})
}
