package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"shopkart/internal/model"
	"shopkart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ProductHandler serves catalogue endpoints.
type ProductHandler struct {
	products service.ProductService
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// Create handles POST /product. The body is multipart form data with the
// product fields plus up to five images under the photos key.
func (h *ProductHandler) Create(c *gin.Context) {
	form, photos, err := h.parseProductForm(c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	defer closePhotos(photos)

	product, err := h.products.Create(c.Request.Context(), currentUser(c), form, uploads(photos))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"product": product,
	})
}

// List handles GET /products with search, pagination and field filters.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
	})
}

// Get handles GET /product/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// Update handles PUT /product/:id. Photos are optional; when present they
// replace the stored ones.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	form, photos, err := h.parseProductForm(c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	defer closePhotos(photos)

	product, err := h.products.Update(c.Request.Context(), currentUser(c), id, form, uploads(photos))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// Delete handles DELETE /product/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted",
	})
}

// Review handles PUT /product/:id/review.
func (h *ProductHandler) Review(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.products.Review(c.Request.Context(), currentUser(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// openPhoto pairs an opened multipart file with its upload metadata.
type openPhoto struct {
	file   multipart.File
	upload service.PhotoUpload
}

func (h *ProductHandler) parseProductForm(c *gin.Context) (service.ProductForm, []openPhoto, error) {
	form := service.ProductForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Brand:       c.PostForm("brand"),
		CategoryID:  c.PostForm("category"),
	}

	if raw := c.PostForm("price"); raw != "" {
		price, err := strconv.Atoi(raw)
		if err != nil {
			return form, nil, err
		}
		form.Price = price
	}
	if raw := c.PostForm("stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return form, nil, err
		}
		form.Stock = &stock
	}

	multipartForm, err := c.MultipartForm()
	if err != nil && err != http.ErrNotMultipart {
		return form, nil, err
	}

	var photos []openPhoto
	if multipartForm != nil {
		for _, header := range multipartForm.File["photos"] {
			file, err := header.Open()
			if err != nil {
				closePhotos(photos)
				return form, nil, err
			}
			photos = append(photos, openPhoto{
				file: file,
				upload: service.PhotoUpload{
					Name:        header.Filename,
					ContentType: header.Header.Get("Content-Type"),
					Body:        file,
				},
			})
		}
	}

	return form, photos, nil
}

func uploads(photos []openPhoto) []service.PhotoUpload {
	out := make([]service.PhotoUpload, len(photos))
	for i, photo := range photos {
		out[i] = photo.upload
	}
	return out
}

func closePhotos(photos []openPhoto) {
	for _, photo := range photos {
		photo.file.Close()
	}
}
