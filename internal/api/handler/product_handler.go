package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartaviation/site/internal/api/metrics"
	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/ports"
)

// Multipart field names of a product form.
const (
	fieldMainImage = "mainImage"
	fieldGallery   = "gallery"
)

type ProductHandler struct {
	service        ports.ProductService
	maxUploadBytes int64
}

func NewProductHandler(service ports.ProductService, maxUploadBytes int64) *ProductHandler {
	return &ProductHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// List returns the sanitized portfolio, newest first.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Create adds a portfolio item from a multipart form.
//
// @Summary      Create product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Product name"
// @Param        tag          formData  string  false  "Tag"
// @Param        description  formData  string  true   "Description"
// @Param        mainImage    formData  file    true   "Main image"
// @Param        gallery1     formData  file    true   "Gallery image 1"
// @Param        gallery2     formData  file    true   "Gallery image 2"
// @Param        gallery3     formData  file    true   "Gallery image 3"
// @Success      201  {object}  domain.Product
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	in := ports.CreateProductInput{
		Name:        c.FormValue("name"),
		Tag:         c.FormValue("tag"),
		Description: c.FormValue("description"),
	}

	mainImage, err := h.readImage(c, fieldMainImage)
	if err != nil {
		return err
	}
	in.MainImage = mainImage

	for i := range in.Gallery {
		img, err := h.readImage(c, fmt.Sprintf("%s%d", fieldGallery, i+1))
		if err != nil {
			return err
		}
		in.Gallery[i] = img
	}

	product, err := h.service.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, product)
}

// Delete removes a portfolio item by id.
//
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Produto removido."})
}

// readImage returns nil for an absent file so the service can report which
// images are missing in one message.
func (h *ProductHandler) readImage(c echo.Context, field string) (*ports.ImageInput, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Formulário inválido.").SetInternal(err)
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return nil, domain.NewValidationError(fmt.Sprintf("Arquivo %s excede o tamanho máximo permitido.", field))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	return &ports.ImageInput{Field: field, Filename: fh.Filename, Data: data}, nil
}
