package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/ports"
)

// ContentHandler serves the hero, banner and aggregated public content.
type ContentHandler struct {
	service ports.ContentService
}

func NewContentHandler(service ports.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// Get returns hero, banner and products in one payload.
//
// @Summary      Public site content
// @Tags         content
// @Produce      json
// @Success      200  {object}  domain.Content
// @Router       /content [get]
func (h *ContentHandler) Get(c echo.Context) error {
	content, err := h.service.GetContent(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content)
}

// UpdateHero replaces the hero block.
//
// @Summary      Update hero
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      heroRequest  true  "Hero text"
// @Success      200   {object}  domain.Hero
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /hero [put]
func (h *ContentHandler) UpdateHero(c echo.Context) error {
	var req heroRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Requisição inválida.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hero, err := h.service.UpdateHero(c.Request().Context(), domain.Hero{Title: req.Title, Subtitle: req.Subtitle})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hero)
}

// UpdateBanner replaces the promotional callout.
//
// @Summary      Update banner
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bannerRequest  true  "Banner text"
// @Success      200   {object}  domain.Banner
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /banner [put]
func (h *ContentHandler) UpdateBanner(c echo.Context) error {
	var req bannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Requisição inválida.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	banner, err := h.service.UpdateBanner(c.Request().Context(), domain.Banner{Title: req.Title, Description: req.Description})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, banner)
}
