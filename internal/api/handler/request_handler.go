package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartaviation/site/internal/api/metrics"
	"github.com/smartaviation/site/internal/core/ports"
)

// RequestHandler handles lead requests: public submission and admin triage.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Submit records a lead from the public contact form.
//
// @Summary      Submit a lead request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      submitRequestRequest  true  "Contact details"
// @Success      201   {object}  domain.LeadRequest
// @Failure      400   {object}  errorResponse
// @Router       /requests [post]
func (h *RequestHandler) Submit(c echo.Context) error {
	var req submitRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Requisição inválida.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lead, err := h.service.SubmitRequest(c.Request().Context(), ports.SubmitRequestInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Company: req.Company,
		Address: req.Address,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	metrics.LeadsSubmittedTotal.WithLabelValues("api").Inc()
	return c.JSON(http.StatusCreated, lead)
}

// List returns every lead, newest first.
//
// @Summary      List lead requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.LeadRequest
// @Failure      401  {object}  errorResponse
// @Router       /requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	leads, err := h.service.ListRequests(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leads)
}

// UpdateStatus moves a lead to a new status.
//
// @Summary      Update lead status
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Request id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.LeadRequest
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /requests/{id} [patch]
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Requisição inválida.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lead, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	metrics.RequestStatusChangesTotal.WithLabelValues(string(lead.Status)).Inc()
	return c.JSON(http.StatusOK, lead)
}
