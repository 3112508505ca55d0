package handler

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartaviation/site/internal/api/metrics"
	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/ports"
	"github.com/smartaviation/site/internal/view"
)

// PublicHandler renders the marketing page and accepts the HTML contact form.
type PublicHandler struct {
	content  ports.ContentService
	requests ports.RequestService
	log      zerolog.Logger
	now      func() time.Time
}

func NewPublicHandler(content ports.ContentService, requests ports.RequestService, log zerolog.Logger) *PublicHandler {
	return &PublicHandler{content: content, requests: requests, log: log, now: time.Now}
}

// Page renders GET /.
func (h *PublicHandler) Page(c echo.Context) error {
	return h.render(c, view.LeadForm{}, view.Feedback{})
}

// Contact handles POST /contato. The page is rendered again with the outcome;
// the form keeps its values when the submission fails.
func (h *PublicHandler) Contact(c echo.Context) error {
	form := view.LeadForm{
		Name:    c.FormValue("name"),
		Phone:   c.FormValue("phone"),
		Email:   c.FormValue("email"),
		Company: c.FormValue("company"),
		Address: c.FormValue("address"),
		Message: c.FormValue("message"),
	}
	if form.Missing() {
		return h.render(c, form, view.Feedback{Message: view.MissingFieldsText, IsError: true})
	}

	_, err := h.requests.SubmitRequest(c.Request().Context(), ports.SubmitRequestInput{
		Name:    form.Name,
		Phone:   form.Phone,
		Email:   form.Email,
		Company: form.Company,
		Address: form.Address,
		Message: form.Message,
	})
	if err != nil {
		msg := view.SubmitFailedText
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			msg = verr.Message
		} else {
			h.log.Error().Err(err).Msg("contact form submission failed")
		}
		return h.render(c, form, view.Feedback{Message: msg, IsError: true})
	}

	metrics.LeadsSubmittedTotal.WithLabelValues("site").Inc()
	return h.render(c, view.LeadForm{}, view.Feedback{Message: view.LeadSubmittedText})
}

func (h *PublicHandler) render(c echo.Context, form view.LeadForm, fb view.Feedback) error {
	state := view.PublicState{
		Phase:    view.PhaseRendered,
		Form:     form,
		Feedback: fb,
		Year:     h.now().Year(),
	}
	status := http.StatusOK

	content, err := h.content.GetContent(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("public page: load content")
		state.Phase = view.PhaseError
		status = http.StatusServiceUnavailable
	} else {
		state.Content = *content
	}

	var buf bytes.Buffer
	if err := view.RenderPublic(&buf, state); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}
