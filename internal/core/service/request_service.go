package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/ports"
)

type RequestService struct {
	store ports.DocumentStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewRequestService(store ports.DocumentStore, log zerolog.Logger) *RequestService {
	return &RequestService{store: store, log: log, now: time.Now}
}

// SubmitRequest records a public lead with status Novo, newest first.
func (s *RequestService) SubmitRequest(ctx context.Context, in ports.SubmitRequestInput) (*domain.LeadRequest, error) {
	req := domain.LeadRequest{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
		Company: strings.TrimSpace(in.Company),
		Address: strings.TrimSpace(in.Address),
		Message: strings.TrimSpace(in.Message),
	}
	for _, v := range []string{req.Name, req.Phone, req.Email, req.Company, req.Address} {
		if v == "" {
			return nil, domain.NewValidationError("Preencha todos os campos obrigatórios.")
		}
	}

	req.ID = uuid.NewString()
	req.Status = domain.StatusNew
	req.CreatedAt = s.now().UTC()

	err := s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Requests = append([]domain.LeadRequest{req}, doc.Requests...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("request_id", req.ID).Str("company", req.Company).Msg("lead submitted")
	return &req, nil
}

func (s *RequestService) ListRequests(ctx context.Context) ([]domain.LeadRequest, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return append([]domain.LeadRequest{}, doc.Requests...), nil
}

// UpdateStatus changes only the status of the matching request.
func (s *RequestService) UpdateStatus(ctx context.Context, id, status string) (*domain.LeadRequest, error) {
	next := domain.RequestStatus(strings.TrimSpace(status))
	if next == "" {
		return nil, domain.NewValidationError("Status é obrigatório.")
	}
	if !next.Valid() {
		return nil, domain.NewValidationError("Status inválido.")
	}

	var updated domain.LeadRequest
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		for i := range doc.Requests {
			if doc.Requests[i].ID == id {
				doc.Requests[i].Status = next
				updated = doc.Requests[i]
				return nil
			}
		}
		return domain.ErrRequestNotFound
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("request_id", id).Str("status", string(next)).Msg("request status updated")
	return &updated, nil
}
