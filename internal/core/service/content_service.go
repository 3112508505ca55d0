package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/ports"
)

type ContentService struct {
	store ports.DocumentStore
	log   zerolog.Logger
}

func NewContentService(store ports.DocumentStore, log zerolog.Logger) *ContentService {
	return &ContentService{store: store, log: log}
}

// GetContent returns hero, banner and the sanitized portfolio.
func (s *ContentService) GetContent(ctx context.Context) (*domain.Content, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Content{
		Hero:     doc.Hero,
		Banner:   doc.Banner,
		Products: sanitizeProducts(doc.Products),
	}, nil
}

func (s *ContentService) UpdateHero(ctx context.Context, hero domain.Hero) (*domain.Hero, error) {
	hero.Title = strings.TrimSpace(hero.Title)
	hero.Subtitle = strings.TrimSpace(hero.Subtitle)
	if hero.Title == "" || hero.Subtitle == "" {
		return nil, domain.NewValidationError("Título e subtítulo são obrigatórios.")
	}

	err := s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Hero = hero
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Msg("hero updated")
	return &hero, nil
}

func (s *ContentService) UpdateBanner(ctx context.Context, banner domain.Banner) (*domain.Banner, error) {
	banner.Title = strings.TrimSpace(banner.Title)
	banner.Description = strings.TrimSpace(banner.Description)
	if banner.Title == "" || banner.Description == "" {
		return nil, domain.NewValidationError("Chamada e descrição são obrigatórias.")
	}

	err := s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Banner = banner
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Msg("banner updated")
	return &banner, nil
}

func sanitizeProducts(in []domain.Product) []domain.Product {
	out := make([]domain.Product, len(in))
	for i, p := range in {
		out[i] = p.Sanitized()
	}
	return out
}
