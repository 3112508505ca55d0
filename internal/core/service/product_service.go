package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/ports"
)

type ProductService struct {
	store   ports.DocumentStore
	uploads ports.UploadStore
	log     zerolog.Logger
	now     func() time.Time
}

func NewProductService(store ports.DocumentStore, uploads ports.UploadStore, log zerolog.Logger) *ProductService {
	return &ProductService{store: store, uploads: uploads, log: log, now: time.Now}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeProducts(doc.Products), nil
}

// CreateProduct validates every field and image before touching disk, so a
// rejected request leaves neither files nor a record behind.
func (s *ProductService) CreateProduct(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if name == "" || description == "" {
		return nil, domain.NewValidationError("Nome e descrição são obrigatórios.")
	}

	images := make([]*ports.ImageInput, 0, 1+domain.GallerySize)
	images = append(images, in.MainImage)
	images = append(images, in.Gallery[:]...)
	for _, img := range images {
		if img == nil || len(img.Data) == 0 {
			return nil, domain.NewValidationError("Adicione todas as imagens solicitadas.")
		}
		if err := s.uploads.Check(img.Data); err != nil {
			return nil, err
		}
	}

	paths := make([]string, len(images))
	for i, img := range images {
		p, err := s.uploads.Save(ctx, img.Data, img.Filename)
		if err != nil {
			return nil, fmt.Errorf("save %s: %w", img.Field, err)
		}
		paths[i] = p
	}

	product := domain.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Tag:         strings.TrimSpace(in.Tag),
		Description: description,
		MainImage:   paths[0],
		Gallery:     paths[1:],
		CreatedAt:   s.now().UTC(),
	}

	err := s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Products = append([]domain.Product{product}, doc.Products...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product created")
	out := product.Sanitized()
	return &out, nil
}

// DeleteProduct removes the record only; uploaded files stay on disk.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		for i, p := range doc.Products {
			if p.ID == id {
				doc.Products = append(doc.Products[:i], doc.Products[i+1:]...)
				return nil
			}
		}
		return domain.ErrProductNotFound
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("product_id", id).Msg("product removed")
	return nil
}
