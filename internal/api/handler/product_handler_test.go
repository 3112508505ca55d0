package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/ports"
)

type stubProductService struct {
	got      *ports.CreateProductInput
	deleteFn func(id string) error
}

func (s *stubProductService) ListProducts(context.Context) ([]domain.Product, error) {
	return []domain.Product{{ID: "p1", Name: "Drone"}}, nil
}

func (s *stubProductService) CreateProduct(_ context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	s.got = &in
	return &domain.Product{ID: "new", Name: in.Name, Gallery: []string{"a", "b", "c"}}, nil
}

func (s *stubProductService) DeleteProduct(_ context.Context, id string) error {
	return s.deleteFn(id)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartRequest(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for k, data := range files {
		part, err := w.CreateFormFile(k, k+".png")
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write(data)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/products", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestProductHandler_Create_ReadsAllParts(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{}
	h := NewProductHandler(stub, 1<<20)

	img := testPNG(t)
	req := multipartRequest(t,
		map[string]string{"name": "Drone", "tag": "Inspeção", "description": "Desc"},
		map[string][]byte{"mainImage": img, "gallery1": img, "gallery2": img, "gallery3": img},
	)
	rec := httptest.NewRecorder()

	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.got == nil || stub.got.Name != "Drone" || stub.got.Tag != "Inspeção" {
		t.Fatalf("unexpected input: %+v", stub.got)
	}
	if stub.got.MainImage == nil || stub.got.MainImage.Filename != "mainImage.png" {
		t.Fatalf("main image not read")
	}
	for i, g := range stub.got.Gallery {
		if g == nil || !bytes.Equal(g.Data, img) {
			t.Fatalf("gallery %d not read", i+1)
		}
	}
}

func TestProductHandler_Create_MissingFileIsNil(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{}
	h := NewProductHandler(stub, 1<<20)

	img := testPNG(t)
	req := multipartRequest(t,
		map[string]string{"name": "Drone", "description": "Desc"},
		map[string][]byte{"mainImage": img, "gallery1": img},
	)
	if err := h.Create(e.NewContext(req, httptest.NewRecorder())); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.got.Gallery[1] != nil || stub.got.Gallery[2] != nil {
		t.Fatalf("absent parts must be passed as nil")
	}
}

func TestProductHandler_Create_FileTooLarge(t *testing.T) {
	e := newEcho()
	h := NewProductHandler(&stubProductService{}, 10)

	req := multipartRequest(t, map[string]string{"name": "X"}, map[string][]byte{"mainImage": testPNG(t)})
	err := h.Create(e.NewContext(req, httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProductHandler_Delete(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{deleteFn: func(id string) error {
		if id != "p1" {
			return domain.ErrProductNotFound
		}
		return nil
	}}
	h := NewProductHandler(stub, 0)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp messageResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "Produto removido." {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("other")
	if err := h.Delete(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
