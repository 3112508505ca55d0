package client_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartaviation/site/internal/api"
	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/service"
	"github.com/smartaviation/site/internal/infrastructure/session"
	"github.com/smartaviation/site/internal/infrastructure/storage/jsonfile"
	"github.com/smartaviation/site/internal/infrastructure/storage/uploads"
	"github.com/smartaviation/site/pkg/client"
)

func startSite(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()

	store := jsonfile.New(filepath.Join(dir, "data.json"))
	doc, err := service.SeedDocument("Admin", "admin@smartaviation.com", "s3cret")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Write(context.Background(), doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	images := uploads.New(filepath.Join(dir, "uploads"), "/uploads")
	sessions := session.NewMemoryStore(0)
	log := zerolog.Nop()

	e := api.NewRouter(api.Services{
		Auth:     service.NewAuthService(store, sessions, log),
		Content:  service.NewContentService(store, log),
		Products: service.NewProductService(store, images, log),
		Requests: service.NewRequestService(store, log),
		Users:    service.NewUserService(store, sessions, log),
	}, api.Options{UploadDir: images.Dir(), MaxUploadBytes: 1 << 20, BodyLimit: "2M", CORSOrigins: []string{"*"}}, log)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func pngFile(t *testing.T, name string) client.File {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return client.File{Name: name, Data: buf.Bytes()}
}

func TestClient_EndToEnd(t *testing.T) {
	srv := startSite(t)
	ctx := context.Background()
	c := client.New(srv.URL + "/api")

	if _, err := c.Login(ctx, "admin@smartaviation.com", "wrong"); !client.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 for bad password, got %v", err)
	}

	res, err := c.Login(ctx, "admin@smartaviation.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if c.Session().Token != res.Token || c.Session().User.Email != "admin@smartaviation.com" {
		t.Fatalf("session not stored: %+v", c.Session())
	}

	if _, err := c.UpdateBanner(ctx, domain.Banner{Title: "Nova chamada", Description: "Texto"}); err != nil {
		t.Fatalf("UpdateBanner: %v", err)
	}

	p, err := c.CreateProduct(ctx, client.ProductForm{
		Name: "Hangar", Description: "Projeto de hangar",
		MainImage: pngFile(t, "main.png"),
		Gallery:   [domain.GallerySize]client.File{pngFile(t, "a.png"), pngFile(t, "b.png"), pngFile(t, "c.png")},
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	content, err := c.GetContent(ctx)
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if content.Banner.Title != "Nova chamada" || len(content.Products) != 1 || content.Products[0].ID != p.ID {
		t.Fatalf("unexpected content: %+v", content)
	}

	lead, err := c.SubmitRequest(ctx, client.LeadInput{Name: "Ana", Phone: "1", Email: "a@b.c", Company: "Aero", Address: "Rua"})
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	if _, err := c.UpdateRequestStatus(ctx, lead.ID, domain.StatusInProgress); err != nil {
		t.Fatalf("UpdateRequestStatus: %v", err)
	}
	requests, err := c.GetRequests(ctx)
	if err != nil || len(requests) != 1 || requests[0].Status != domain.StatusInProgress {
		t.Fatalf("unexpected requests %+v (%v)", requests, err)
	}

	u, err := c.CreateUser(ctx, client.NewUser{Name: "Bia", Email: "bia@x.com", Role: "Editor", Password: "pw"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := c.CreateUser(ctx, client.NewUser{Name: "Bia", Email: "BIA@x.com", Role: "Editor", Password: "pw"}); !client.IsStatus(err, http.StatusConflict) {
		t.Fatalf("expected 409, got %v", err)
	}
	if err := c.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := c.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if err := c.DeleteProduct(ctx, p.ID); !client.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 on second delete, got %v", err)
	}

	if err := c.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := c.GetUsers(ctx); err != client.ErrNoSession {
		t.Fatalf("expected client.ErrNoSession after logout, got %v", err)
	}
}
