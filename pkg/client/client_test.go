package client

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartaviation/site/internal/core/domain"
)

func TestClient_ErrorMessageSources(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{"json message", http.StatusBadRequest, "application/json", `{"message":"Status inválido."}`, "Status inválido."},
		{"plain text", http.StatusBadGateway, "text/plain", "upstream down", "upstream down"},
		{"empty body", http.StatusServiceUnavailable, "", "", "Service Unavailable"},
		{"json without message", http.StatusConflict, "application/json", `{"error":"x"}`, `{"error":"x"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.contentType != "" {
					w.Header().Set("Content-Type", tc.contentType)
				}
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL).GetContent(context.Background())
			var re *RequestError
			if !errors.As(err, &re) {
				t.Fatalf("expected *RequestError, got %v", err)
			}
			if re.Status != tc.status || re.Message != tc.want {
				t.Fatalf("expected %d %q, got %d %q", tc.status, tc.want, re.Status, re.Message)
			}
		})
	}
}

func TestClient_ProtectedCallWithoutSession(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetRequests(context.Background())
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if called {
		t.Fatalf("no request may be sent without a session")
	}
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer stale" {
			t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"Sessão expirada"}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(Session{Token: "stale"})

	_, err := c.GetUsers(context.Background())
	if !IsStatus(err, http.StatusUnauthorized) || err.Error() != "Sessão expirada" {
		t.Fatalf("expected 401 Sessão expirada, got %v", err)
	}
	if c.Session().Token != "" {
		t.Fatalf("session must be cleared after 401")
	}
}

func TestClient_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(Session{Token: "t"})
	if err := c.DeleteProduct(context.Background(), "p1"); err != nil {
		t.Fatalf("expected nil for 204, got %v", err)
	}
}

func TestClient_CreateProductMultipart(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("expected multipart, got %q", r.Header.Get("Content-Type"))
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		parts := map[string]string{}
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Errorf("next part: %v", err)
				return
			}
			if p.FileName() != "" {
				parts[p.FormName()] = p.Header.Get("Content-Type")
			} else {
				b, _ := io.ReadAll(p)
				parts[p.FormName()] = string(b)
			}
		}
		if parts["name"] != "Drone" || parts["description"] != "Desc" {
			t.Errorf("unexpected fields: %v", parts)
		}
		for _, f := range []string{"mainImage", "gallery1", "gallery2", "gallery3"} {
			if parts[f] != "image/png" {
				t.Errorf("part %s: expected image/png, got %q", f, parts[f])
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"p1","name":"Drone","gallery":["a","b","c"]}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(Session{Token: "t"})
	file := File{Name: "x.png", Data: png}
	p, err := c.CreateProduct(context.Background(), ProductForm{
		Name: "Drone", Description: "Desc",
		MainImage: file, Gallery: [domain.GallerySize]File{file, file, file},
	})
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if p.ID != "p1" {
		t.Fatalf("unexpected product %+v", p)
	}
}

func TestClient_LogoutClearsEvenOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(Session{Token: "t"})
	if err := c.Logout(context.Background()); err == nil {
		t.Fatalf("expected error from failed logout")
	}
	if c.Session().Token != "" {
		t.Fatalf("session must be cleared")
	}
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "session.json")
	s := NewFileStorage(path)

	sess, err := s.Load()
	if err != nil || sess.Token != "" {
		t.Fatalf("expected empty session, got %+v %v", sess, err)
	}

	want := Session{Token: "abc", User: &domain.SessionUser{ID: "u1", Name: "Admin"}}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := NewFileStorage(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != "abc" || got.User == nil || got.User.Name != "Admin" {
		t.Fatalf("unexpected session %+v", got)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got, _ := s.Load(); got.Token != "" {
		t.Fatalf("expected cleared session")
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear must be idempotent: %v", err)
	}
}

func TestNew_TrimsBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/products") || strings.Contains(r.URL.Path, "//") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	if _, err := New(srv.URL + "/api/").GetProducts(context.Background()); err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
}
