package uploads

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartaviation/site/internal/core/domain"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := New(dir, "/uploads/")

	url, err := s.Save(context.Background(), pngBytes(t), "Foto Principal.PNG")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	name := strings.TrimPrefix(url, "/uploads/")
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
}

func TestStore_Save_UniqueNames(t *testing.T) {
	s := New(t.TempDir(), "/uploads")
	data := pngBytes(t)

	a, err := s.Save(context.Background(), data, "same.png")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	b, err := s.Save(context.Background(), data, "same.png")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct names, got %q twice", a)
	}
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestStore_Save_ExtensionFollowsContent(t *testing.T) {
	s := New(t.TempDir(), "/uploads")
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"blob", pngBytes(t), ".png"},
		{"evil.html", pngBytes(t), ".png"},
		{"page.HTM", jpegBytes(t), ".jpg"},
		{"wrong.gif", pngBytes(t), ".png"},
		{"foto.jpeg", jpegBytes(t), ".jpeg"},
		{"foto.JPG", jpegBytes(t), ".jpg"},
	}
	for _, tc := range cases {
		url, err := s.Save(context.Background(), tc.data, tc.name)
		if err != nil {
			t.Fatalf("%s: Save returned error: %v", tc.name, err)
		}
		if !strings.HasSuffix(url, tc.want) {
			t.Errorf("%s: expected %s extension, got %q", tc.name, tc.want, url)
		}
	}
}

func TestStore_Check_RejectsSVG(t *testing.T) {
	s := New(t.TempDir(), "/uploads")
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)
	if err := s.Check(svg); !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage for svg, got %v", err)
	}
}

func TestStore_Writable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := New(dir, "/uploads")
	if err := s.Writable(); err != nil {
		t.Fatalf("Writable returned error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected scratch file to be removed, found %d entries", len(entries))
	}

	blocked := New(filepath.Join(t.TempDir(), "file"), "/uploads")
	if err := os.WriteFile(blocked.Dir(), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := blocked.Writable(); err == nil {
		t.Fatalf("expected error when the upload path is a file")
	}
}

func TestStore_Check_RejectsNonImages(t *testing.T) {
	s := New(t.TempDir(), "/uploads")

	cases := map[string][]byte{
		"text":      []byte("just some text"),
		"pdf":       []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"),
		"truncated": pngBytes(t)[:20],
	}
	for name, data := range cases {
		if err := s.Check(data); !errors.Is(err, domain.ErrInvalidImage) {
			t.Errorf("%s: expected ErrInvalidImage, got %v", name, err)
		}
	}
}

func TestStore_Save_RejectedWritesNothing(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "/uploads")
	if _, err := s.Save(context.Background(), []byte("nope"), "x.png"); !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected empty dir, got %d entries", len(entries))
	}
}
