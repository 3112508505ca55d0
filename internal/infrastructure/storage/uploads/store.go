// Package uploads stores portfolio images on the local filesystem.
package uploads

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"

	"github.com/smartaviation/site/internal/core/domain"
)

const defaultExt = ".jpg"

// raster formats imaging can decode; other image/* types are accepted on the
// sniff alone (ico, webp...).
var decodable = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
}

// extensions a stored file may keep from its original name, with the type
// the content has to sniff as.
var imageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".ico":  "image/x-icon",
	".avif": "image/avif",
}

// Store writes files into dir and exposes them under urlPrefix.
type Store struct {
	dir       string
	urlPrefix string
}

func New(dir, urlPrefix string) *Store {
	return &Store{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (s *Store) Dir() string { return s.dir }

// EnsureDir creates the upload directory.
func (s *Store) EnsureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// Writable creates and removes a scratch file in the upload directory.
func (s *Store) Writable() error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.dir, ".ready-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return os.Remove(name)
}

// Check sniffs the content and rejects anything that is not an image.
func (s *Store) Check(data []byte) error {
	_, err := detect(data)
	return err
}

// detect returns the sniffed type of an acceptable image. SVG is refused
// since it is served from the site's own origin and may carry script.
func detect(data []byte) (*mimetype.MIME, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") || mt.Is("image/svg+xml") {
		return nil, domain.ErrInvalidImage
	}
	base := strings.SplitN(mt.String(), ";", 2)[0]
	if decodable[base] {
		if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
			return nil, domain.ErrInvalidImage
		}
	}
	return mt, nil
}

func (s *Store) Save(ctx context.Context, data []byte, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	mt, err := detect(data)
	if err != nil {
		return "", err
	}
	if err := s.EnsureDir(); err != nil {
		return "", fmt.Errorf("%w: upload dir: %v", domain.ErrStorage, err)
	}

	name := ulid.Make().String() + extension(originalName, mt)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write upload: %v", domain.ErrStorage, err)
	}
	return s.urlPrefix + "/" + name, nil
}

// extension keeps the original extension only when it names the sniffed
// type, so the static file server never sees a non-image suffix.
func extension(name string, mt *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if want, ok := imageExts[ext]; ok && mt.Is(want) {
		return ext
	}
	if sniffed := mt.Extension(); sniffed != "" {
		return sniffed
	}
	return defaultExt
}
