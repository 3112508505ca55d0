package domain

import "time"

// GallerySize is the number of detail images a product carries besides the main one.
const GallerySize = 3

// Product is a portfolio entry. It is immutable after creation; it can only be removed.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tag         string    `json:"tag"`
	Description string    `json:"description"`
	MainImage   string    `json:"mainImage"`
	Gallery     []string  `json:"gallery"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Sanitized returns the copy exposed to clients. Gallery is capped at GallerySize
// so hand-edited documents cannot leak extra entries.
func (p Product) Sanitized() Product {
	out := p
	if len(p.Gallery) > GallerySize {
		out.Gallery = p.Gallery[:GallerySize]
	}
	out.Gallery = append([]string{}, out.Gallery...)
	return out
}
