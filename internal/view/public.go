// Package view turns site state into what a visitor or an administrator sees.
// Rendering is a pure function of state; transitions live in the callers.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/smartaviation/site/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var publicTemplate = template.Must(template.ParseFS(templateFS, "templates/public.html"))

const (
	DefaultProductTag   = "Projeto SmartAviation"
	EmptyPortfolioText  = "Nenhum produto cadastrado ainda."
	LoadFailedText      = "Não foi possível carregar os dados do site. Tente novamente mais tarde."
	MissingFieldsText   = "Preencha todos os campos obrigatórios para avançar."
	LeadSubmittedText   = "Solicitação enviada com sucesso! Em breve entraremos em contato."
	SubmitFailedText    = "Não foi possível enviar sua solicitação. Tente novamente."
	contactSectionTitle = "Solicite um orçamento"
)

// Phase is where the page is in its load cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseRendered
	PhaseError
)

// Feedback is a transient status line shown near the contact form.
type Feedback struct {
	Message string
	IsError bool
}

// LeadForm holds the contact form values, kept after a failed submit.
type LeadForm struct {
	Name    string
	Phone   string
	Email   string
	Company string
	Address string
	Message string
}

// Missing reports whether any required field is blank.
func (f LeadForm) Missing() bool {
	for _, v := range []string{f.Name, f.Phone, f.Email, f.Company, f.Address} {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// PublicState is everything the public page depends on.
type PublicState struct {
	Phase    Phase
	Content  domain.Content
	Form     LeadForm
	Feedback Feedback
	Year     int
}

// ProductCard is one rendered portfolio entry.
type ProductCard struct {
	ID          string
	Name        string
	Tag         string
	Description string
	MainImage   string
	MainAlt     string
	Gallery     []GalleryImage
}

type GalleryImage struct {
	URL string
	Alt string
}

// PublicView is the page description handed to the template.
type PublicView struct {
	Loading      bool
	LoadError    string
	Hero         domain.Hero
	Banner       domain.Banner
	Products     []ProductCard
	EmptyText    string
	ContactTitle string
	Form         LeadForm
	Feedback     Feedback
	Year         int
}

// BuildPublic maps state to a page description.
func BuildPublic(s PublicState) PublicView {
	v := PublicView{
		Loading:      s.Phase == PhaseIdle || s.Phase == PhaseLoading,
		Hero:         s.Content.Hero,
		Banner:       s.Content.Banner,
		ContactTitle: contactSectionTitle,
		Form:         s.Form,
		Feedback:     s.Feedback,
		Year:         s.Year,
	}
	if s.Phase == PhaseError {
		v.LoadError = LoadFailedText
		return v
	}
	if len(s.Content.Products) == 0 {
		v.EmptyText = EmptyPortfolioText
	}
	for _, p := range s.Content.Products {
		v.Products = append(v.Products, card(p))
	}
	return v
}

func card(p domain.Product) ProductCard {
	tag := strings.TrimSpace(p.Tag)
	if tag == "" {
		tag = DefaultProductTag
	}
	c := ProductCard{
		ID:          p.ID,
		Name:        p.Name,
		Tag:         tag,
		Description: p.Description,
		MainImage:   p.MainImage,
		MainAlt:     p.Name,
	}
	for i, url := range p.Sanitized().Gallery {
		c.Gallery = append(c.Gallery, GalleryImage{
			URL: url,
			Alt: fmt.Sprintf("%s - detalhe %d", p.Name, i+1),
		})
	}
	return c
}

// RenderPublic writes the public page as HTML.
func RenderPublic(w io.Writer, s PublicState) error {
	return publicTemplate.Execute(w, BuildPublic(s))
}
