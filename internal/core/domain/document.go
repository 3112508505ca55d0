package domain

// Document is the whole persisted state: one JSON file with these top-level keys.
type Document struct {
	Hero     Hero          `json:"hero"`
	Banner   Banner        `json:"banner"`
	Products []Product     `json:"products"`
	Requests []LeadRequest `json:"requests"`
	Users    []User        `json:"users"`
}

// DefaultDocument is written when a store is seeded for the first time.
func DefaultDocument() *Document {
	return &Document{
		Hero: Hero{
			Title:    "Soluções inteligentes para a aviação",
			Subtitle: "Tecnologia, manutenção e consultoria para operadores que não podem parar.",
		},
		Banner: Banner{
			Title:       "Fale com um especialista",
			Description: "Conte o desafio da sua operação e receba uma proposta sob medida.",
		},
		Products: []Product{},
		Requests: []LeadRequest{},
		Users:    []User{},
	}
}

// Normalize replaces nil collections with empty ones so JSON output never holds null.
func (d *Document) Normalize() {
	if d.Products == nil {
		d.Products = []Product{}
	}
	if d.Requests == nil {
		d.Requests = []LeadRequest{}
	}
	if d.Users == nil {
		d.Users = []User{}
	}
}
