package domain

import "time"

// RequestStatus is the lifecycle state of a lead request.
type RequestStatus string

const (
	StatusNew        RequestStatus = "Novo"
	StatusInProgress RequestStatus = "Em andamento"
	StatusDone       RequestStatus = "Concluído"
)

// Valid reports whether s is one of the known statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// LeadRequest is a contact-form submission from a public visitor. Never deleted.
type LeadRequest struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Email     string        `json:"email"`
	Company   string        `json:"company"`
	Address   string        `json:"address"`
	Message   string        `json:"message"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
