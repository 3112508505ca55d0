package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/pkg/client"
)

var (
	ErrCancelled         = errors.New("operation cancelled")
	ErrIncompleteProduct = errors.New("product form is missing images")
)

// Operator-facing texts of the dashboard.
const (
	CancelledText         = "Operação cancelada."
	IncompleteProductText = "Adicione todas as imagens solicitadas."
	SessionMissingText    = "Sessão não encontrada. Faça login novamente."
)

// FeedbackText is the message shown to the operator for err. API errors
// already carry the server's message.
func FeedbackText(err error) string {
	switch {
	case errors.Is(err, ErrCancelled):
		return CancelledText
	case errors.Is(err, ErrIncompleteProduct):
		return IncompleteProductText
	case errors.Is(err, client.ErrNoSession):
		return SessionMissingText
	}
	return err.Error()
}

// AdminAPI is the subset of *client.Client the dashboard drives.
type AdminAPI interface {
	Session() client.Session
	ClearSession() error
	Login(ctx context.Context, email, password string) (*client.LoginResult, error)
	Logout(ctx context.Context) error
	GetContent(ctx context.Context) (*domain.Content, error)
	GetRequests(ctx context.Context) ([]domain.LeadRequest, error)
	GetUsers(ctx context.Context) ([]domain.PublicUser, error)
	UpdateHero(ctx context.Context, hero domain.Hero) (*domain.Hero, error)
	UpdateBanner(ctx context.Context, banner domain.Banner) (*domain.Banner, error)
	CreateProduct(ctx context.Context, form client.ProductForm) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.LeadRequest, error)
	CreateUser(ctx context.Context, in client.NewUser) (*domain.PublicUser, error)
	DeleteUser(ctx context.Context, id string) error
}

// Confirmer asks the operator before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type AdminPhase int

const (
	AdminLoginRequired AdminPhase = iota
	AdminLoading
	AdminReady
)

// AdminState is the dashboard model.
type AdminState struct {
	Phase    AdminPhase
	User     *domain.SessionUser
	Content  domain.Content
	Requests []domain.LeadRequest
	Users    []domain.PublicUser
	Feedback Feedback
}

// Admin owns the dashboard state and applies operator actions through the API.
type Admin struct {
	api     AdminAPI
	confirm Confirmer
	state   AdminState
}

func NewAdmin(api AdminAPI, confirm Confirmer) *Admin {
	a := &Admin{api: api, confirm: confirm}
	if s := api.Session(); s.Token != "" {
		a.state.Phase = AdminLoading
		a.state.User = s.User
	}
	return a
}

func (a *Admin) State() AdminState { return a.state }

// Load fetches content, requests and users together. Any failure drops the
// stored session and sends the operator back to login.
func (a *Admin) Load(ctx context.Context) error {
	if a.api.Session().Token == "" {
		a.toLogin(Feedback{})
		return client.ErrNoSession
	}
	a.state.Phase = AdminLoading

	var (
		content  *domain.Content
		requests []domain.LeadRequest
		users    []domain.PublicUser
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		content, err = a.api.GetContent(gctx)
		return err
	})
	g.Go(func() (err error) {
		requests, err = a.api.GetRequests(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = a.api.GetUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		_ = a.api.ClearSession()
		a.toLogin(Feedback{Message: err.Error(), IsError: true})
		return err
	}

	a.state.Phase = AdminReady
	a.state.Content = *content
	a.state.Requests = requests
	a.state.Users = users
	if s := a.api.Session(); s.User != nil {
		a.state.User = s.User
	}
	return nil
}

func (a *Admin) Login(ctx context.Context, email, password string) error {
	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.state.Feedback = Feedback{Message: FeedbackText(err), IsError: true}
		return err
	}
	user := res.User
	a.state.User = &user
	a.state.Feedback = Feedback{}
	return a.Load(ctx)
}

// Logout always ends in the login phase, even when the server call fails.
func (a *Admin) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	a.toLogin(Feedback{Message: "Sessão encerrada."})
	return err
}

func (a *Admin) SaveHero(ctx context.Context, hero domain.Hero) error {
	out, err := a.api.UpdateHero(ctx, hero)
	if err != nil {
		return a.fail(err)
	}
	a.state.Content.Hero = *out
	a.ok("Hero atualizado.")
	return nil
}

func (a *Admin) SaveBanner(ctx context.Context, banner domain.Banner) error {
	out, err := a.api.UpdateBanner(ctx, banner)
	if err != nil {
		return a.fail(err)
	}
	a.state.Content.Banner = *out
	a.ok("Banner atualizado.")
	return nil
}

// AddProduct refuses to send a form without all four images.
func (a *Admin) AddProduct(ctx context.Context, form client.ProductForm) error {
	if form.MainImage.Empty() {
		return a.fail(ErrIncompleteProduct)
	}
	for _, g := range form.Gallery {
		if g.Empty() {
			return a.fail(ErrIncompleteProduct)
		}
	}

	p, err := a.api.CreateProduct(ctx, form)
	if err != nil {
		return a.fail(err)
	}
	a.state.Content.Products = append([]domain.Product{*p}, a.state.Content.Products...)
	a.ok("Produto cadastrado.")
	return nil
}

func (a *Admin) RemoveProduct(ctx context.Context, id string) error {
	if !a.confirm.Confirm("Remover este produto?") {
		return ErrCancelled
	}
	if err := a.api.DeleteProduct(ctx, id); err != nil {
		return a.fail(err)
	}
	products := a.state.Content.Products[:0:0]
	for _, p := range a.state.Content.Products {
		if p.ID != id {
			products = append(products, p)
		}
	}
	a.state.Content.Products = products
	a.ok("Produto removido.")
	return nil
}

func (a *Admin) SetRequestStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	updated, err := a.api.UpdateRequestStatus(ctx, id, status)
	if err != nil {
		return a.fail(err)
	}
	for i := range a.state.Requests {
		if a.state.Requests[i].ID == id {
			a.state.Requests[i] = *updated
		}
	}
	a.ok("Status atualizado.")
	return nil
}

func (a *Admin) AddUser(ctx context.Context, in client.NewUser) error {
	u, err := a.api.CreateUser(ctx, in)
	if err != nil {
		return a.fail(err)
	}
	a.state.Users = append(a.state.Users, *u)
	a.ok("Usuário criado.")
	return nil
}

func (a *Admin) RemoveUser(ctx context.Context, id string) error {
	if !a.confirm.Confirm("Remover este usuário?") {
		return ErrCancelled
	}
	if err := a.api.DeleteUser(ctx, id); err != nil {
		return a.fail(err)
	}
	users := a.state.Users[:0:0]
	for _, u := range a.state.Users {
		if u.ID != id {
			users = append(users, u)
		}
	}
	a.state.Users = users
	a.ok("Usuário removido.")
	return nil
}

func (a *Admin) ok(msg string) {
	a.state.Feedback = Feedback{Message: msg}
}

// fail records err as feedback. A rejected or missing session returns the
// dashboard to the login phase.
func (a *Admin) fail(err error) error {
	fb := Feedback{Message: FeedbackText(err), IsError: true}
	if errors.Is(err, client.ErrNoSession) || client.IsStatus(err, http.StatusUnauthorized) {
		a.toLogin(fb)
		return err
	}
	a.state.Feedback = fb
	return err
}

func (a *Admin) toLogin(fb Feedback) {
	a.state = AdminState{Phase: AdminLoginRequired, Feedback: fb}
}

// Counters are the dashboard summary figures.
type Counters struct {
	Products    int
	Requests    int
	NewRequests int
	Users       int
}

func CountersOf(s AdminState) Counters {
	c := Counters{
		Products: len(s.Content.Products),
		Requests: len(s.Requests),
		Users:    len(s.Users),
	}
	for _, r := range s.Requests {
		if r.Status == domain.StatusNew {
			c.NewRequests++
		}
	}
	return c
}

// RenderAdmin writes the dashboard as aligned plain text.
func RenderAdmin(w io.Writer, s AdminState) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if s.Feedback.Message != "" {
		prefix := "ok"
		if s.Feedback.IsError {
			prefix = "erro"
		}
		fmt.Fprintf(tw, "[%s] %s\n\n", prefix, s.Feedback.Message)
	}

	switch s.Phase {
	case AdminLoginRequired:
		fmt.Fprintln(tw, "Faça login para acessar o painel.")
		return tw.Flush()
	case AdminLoading:
		fmt.Fprintln(tw, "Carregando...")
		return tw.Flush()
	}

	if s.User != nil {
		fmt.Fprintf(tw, "Conectado como %s <%s> (%s)\n\n", s.User.Name, s.User.Email, s.User.Role)
	}

	c := CountersOf(s)
	fmt.Fprintln(tw, "PRODUTOS\tSOLICITAÇÕES\tNOVAS\tUSUÁRIOS")
	fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n\n", c.Products, c.Requests, c.NewRequests, c.Users)

	fmt.Fprintf(tw, "Hero:\t%s\n\t%s\n", s.Content.Hero.Title, s.Content.Hero.Subtitle)
	fmt.Fprintf(tw, "Banner:\t%s\n\t%s\n\n", s.Content.Banner.Title, s.Content.Banner.Description)

	fmt.Fprintln(tw, "ID\tPRODUTO\tTAG\tIMAGENS")
	if len(s.Content.Products) == 0 {
		fmt.Fprintln(tw, "-\t"+EmptyPortfolioText+"\t\t")
	}
	for _, p := range s.Content.Products {
		tag := p.Tag
		if strings.TrimSpace(tag) == "" {
			tag = DefaultProductTag
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", p.ID, p.Name, tag, 1+len(p.Sanitized().Gallery))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "ID\tNOME\tEMPRESA\tCONTATO\tSTATUS\tRECEBIDA")
	if len(s.Requests) == 0 {
		fmt.Fprintln(tw, "-\tNenhuma solicitação recebida.\t\t\t\t")
	}
	for _, r := range s.Requests {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s / %s\t%s\t%s\n",
			r.ID, r.Name, r.Company, r.Email, r.Phone, r.Status, r.CreatedAt.Local().Format("02/01/2006 15:04"))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "ID\tUSUÁRIO\tE-MAIL\tFUNÇÃO")
	for _, u := range s.Users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
	}
	if len(s.Users) <= 1 {
		fmt.Fprintln(tw, "\t(o último usuário não pode ser removido)\t\t")
	}

	return tw.Flush()
}
