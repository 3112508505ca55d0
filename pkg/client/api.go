package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/smartaviation/site/internal/core/domain"
)

// LoginResult mirrors the /login response.
type LoginResult struct {
	Token string             `json:"token"`
	User  domain.SessionUser `json:"user"`
}

// LeadInput is the public contact form.
type LeadInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Address string `json:"address"`
	Message string `json:"message,omitempty"`
}

// NewUser is the payload for CreateUser.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// File is one image attached to a product form.
type File struct {
	Name string
	Data []byte
}

// Empty reports whether no content was attached.
func (f File) Empty() bool { return len(f.Data) == 0 }

// ProductForm is the multipart payload for CreateProduct.
type ProductForm struct {
	Name        string
	Tag         string
	Description string
	MainImage   File
	Gallery     [domain.GallerySize]File
}

type messageBody struct {
	Message string `json:"message"`
}

// Login authenticates and stores the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "/login",
		jsonBody: map[string]string{"email": email, "password": password},
	}, &out)
	if err != nil {
		return nil, err
	}
	user := out.User
	if err := c.storage.Save(Session{Token: out.Token, User: &user}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the server session; local storage is cleared either way.
func (c *Client) Logout(ctx context.Context) error {
	defer c.storage.Clear()
	return c.do(ctx, call{method: http.MethodPost, endpoint: "/logout", auth: true}, nil)
}

func (c *Client) GetContent(ctx context.Context) (*domain.Content, error) {
	var out domain.Content
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: "/content"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: "/products"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitRequest(ctx context.Context, in LeadInput) (*domain.LeadRequest, error) {
	var out domain.LeadRequest
	if err := c.do(ctx, call{method: http.MethodPost, endpoint: "/requests", jsonBody: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetRequests(ctx context.Context) ([]domain.LeadRequest, error) {
	var out []domain.LeadRequest
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: "/requests", auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.LeadRequest, error) {
	var out domain.LeadRequest
	err := c.do(ctx, call{
		method:   http.MethodPatch,
		endpoint: "/requests/" + url.PathEscape(id),
		auth:     true,
		jsonBody: map[string]string{"status": string(status)},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateHero(ctx context.Context, hero domain.Hero) (*domain.Hero, error) {
	var out domain.Hero
	if err := c.do(ctx, call{method: http.MethodPut, endpoint: "/hero", auth: true, jsonBody: hero}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBanner(ctx context.Context, banner domain.Banner) (*domain.Banner, error) {
	var out domain.Banner
	if err := c.do(ctx, call{method: http.MethodPut, endpoint: "/banner", auth: true, jsonBody: banner}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct uploads the form as multipart/form-data.
func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (*domain.Product, error) {
	body, contentType, err := encodeProductForm(form)
	if err != nil {
		return nil, err
	}

	var out domain.Product
	err = c.do(ctx, call{
		method:      http.MethodPost,
		endpoint:    "/products",
		auth:        true,
		body:        body,
		contentType: contentType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	var out messageBody
	return c.do(ctx, call{method: http.MethodDelete, endpoint: "/products/" + url.PathEscape(id), auth: true}, &out)
}

func (c *Client) GetUsers(ctx context.Context) ([]domain.PublicUser, error) {
	var out []domain.PublicUser
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: "/users", auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, in NewUser) (*domain.PublicUser, error) {
	var out domain.PublicUser
	if err := c.do(ctx, call{method: http.MethodPost, endpoint: "/users", auth: true, jsonBody: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	var out messageBody
	return c.do(ctx, call{method: http.MethodDelete, endpoint: "/users/" + url.PathEscape(id), auth: true}, &out)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeProductForm(form ProductForm) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{{"name", form.Name}, {"tag", form.Tag}, {"description", form.Description}}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	files := []struct {
		field string
		file  File
	}{{"mainImage", form.MainImage}}
	for i, g := range form.Gallery {
		files = append(files, struct {
			field string
			file  File
		}{fmt.Sprintf("gallery%d", i+1), g})
	}

	for _, f := range files {
		if f.file.Empty() {
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.field), quoteEscaper.Replace(f.file.Name)))
		h.Set("Content-Type", mimetype.Detect(f.file.Data).String())
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.file.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
