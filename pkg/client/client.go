// Package client is a thin Go wrapper over the SmartAviation site API.
//
// Every method performs exactly one HTTP round trip. Protected calls attach the
// bearer token kept in the configured SessionStorage; a 401 from the server
// clears that storage.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// ErrNoSession is returned by protected calls when no token is stored.
var ErrNoSession = errors.New("client: no session stored")

// RequestError is a non-2xx response.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// IsStatus reports whether err is a RequestError with the given status.
func IsStatus(err error, status int) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == status
}

type Client struct {
	baseURL string
	http    *http.Client
	storage SessionStorage
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithStorage(s SessionStorage) Option {
	return func(c *Client) { c.storage = s }
}

// New returns a client for baseURL, e.g. http://localhost:3000/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		storage: NewMemoryStorage(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Session returns the stored session; zero value when logged out.
func (c *Client) Session() Session {
	s, _ := c.storage.Load()
	return s
}

func (c *Client) SetSession(s Session) error { return c.storage.Save(s) }

func (c *Client) ClearSession() error { return c.storage.Clear() }

type call struct {
	method      string
	endpoint    string
	auth        bool
	jsonBody    any
	body        io.Reader
	contentType string
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	var body io.Reader
	contentType := ""
	switch {
	case cl.body != nil:
		body = cl.body
		contentType = cl.contentType
	case cl.jsonBody != nil:
		b, err := json.Marshal(cl.jsonBody)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.endpoint, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if cl.auth {
		token := c.Session().Token
		if token == "" {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := readError(resp)
		if cl.auth && resp.StatusCode == http.StatusUnauthorized {
			_ = c.storage.Clear()
		}
		return rerr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if s, ok := out.(*string); ok {
		*s = string(text)
		return nil
	}
	return fmt.Errorf("unexpected content type %q", resp.Header.Get("Content-Type"))
}

// readError prefers the JSON message field, then the raw body, then the
// status phrase.
func readError(resp *http.Response) *RequestError {
	raw, _ := io.ReadAll(resp.Body)
	text := strings.TrimSpace(string(raw))

	message := text
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		}
	} else if text == "" {
		message = http.StatusText(resp.StatusCode)
	}
	if message == "" {
		message = "Erro na requisição."
	}
	return &RequestError{Status: resp.StatusCode, Message: message}
}
