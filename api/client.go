package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PhucLH2303/RentEase-sub000/config"
	"github.com/PhucLH2303/RentEase-sub000/session"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

// ErrUnauthorized is returned when the backend answers HTTP 401. The
// client clears the persisted session before returning it, so the next
// command hits the login gate instead of retrying a dead token.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a non-200 application status carried inside a well-formed
// response envelope.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Page carries the pagination fields of the response envelope.
type Page struct {
	Count       int
	CurrentPage int
	TotalPages  int
}

// envelope is the uniform response wrapper every endpoint uses.
// statusCode == 200 is the sole application-level success signal,
// independent of the HTTP status.
type envelope struct {
	StatusCode  int             `json:"statusCode"`
	Message     string          `json:"message"`
	Count       int             `json:"count"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
	Data        json.RawMessage `json:"data"`
}

// SessionClearer is the write-side hook the client needs on 401.
type SessionClearer interface {
	Clear() error
}

// Client is the typed RentEase API client. All requests go through a
// single path that attaches the bearer token and decodes the envelope,
// so no caller ever builds headers or parses wrappers on its own.
type Client struct {
	baseURL string
	http    *http.Client
	session session.Provider
	clearer SessionClearer
	logger  *utils.Logger
}

// NewClient builds a Client from config. clearer may be nil when the
// caller has no persisted session to invalidate (tests, public browsing).
func NewClient(cfg *config.Config, sess session.Provider, clearer SessionClearer, logger *utils.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		http:    &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
		session: sess,
		clearer: clearer,
		logger:  logger,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (*Page, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) (*Page, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) (*Page, error) {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*Page, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: %s %s: encode body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: build request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, method, path, out)
}

// upload sends a multipart form with one file part plus extra fields.
func (c *Client) upload(ctx context.Context, path, fieldName, fileName string, file io.Reader, fields map[string]string, out any) (*Page, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		return nil, fmt.Errorf("api: POST %s: create form file: %w", path, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("api: POST %s: copy file: %w", path, err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("api: POST %s: write field %q: %w", path, k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("api: POST %s: close multipart: %w", path, err)
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("api: POST %s: build request: %w", path, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, http.MethodPost, path, out)
}

func (c *Client) send(req *http.Request, method, path string, out any) (*Page, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	if c.session != nil {
		if token, err := c.session.Token(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.clearer != nil {
			if cerr := c.clearer.Clear(); cerr != nil {
				c.logger.Warn("[api] failed to clear session after 401: %v", cerr)
			}
		}
		return nil, ErrUnauthorized
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: read response: %w", method, path, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: %s %s: malformed envelope: %w", method, path, err)
	}

	if env.StatusCode != http.StatusOK {
		return nil, &Error{StatusCode: env.StatusCode, Message: env.Message}
	}

	if out != nil {
		if len(env.Data) == 0 {
			return nil, fmt.Errorf("api: %s %s: envelope has no data", method, path)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("api: %s %s: unexpected data shape: %w", method, path, err)
		}
	}

	return &Page{Count: env.Count, CurrentPage: env.CurrentPage, TotalPages: env.TotalPages}, nil
}
