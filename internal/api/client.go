// Package api is a typed client for the Silver Star menu REST API.
//
// All requests go through one of two helpers: doJSON for JSON payloads and
// doMultipart for uploads. Both attach the bearer token when the token store
// holds one, and both normalize failed responses into *Error.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/silverstar-dev/silverstar/internal/tokenstore"
)

// Client represents an HTTP client for the menu API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     tokenstore.Store
	log        zerolog.Logger
}

// New creates a new API client against the given base URL. The token store
// is consulted on every request; a missing token simply means the request
// goes out unauthenticated.
func New(baseURL string, tokens tokenstore.Store, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		log:    log,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into out (skipped when out is nil).
func (c *Client) doJSON(method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.buildURL(path, query), reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, out)
}

// doMultipart issues a request whose body is a multipart form. The form
// writer supplies the content type with its boundary; the JSON content type
// is never set here.
func (c *Client) doMultipart(method, path string, form *Multipart, out any) error {
	contentType, body, err := form.encode()
	if err != nil {
		return err
	}

	req, err := http.NewRequest(method, c.buildURL(path, nil), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	return c.send(req, out)
}

// send attaches auth and tracing headers, executes the request and
// normalizes the response. Transport failures propagate wrapped and
// unmodified in meaning; HTTP failures become *Error.
func (c *Client) send(req *http.Request, out any) error {
	if token, ok := c.token(); ok {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	requestID := ulid.Make().String()
	req.Header.Set("X-Request-ID", requestID)

	c.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("request_id", requestID).
		Msg("API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeError(resp)
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("request_id", requestID).
			Str("message", apiErr.Message).
			Msg("API request failed")
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// token reads the store at call time. Store errors read as "no token": an
// unauthenticated request is the server's problem to reject, not ours.
func (c *Client) token() (string, bool) {
	token, ok, err := c.tokens.Get()
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to read token store")
		return "", false
	}
	return token, ok
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Multipart accumulates form fields and optional files for upload requests.
type Multipart struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
}

// NewMultipart returns an empty multipart form builder.
func NewMultipart() *Multipart {
	m := &Multipart{}
	m.writer = multipart.NewWriter(&m.buf)
	return m
}

// Field adds a plain form field. The first error sticks and is reported when
// the form is encoded.
func (m *Multipart) Field(name, value string) *Multipart {
	if m.err == nil {
		m.err = m.writer.WriteField(name, value)
	}
	return m
}

// File adds a file part read from r.
func (m *Multipart) File(fieldName, fileName string, r io.Reader) *Multipart {
	if m.err != nil {
		return m
	}
	part, err := m.writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		m.err = err
		return m
	}
	if _, err := io.Copy(part, r); err != nil {
		m.err = err
	}
	return m
}

func (m *Multipart) encode() (contentType string, body *bytes.Buffer, err error) {
	if m.err != nil {
		return "", nil, fmt.Errorf("failed to build multipart form: %w", m.err)
	}
	if err := m.writer.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to build multipart form: %w", err)
	}
	return m.writer.FormDataContentType(), &m.buf, nil
}
