// Package factsheetapi fetches the indicator sheets from the factsheet
// worker endpoint.
package factsheetapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"factsheet/internal/config"
	"factsheet/internal/factsheet"
	"factsheet/internal/logger"
	"factsheet/internal/sheet"
)

const maxBodyBytes = 16 << 20

var (
	ErrUnexpectedStatus = errors.New("factsheet api: unexpected status")
	ErrInvalidEnvelope  = errors.New("factsheet api: invalid envelope")
)

// Client performs the single GET the factsheet needs. It carries the list of
// expected sheets so a failed fetch can be replaced by an empty book with the
// same keys.
type Client struct {
	endpoint       *url.URL
	httpClient     *http.Client
	userAgent      string
	validateSchema bool
	schema         *jsonschema.Schema
	sheetNames     []string
	shapes         map[string]sheet.Shape
}

// NewClient builds a client from the source config. shapes tags each sheet
// as it is decoded; sheetNames is the fallback key set.
func NewClient(cfg config.SourceConfig, sheetNames []string, shapes map[string]sheet.Shape) (*Client, error) {
	raw := strings.TrimSpace(cfg.Endpoint)
	if raw == "" {
		return nil, fmt.Errorf("source.endpoint cannot be empty")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse source.endpoint: %w", err)
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	schema, err := compileEnvelopeSchema()
	if err != nil {
		return nil, fmt.Errorf("compile envelope schema: %w", err)
	}
	return &Client{
		endpoint:       parsed,
		httpClient:     &http.Client{Timeout: timeout},
		userAgent:      strings.TrimSpace(cfg.UserAgent),
		validateSchema: cfg.ValidateSchema,
		schema:         schema,
		sheetNames:     append([]string(nil), sheetNames...),
		shapes:         shapes,
	}, nil
}

// SetHTTPClient sets the HTTP client for testing.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Fetch performs the GET and decodes the sheets. Any failure is returned to
// the caller untouched.
func (c *Client) Fetch(ctx context.Context) (sheet.Book, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.String(), nil)
	if err != nil {
		return sheet.Book{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sheet.Book{}, fmt.Errorf("GET %s: %w", c.endpoint.Redacted(), err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return sheet.Book{}, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return sheet.Book{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	if c.validateSchema {
		if err := c.validate(body); err != nil {
			return sheet.Book{}, err
		}
	}
	book, err := sheet.Decode(body, c.shapes)
	if err != nil {
		return sheet.Book{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	logger.Infof("factsheet api: fetched %d sheets (%d bytes)", book.Len(), len(body))
	return book, nil
}

// LoadBook is Fetch with the fallback applied: on any failure the result
// holds the empty book and the error that caused it.
func (c *Client) LoadBook(ctx context.Context) factsheet.FetchResult {
	book, err := c.Fetch(ctx)
	if err != nil {
		logger.Errorf("factsheet api fetch failed: %v", err)
		return factsheet.FetchResult{Book: c.Fallback(), Err: err}
	}
	return factsheet.FetchResult{Book: book}
}

// Fallback returns the static empty stand-in.
func (c *Client) Fallback() sheet.Book {
	return sheet.Empty(c.sheetNames, c.shapes)
}

func (c *Client) validate(body []byte) error {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if err := c.schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return nil
}
