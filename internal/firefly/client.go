// Package firefly is a minimal client for the Firefly III REST API. It covers
// the read endpoints the importer needs: instance information and the
// account listing used to resolve bank product numbers.
package firefly

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fjacquet/firefly-importer/internal/logging"
	"fjacquet/firefly-importer/internal/models"
)

const (
	aboutPath    = "/api/v1/about"
	accountsPath = "/api/v1/accounts"

	// maxPages bounds pagination in case the server reports inconsistent
	// page counts.
	maxPages = 1000

	maxBodySnippet = 200
)

// ResponseError is returned when Firefly III answers with a non-200 status or
// a body that cannot be decoded.
type ResponseError struct {
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("firefly %s: status %d: %v", e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("firefly %s: HTTP error %d: %s", e.Path, e.StatusCode, e.Body)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// Client talks to one Firefly III instance with a personal access token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     logging.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the instance at baseURL.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.NewLogrusAdapter("info", "text"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the instance URL without trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// About returns the instance information. It doubles as an authentication
// check since the endpoint requires a valid token.
func (c *Client) About(ctx context.Context) (*AboutInfo, error) {
	var resp aboutResponse
	if err := c.get(ctx, aboutPath, nil, &resp); err != nil {
		return nil, fmt.Errorf("About: %w", err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("About: %w", &ResponseError{
			Path:       aboutPath,
			StatusCode: http.StatusOK,
			Err:        fmt.Errorf("response has no data"),
		})
	}
	return resp.Data, nil
}

// ListAccounts returns every account of the instance, following pagination.
// Items without attributes are skipped.
func (c *Client) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	for page := 1; page <= maxPages; page++ {
		var resp accountsResponse
		query := url.Values{"page": []string{strconv.Itoa(page)}}
		if err := c.get(ctx, accountsPath, query, &resp); err != nil {
			return nil, fmt.Errorf("ListAccounts: %w", err)
		}

		for _, item := range resp.Data {
			if item == nil || item.Attributes == nil {
				continue
			}
			accounts = append(accounts, toAccount(item))
		}

		c.logger.Debug("Fetched accounts page",
			logging.F(logging.FieldPage, page),
			logging.F(logging.FieldCount, len(resp.Data)))

		if len(resp.Data) == 0 || page >= resp.Meta.Pagination.TotalPages {
			break
		}
	}
	return accounts, nil
}

func toAccount(item *accountItem) models.Account {
	a := item.Attributes
	return models.Account{
		ID:            item.ID,
		Name:          a.Name,
		Type:          a.Type,
		AccountNumber: deref(a.AccountNumber),
		IBAN:          deref(a.IBAN),
		Notes:         deref(a.Notes),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// get performs an authenticated GET and decodes the JSON body into out.
// Transport failures are returned as is; status and decoding failures as
// *ResponseError.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Calling Firefly III", logging.F(logging.FieldURL, endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &ResponseError{Path: path, StatusCode: resp.StatusCode, Body: snippet(body)}
	}
	if len(body) == 0 {
		return &ResponseError{Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("empty response body")}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ResponseError{Path: path, StatusCode: resp.StatusCode, Body: snippet(body), Err: fmt.Errorf("failed to parse JSON response: %w", err)}
	}
	return nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodySnippet {
		return s[:maxBodySnippet] + "..."
	}
	return s
}
