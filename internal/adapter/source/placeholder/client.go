package placeholder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/photodeck/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "PhotoDeck/1.0"
)

// Client implements domain.PhotoRepository for JSONPlaceholder-style
// REST sources (GET /photos with _page/_limit paging)
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter // nil = unlimited
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second. Values <= 0 disable it.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new photo source client
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs an HTTP request and returns the body and headers
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, http.Header, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("photo source request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("photo source request failed", "error", err)
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrSourceOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("photo source error", "status", resp.StatusCode, "body", truncateBody(body))
		return nil, nil, &domain.StatusError{Code: resp.StatusCode, Path: path}
	}

	return body, resp.Header, nil
}

func truncateBody(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// parsePhotos decodes a JSON array of photos
func (c *Client) parsePhotos(body []byte) ([]domain.Photo, error) {
	var dtos []PhotoDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return MapPhotos(dtos), nil
}

// GetPhotos returns one page of photos. albumID 0 means all albums.
func (c *Client) GetPhotos(ctx context.Context, page, limit, albumID int) ([]domain.Photo, int, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("_page", strconv.Itoa(page))
	query.Set("_limit", strconv.Itoa(limit))
	if albumID > 0 {
		query.Set("albumId", strconv.Itoa(albumID))
	}

	body, header, err := c.doRequest(ctx, http.MethodGet, "/photos", query)
	if err != nil {
		return nil, 0, err
	}

	photos, err := c.parsePhotos(body)
	if err != nil {
		return nil, 0, err
	}

	total := 0
	if v := header.Get(totalCountHeader); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			total = n
		} else {
			c.logger.Warn("ignoring malformed total count header", "value", v)
		}
	}

	c.logger.Debug("fetched photos", "page", page, "album", albumID, "count", len(photos), "total", total)
	return photos, total, nil
}
