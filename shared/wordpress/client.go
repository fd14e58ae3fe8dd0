package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dfryer1193/bghfeed/feed/domain"
	"github.com/dfryer1193/bghfeed/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	postsPath      = "wp-json/wp/v2/posts"
	categoriesPath = "wp-json/wp/v2/categories"

	// embed scopes
	embedFeaturedMedia = "wp:featuredmedia"
	embedAll           = "1"

	userAgent = "bghfeed/1.0"
)

var _ domain.RemoteSource = (*Client)(nil)

// Client is an implementation of domain.RemoteSource backed by the WordPress REST API.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	limiter    *rate.Limiter
}

// NewClient creates a new Client for cfg.BaseURL.
func NewClient(cfg *Config) (*Client, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid WordPress base URL %q: %w", cfg.BaseURL, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid WordPress base URL %q: scheme and host are required", cfg.BaseURL)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(limit, burst),
	}, nil
}

// FetchPosts lists the newest posts with only the featured media embedded.
func (c *Client) FetchPosts(ctx context.Context, pageSize int) ([]domain.RemotePost, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(pageSize))
	query.Set("_embed", embedFeaturedMedia)

	var posts []domain.RemotePost
	if err := c.get(ctx, "posts", "listing posts", query, &posts, postsPath); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchPostsByCategory lists the newest posts of a category.
func (c *Client) FetchPostsByCategory(ctx context.Context, categoryID int, pageSize int) ([]domain.RemotePost, error) {
	query := url.Values{}
	query.Set("categories", strconv.Itoa(categoryID))
	query.Set("per_page", strconv.Itoa(pageSize))
	query.Set("_embed", embedFeaturedMedia)

	var posts []domain.RemotePost
	op := fmt.Sprintf("listing posts for category %d", categoryID)
	if err := c.get(ctx, "posts_by_category", op, query, &posts, postsPath); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchPostByID fetches a single post with every related resource embedded.
func (c *Client) FetchPostByID(ctx context.Context, id int) (*domain.RemotePost, error) {
	op := fmt.Sprintf("getting post %d", id)
	if id <= 0 {
		return nil, fmt.Errorf("wordpress: %s failed: %w", op, domain.ErrNotFound)
	}

	query := url.Values{}
	query.Set("_embed", embedAll)

	var post domain.RemotePost
	if err := c.get(ctx, "post", op, query, &post, postsPath, strconv.Itoa(id)); err != nil {
		return nil, err
	}
	return &post, nil
}

// FetchCategories lists categories in upstream order; sorting is left to the caller.
func (c *Client) FetchCategories(ctx context.Context, pageSize int) ([]domain.Category, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(pageSize))

	var categories []domain.Category
	if err := c.get(ctx, "categories", "listing categories", query, &categories, categoriesPath); err != nil {
		return nil, err
	}
	return categories, nil
}

// get performs a GET against the API and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, op string, query url.Values, out any, path ...string) (err error) {
	defer func() {
		metrics.UpstreamRequests.WithLabelValues(endpoint, outcome(err)).Inc()
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return handleWordPressError(op, fmt.Errorf("%w: %w", domain.ErrNetwork, err))
	}

	u := c.baseURL.JoinPath(path...)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return handleWordPressError(op, fmt.Errorf("%w: %w", domain.ErrNetwork, err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return handleWordPressError(op, fmt.Errorf("%w: %w", domain.ErrNetwork, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return handleWordPressError(op, fmt.Errorf("%w: reading body: %w", domain.ErrNetwork, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return handleWordPressError(op, newStatusError(resp.StatusCode, body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return handleWordPressError(op, fmt.Errorf("%w: %w", domain.ErrDecode, err))
	}

	return nil
}

// StatusError is a non-2xx answer from the WordPress API.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func newStatusError(statusCode int, body []byte) *StatusError {
	statusErr := &StatusError{StatusCode: statusCode}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		statusErr.Code = payload.Code
		statusErr.Message = payload.Message
	}

	return statusErr
}

func (e *StatusError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the status onto the domain error taxonomy.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return domain.ErrNetwork
}

// handleWordPressError labels err with the operation that produced it.
func handleWordPressError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("wordpress: %s failed: %w", op, err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDecode):
		return "decode_error"
	default:
		return "network_error"
	}
}
