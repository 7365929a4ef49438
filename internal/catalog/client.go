// Package catalog is a read-only client for the TMDB v3 movie catalog.
package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SAACyberV99/VibeFlix/internal/constants"
	"github.com/SAACyberV99/VibeFlix/internal/errors"
	"github.com/SAACyberV99/VibeFlix/internal/models"
	"github.com/SAACyberV99/VibeFlix/pkg/httputil"
	"github.com/SAACyberV99/VibeFlix/pkg/logger"
	"github.com/SAACyberV99/VibeFlix/pkg/security"
)

// Service is the set of catalog calls the rest of the application depends on.
type Service interface {
	ListGenres(ctx context.Context) (GenreSet, error)
	ListPopular(ctx context.Context) ([]models.Movie, error)
	Search(ctx context.Context, query string) ([]models.Movie, error)
	GetDetail(ctx context.Context, id int) (*models.MovieDetails, error)
}

// Client issues single best-effort GET requests: no retry, no caching.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
	validator  *security.APIKeyValidator
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at another catalog host, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout sets the per-request timeout; zero leaves requests bounded only by their context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = httputil.NewHTTPClient(d) }
}

func NewClient(apiKey string, opts ...Option) *Client {
	validator := security.NewAPIKeyValidator(constants.PlaceholderAPIKey)
	c := &Client{
		apiKey:     validator.SanitizeAPIKey(apiKey),
		baseURL:    constants.TMDBBaseURL,
		httpClient: httputil.NewHTTPClient(0),
		logger:     logger.New(),
		validator:  validator,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckAPIKey reports a missing or malformed credential without touching the network.
func (c *Client) CheckAPIKey() error {
	if c.validator.IsPlaceholder(c.apiKey) {
		return errors.NewAPIKeyMissingError("TMDB")
	}
	if !c.validator.IsValidTMDBKey(c.apiKey) {
		return errors.NewAPIKeyInvalidError("TMDB")
	}
	return nil
}

// ListGenres fetches the movie genre list.
func (c *Client) ListGenres(ctx context.Context) (GenreSet, error) {
	var resp models.GenreListResponse
	if err := c.get(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return GenreSet{}, err
	}
	return NewGenreSet(resp.Genres), nil
}

// ListPopular fetches the first page of popular movies.
func (c *Client) ListPopular(ctx context.Context) ([]models.Movie, error) {
	var resp models.MovieListResponse
	if err := c.get(ctx, "/movie/popular", url.Values{"page": {"1"}}, &resp); err != nil {
		return nil, err
	}
	return results(resp), nil
}

// Search fetches movies matching a free-text query, adult titles excluded.
func (c *Client) Search(ctx context.Context, query string) ([]models.Movie, error) {
	params := url.Values{
		"query":         {query},
		"include_adult": {"false"},
	}
	var resp models.MovieListResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, err
	}
	return results(resp), nil
}

// GetDetail fetches one movie with its extended fields.
func (c *Client) GetDetail(ctx context.Context, id int) (*models.MovieDetails, error) {
	if id <= 0 {
		return nil, errors.NewInvalidIDError(strconv.Itoa(id))
	}
	var details models.MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// results never returns nil so an empty payload stays distinguishable from a failure.
func results(resp models.MovieListResponse) []models.Movie {
	if resp.Results == nil {
		return []models.Movie{}
	}
	return resp.Results
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	// TMDB v3 only accepts the key as a query parameter
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	c.logger.Debugf("[Catalog] GET %s", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.NewFetchError(errors.ReasonNetwork, "failed to build request for "+path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reason := errors.ReasonNetwork
		if stderrors.Is(err, context.Canceled) {
			reason = errors.ReasonCanceled
		}
		return errors.NewFetchError(reason, "failed to fetch "+path, redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		reason := errors.ReasonStatus
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			reason = errors.ReasonUnauthorized
		case http.StatusTooManyRequests:
			reason = errors.ReasonRateLimited
		}
		c.logger.Warnf("[Catalog] %s returned status %d (key: %s)", path, resp.StatusCode, c.validator.MaskAPIKey(c.apiKey))
		return errors.NewFetchError(reason, fmt.Sprintf("catalog error for %s: status %d", path, resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewFetchError(errors.ReasonDecode, "failed to decode response for "+path, err)
	}
	return nil
}

// redact strips the request URL, which carries the credential, from transport errors.
func redact(err error) error {
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
