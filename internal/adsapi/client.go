package adsapi

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"
	"github.com/jimezsa/adscli/internal/models"
	"github.com/jimezsa/adscli/internal/network"
	"github.com/rs/zerolog"
)

const (
	SearchPath = "/scrape-ads"

	maxBodyBytes = 8 << 20
)

// Client talks to the scrape-ads backend.
type Client struct {
	base   *url.URL
	http   network.Doer
	logger zerolog.Logger
}

func New(baseURL string, doer network.Doer, logger zerolog.Logger) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("backend url is required")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", baseURL)
	}
	if doer == nil {
		return nil, fmt.Errorf("http client is required")
	}
	return &Client{base: base, http: doer, logger: logger}, nil
}

// PageURL builds the request URL for one page of a query.
func (c *Client) PageURL(q models.Query, page int) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + SearchPath
	values := url.Values{}
	values.Set("phrase", q.Phrase)
	values.Set("country", q.Country)
	values.Set("pageNumber", strconv.Itoa(page))
	values.Set("pageSize", strconv.Itoa(models.PageSize))
	u.RawQuery = values.Encode()
	return u.String()
}

// FetchPage requests one page of ads. Errors match ErrTransport or
// ErrFormat.
func (c *Client) FetchPage(ctx context.Context, q models.Query, page int) (models.Page, error) {
	if page < 1 {
		return models.Page{}, fmt.Errorf("page number must be >= 1, got %d", page)
	}

	target := c.PageURL(q, page)
	requestID := uuid.NewString()
	log := c.logger.With().Str("request_id", requestID).Int("page", page).Logger()

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return models.Page{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	applyHeaders(req, map[string]string{"x-request-id": requestID})

	log.Debug().Str("url", target).Msg("fetching ads page")
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("ads request failed")
		return models.Page{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.Page{}, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: describeErrorBody(resp.Header.Get("Content-Type"), body),
		}
		log.Debug().Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("backend rejected request")
		return models.Page{}, apiErr
	}

	result, err := decodePage(body)
	if err != nil {
		log.Debug().Err(err).Int("status", resp.StatusCode).Msg("malformed ads page")
		return models.Page{}, err
	}
	result.Number = page

	log.Debug().
		Int("status", resp.StatusCode).
		Int("ads", len(result.Ads)).
		Bool("has_more", result.HasMore).
		Dur("elapsed", time.Since(start)).
		Msg("fetched ads page")
	return result, nil
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["accept"]; !ok {
		headers["accept"] = "application/json"
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}
