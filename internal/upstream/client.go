package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sethvargo/go-retry"

	"github.com/techstore/backend/pkg/config"
	pkgerrors "github.com/techstore/backend/pkg/errors"
	"github.com/techstore/backend/pkg/types"
)

// Client is the read-only HTTP client for the third-party catalog service.
// Transient failures (network errors, 5xx) are retried with exponential
// backoff; 4xx responses are terminal.
type Client struct {
	baseURL  string
	http     *http.Client
	attempts uint64
	backoff  retry.Backoff
}

func NewClient(cfg config.UpstreamConfig) *Client {
	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		http:     &http.Client{Timeout: cfg.Timeout},
		attempts: uint64(attempts),
		backoff:  retry.NewExponential(cfg.RetryBase),
	}
}

// Products lists catalog items, optionally scoped to a category, with a
// bounded page size. limit <= 0 means the upstream default.
func (c *Client) Products(ctx context.Context, category string, limit int) ([]types.Product, error) {
	endpoint := c.baseURL + "/products"
	if category != "" {
		endpoint = c.baseURL + "/products/category/" + url.PathEscape(category)
	}
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	var out []types.Product
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches a single catalog item by its upstream id.
func (c *Client) Product(ctx context.Context, id int) (*types.Product, error) {
	var out types.Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories lists the distinct category labels.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, c.baseURL+"/products/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	backoff := retry.WithMaxRetries(c.attempts-1, c.backoff)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		res, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer res.Body.Close()

		if res.StatusCode >= http.StatusInternalServerError {
			io.Copy(io.Discard, res.Body)
			return retry.RetryableError(fmt.Errorf("upstream returned %d", res.StatusCode))
		}
		if res.StatusCode == http.StatusNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found upstream")
		}
		if res.StatusCode != http.StatusOK {
			return fmt.Errorf("upstream returned %d", res.StatusCode)
		}
		return json.NewDecoder(res.Body).Decode(dest)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog service unavailable")
	}
	return nil
}
