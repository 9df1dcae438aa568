package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	pkgerrors "github.com/techstore/backend/pkg/errors"
	"github.com/techstore/backend/pkg/types"
)

// Query scopes a product list request against the proxy.
type Query struct {
	Category string
	Term     string
	Limit    int
}

// Client talks to the storefront's own proxy route.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, c.baseURL+"/api/products?meta=categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Products(ctx context.Context, q Query) ([]types.Product, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Term != "" {
		params.Set("q", q.Term)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	endpoint := c.baseURL + "/api/products"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var out []types.Product
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id int) (*types.Product, error) {
	var out types.Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/products?id=%d", c.baseURL, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storefront proxy unreachable")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("proxy returned %d", res.StatusCode))
	}
	if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "malformed proxy response")
	}
	return nil
}
