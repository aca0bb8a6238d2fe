package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	catalogEntity "meezy.GO/model/entity/catalog"
	customerEntity "meezy.GO/model/entity/customer"
	orderEntity "meezy.GO/model/entity/order"
)

// Failure classes for the commerce backend boundary. Callers compare with
// errors.Is; the resolver layer translates these into outcome codes and
// never surfaces them past its own boundary.
var (
	ErrNotFound    = errors.New("backend: not found")
	ErrUnavailable = errors.New("backend: unreachable")
	ErrServer      = errors.New("backend: server error")
	ErrBadEnvelope = errors.New("backend: unrecognized response shape")
)

// Client talks to the commerce backend that owns the catalog, customers and
// order validation.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithHTTP injects a custom http.Client (tests).
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc}
}

// LookupByCode is the fast-path point lookup by literal barcode or SKU.
func (c *Client) LookupByCode(ctx context.Context, code string) ([]catalogEntity.Item, error) {
	raw, err := c.getJSON(ctx, "/product/"+url.PathEscape(code), nil)
	if err != nil {
		return nil, err
	}
	list, ok := unwrapList(raw, "products", "data")
	if !ok {
		return nil, ErrBadEnvelope
	}
	return decodeItems(list)
}

// FetchProducts pulls the full catalog snapshot, bounded by limit.
func (c *Client) FetchProducts(ctx context.Context, limit int) ([]catalogEntity.Item, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	raw, err := c.getJSON(ctx, "/products", q)
	if err != nil {
		return nil, err
	}
	list, ok := unwrapList(raw, "products", "data")
	if !ok {
		return nil, ErrBadEnvelope
	}
	return decodeItems(list)
}

// SearchCustomers looks up customers by partial email. The backend may return
// a bare array, a customers array, or a single customer object.
func (c *Client) SearchCustomers(ctx context.Context, email string) ([]customerEntity.Customer, error) {
	q := url.Values{}
	q.Set("email", email)
	raw, err := c.getJSON(ctx, "/customers/search", q)
	if err != nil {
		return nil, err
	}
	list, ok := unwrapList(raw, "customers")
	if !ok {
		if m, isMap := raw.(map[string]interface{}); isMap {
			if single, has := m["customer"]; has && single != nil {
				list, ok = []interface{}{single}, true
			}
		}
	}
	if !ok {
		return nil, ErrBadEnvelope
	}
	return decodeCustomers(list)
}

// CreateOrder submits an assembled order. The backend re-validates prices,
// stock and discounts and returns the human-facing order number.
func (c *Client) CreateOrder(ctx context.Context, req orderEntity.CreateRequest) (*orderEntity.CreateResponse, error) {
	raw, err := c.postJSON(ctx, "/orders/create-cart", req)
	if err != nil {
		return nil, err
	}
	var resp orderEntity.CreateResponse
	if err := decodeLoose(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	return &resp, nil
}

// DailyStats fetches today's pre-aggregated sales figures.
func (c *Client) DailyStats(ctx context.Context) (*orderEntity.DailyStats, error) {
	raw, err := c.getJSON(ctx, "/orders/stats/today", nil)
	if err != nil {
		return nil, err
	}
	var stats orderEntity.DailyStats
	if err := decodeLoose(raw, &stats); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	return &stats, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (interface{}, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}) (interface{}, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (interface{}, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case res.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrServer, res.StatusCode)
	case res.StatusCode >= 400:
		return nil, fmt.Errorf("backend: unexpected status %d", res.StatusCode)
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	return raw, nil
}

// unwrapList accepts the envelope shapes the backend is known to produce: a
// bare array, or an object with the collection under one of the given field
// names. Anything else is rejected so the caller can fail the request hard.
func unwrapList(raw interface{}, fields ...string) ([]interface{}, bool) {
	if list, ok := raw.([]interface{}); ok {
		return list, true
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, false
	}
	for _, f := range fields {
		if list, ok := m[f].([]interface{}); ok {
			return list, true
		}
	}
	return nil, false
}
