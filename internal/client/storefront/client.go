// Package storefront is an HTTP client for the storefront API.
package storefront

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
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/murkotick/storefront-service/internal/app/cart"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("not signed in")
	ErrRejected     = errors.New("rejected by server")
)

// APIError is a non-2xx reply. It matches ErrNotFound, ErrUnauthorized or
// ErrRejected with errors.Is, depending on the status.
type APIError struct {
	Status  int
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields"`
}

type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("storefront: %d %s: %s", e.Status, e.Code, e.Message)
	for _, f := range e.Fields {
		msg += fmt.Sprintf("; %s %s", f.Field, f.Description)
	}
	return msg
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrRejected:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusConflict
	}
	return false
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     logrus.FieldLogger
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Size struct {
	Size  string `json:"size"`
	Stock int64  `json:"stock"`
}

type Product struct {
	ID             string   `json:"_id"`
	Name           string   `json:"name"`
	Brand          string   `json:"brand"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	DiscountPrice  *float64 `json:"discountPrice"`
	EffectivePrice float64  `json:"effectivePrice"`
	Gender         string   `json:"gender"`
	Category       string   `json:"category"`
	Sizes          []Size   `json:"sizes"`
	Images         []string `json:"images"`
	Rating         float64  `json:"rating"`
}

// LineItem snapshots p for the cart: effective price and first image.
func (p Product) LineItem(size string, qty int) cart.LineItem {
	var image string
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	return cart.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		UnitPrice: p.EffectivePrice,
		ImageRef:  image,
		Size:      size,
		Quantity:  qty,
	}
}

type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalProducts int64 `json:"totalProducts"`
	Limit         int   `json:"limit"`
}

type ProductList struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
	Filters    struct {
		Brands     []string `json:"brands"`
		Categories []string `json:"categories"`
	} `json:"filters"`
}

// ListOptions mirrors the listing query string; zero values are omitted.
type ListOptions struct {
	Gender    string
	Category  string
	Brand     string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	set("gender", o.Gender)
	set("category", o.Category)
	set("brand", o.Brand)
	set("search", o.Search)
	set("sortBy", o.SortBy)
	set("sortOrder", o.SortOrder)
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, opts ListOptions) (*ProductList, error) {
	var out ProductList
	path := "/api/products"
	if q := opts.values().Encode(); q != "" {
		path += "?" + q
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit sends a checkout snapshot. It satisfies cart.OrderSubmitter.
func (c *Client) Submit(ctx context.Context, snap cart.OrderSnapshot) (cart.Confirmation, error) {
	if c.token == "" {
		return cart.Confirmation{}, ErrUnauthorized
	}
	var out cart.Confirmation
	if err := c.do(ctx, http.MethodPost, "/api/orders", snap, &out); err != nil {
		return cart.Confirmation{}, err
	}
	if diff := out.Total - snap.Total; diff > 0.005 || diff < -0.005 {
		c.log.WithFields(logrus.Fields{
			"order_id":     out.OrderID,
			"client_total": snap.Total,
			"server_total": out.Total,
		}).Warn("server total differs from cart total")
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storefront: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{"method": method, "path": path, "status": resp.StatusCode}).Debug("storefront request")

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
