// Package productapi talks to the third-party product catalog service.
package productapi

import (
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

	"github.com/rs/zerolog/log"

	"github.com/phenrril/resinwood/internal/domain"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultRetries    = 3
	DefaultRetryDelay = time.Second
)

var retryStatus = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("product api %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("product api %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	retryDelay time.Duration
	sleep      func(context.Context, time.Duration) error
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }
func WithTimeout(d time.Duration) Option    { return func(c *Client) { c.httpClient.Timeout = d } }
func WithRetries(n int) Option              { return func(c *Client) { c.retries = n } }
func WithRetryDelay(d time.Duration) Option { return func(c *Client) { c.retryDelay = d } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		retries:    DefaultRetries,
		retryDelay: DefaultRetryDelay,
		sleep:      sleepCtx,
	}
	for _, o := range opts {
		o(c)
	}
	if c.retries < 0 {
		c.retries = 0
	}
	return c
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type wireProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Currency    string          `json:"currency"`
	Images      []string        `json:"images"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	SKU         string          `json:"sku"`
	CreatedAt   *time.Time      `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt"`
}

type wireList struct {
	Products []wireProduct `json:"products"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
	HasMore  bool          `json:"hasMore"`
}

func (w wireProduct) toDomain() (domain.Product, error) {
	p := domain.Product{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Summary:     Summarize(w.Description, summaryLen),
		Currency:    w.Currency,
		Images:      w.Images,
		Category:    w.Category,
		Stock:       w.Stock,
		SKU:         w.SKU,
	}
	// price arrives as a JSON number or a quoted decimal string
	if raw := strings.Trim(string(w.Price), `"`); raw != "" && raw != "null" {
		m, err := domain.ParseMoney(raw)
		if err != nil {
			return p, fmt.Errorf("product %s price: %w", w.ID, err)
		}
		p.Price = m
	}
	if w.CreatedAt != nil {
		p.CreatedAt = *w.CreatedAt
	}
	if w.UpdatedAt != nil {
		p.UpdatedAt = *w.UpdatedAt
	}
	return p, nil
}

func (c *Client) List(ctx context.Context, f domain.ProductFilter) (*domain.ProductPage, error) {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("category", f.Category)
	set("minPrice", f.MinPrice)
	set("maxPrice", f.MaxPrice)
	set("search", f.Search)
	set("sort", f.Sort)
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	var wl wireList
	if err := c.get(ctx, "/products", q, &wl); err != nil {
		return nil, err
	}
	page := &domain.ProductPage{
		Products: make([]domain.Product, 0, len(wl.Products)),
		Total:    wl.Total,
		Page:     wl.Page,
		Limit:    wl.Limit,
		HasMore:  wl.HasMore,
	}
	for _, wp := range wl.Products {
		p, err := wp.toDomain()
		if err != nil {
			log.Warn().Err(err).Msg("skipping product with bad price")
			continue
		}
		page.Products = append(page.Products, p)
	}
	return page, nil
}

func (c *Client) Get(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("empty product id")
	}
	var wp wireProduct
	if err := c.get(ctx, "/products/"+url.PathEscape(id), nil, &wp); err != nil {
		return nil, err
	}
	p, err := wp.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// get performs a GET with retries on transient statuses and network errors.
// Delays double from retryDelay. A 404 maps to domain.ErrNotFound.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay << (attempt - 1)
			log.Debug().Str("url", u).Int("attempt", attempt).Dur("delay", delay).Err(lastErr).Msg("retrying product api")
			if err := c.sleep(ctx, delay); err != nil {
				return err
			}
		}
		retry, err := c.do(ctx, u, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
	}
	return fmt.Errorf("product api: retries exhausted: %w", lastErr)
}

func (c *Client) do(ctx context.Context, u string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, fmt.Errorf("product api: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return false, fmt.Errorf("product api %s: %w", u, domain.ErrNotFound)
	}
	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		apiErr := &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
			Code    string `json:"code"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Code = payload.Code
			if payload.Message != "" {
				apiErr.Message = payload.Message
			} else if payload.Error != "" {
				apiErr.Message = payload.Error
			}
		}
		return retryStatus[res.StatusCode], apiErr
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return false, fmt.Errorf("product api decode: %w", err)
	}
	return false, nil
}
