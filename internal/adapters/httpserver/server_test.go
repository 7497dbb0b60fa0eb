package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/resinwood/internal/adapters/productapi"
	"github.com/phenrril/resinwood/internal/adapters/session/memory"
	"github.com/phenrril/resinwood/internal/adapters/storage/localfs"
	"github.com/phenrril/resinwood/internal/catalog"
	"github.com/phenrril/resinwood/internal/configurator"
	"github.com/phenrril/resinwood/internal/domain"
	"github.com/phenrril/resinwood/internal/personalization"
	"github.com/phenrril/resinwood/internal/usecase"
)

const adminToken = "s3cret"

type memOrders struct {
	mu     sync.Mutex
	orders []domain.Order
}

func (m *memOrders) Save(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memOrders) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memOrders) FindByNumber(_ context.Context, n string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.Number == n {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memOrders) List(_ context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := (f.Page - 1) * f.PageSize
	if start >= len(m.orders) {
		return nil, int64(len(m.orders)), nil
	}
	end := start + f.PageSize
	if end > len(m.orders) {
		end = len(m.orders)
	}
	return append([]domain.Order(nil), m.orders[start:end]...), int64(len(m.orders)), nil
}

type fixture struct {
	srv    *httptest.Server
	client *http.Client
	orders *memOrders
}

func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/mug-1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":"mug-1","name":"Olive Mug","price":"18.00","currency":"USD","images":["/m.jpg"],"stock":3}`)
		case "/products/broken":
			http.Error(w, `{"error":"boom","code":"UPSTREAM"}`, http.StatusInternalServerError)
		case "/products":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"products":[{"id":"mug-1","name":"Olive Mug","price":18}],"total":1,"page":1,"limit":20,"hasMore":false}`)
		default:
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		}
	}))
	t.Cleanup(up.Close)
	return up
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	imgDir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 40, 20))))
	require.NoError(t, os.WriteFile(filepath.Join(imgDir, "board.png"), buf.Bytes(), 0o644))

	sessions := memory.New(memory.DefaultTTL)
	machine := configurator.New(cat, cat.PricingTable(), personalization.LatinPolicy)
	api := productapi.New(upstream(t).URL, productapi.WithRetries(0))
	orders := &memOrders{}

	h := New(cat,
		&usecase.ConfiguratorUC{Sessions: sessions, Machine: machine},
		&usecase.CartUC{Sessions: sessions, Products: api},
		&usecase.OrderUC{Orders: orders, Sessions: sessions},
		&usecase.ProductUC{Products: api},
		localfs.New(imgDir),
		Options{SessionKey: "test-key", AdminToken: adminToken},
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &fixture{srv: srv, client: &http.Client{Jar: jar}, orders: orders}
}

func (f *fixture) do(t *testing.T, method, path, body string, hdr ...string) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, rd)
	require.NoError(t, err)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	res, err := f.client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if strings.HasPrefix(res.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return res, out
}

const configureAll = `[
	{"type":"select_template","payload":"olive-burl-serving"},
	{"type":"set_resin_ratio","payload":"high"},
	{"type":"set_resin_color","payload":"rose-gold"},
	{"type":"set_personalization","payload":{"text":"Happy Anniversary"}},
	{"type":"set_confirmed_variation","payload":true}
]`

func price(body map[string]any) float64 {
	p, _ := body["price"].(map[string]any)
	v, _ := p["total"].(float64)
	return v
}

func TestConfiguratorFlowAndCheckout(t *testing.T) {
	f := newFixture(t)

	res, body := f.do(t, http.MethodGet, "/api/configurator", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.EqualValues(t, 1, body["step"])
	assert.Equal(t, false, body["can_go_back"])

	res, body = f.do(t, http.MethodPost, "/api/configurator/actions", configureAll)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.EqualValues(t, 16400, price(body))
	assert.Equal(t, true, body["is_complete"])

	res, body = f.do(t, http.MethodPost, "/api/configurator/add-to-cart", "")
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.True(t, strings.HasPrefix(body["line_id"].(string), "config-"))
	cfg := body["configurator"].(map[string]any)
	assert.EqualValues(t, 1, cfg["step"])
	assert.Nil(t, cfg["configuration"].(map[string]any)["template"])

	res, body = f.do(t, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.EqualValues(t, 1, body["total_items"])
	assert.EqualValues(t, 16400, body["total_price"])

	res, body = f.do(t, http.MethodPost, "/api/orders", `{
		"customer_email":"Ana@Example.com",
		"shipping_address":{"full_name":"Ana","address":"1 Olive St","city":"Sfax","country":"TN"}
	}`)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Regexp(t, `^ORD-\d+-[0-9A-F]{6}$`, body["order_id"])
	assert.Equal(t, "confirmed", body["status"])
	assert.Equal(t, "ana@example.com", body["customer_email"])
	assert.EqualValues(t, 16400, body["total"])
	require.Len(t, f.orders.orders, 1)

	_, body = f.do(t, http.MethodGet, "/api/cart", "")
	assert.EqualValues(t, 0, body["total_items"])
}

func TestRejectedActionKeepsState(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/configurator/actions", `{"type":"select_template","payload":"olive-burl-serving"}`)

	res, body := f.do(t, http.MethodPost, "/api/configurator/actions", `[
		{"type":"select_size","payload":"medium"},
		{"type":"select_size","payload":"nope"}
	]`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body["error"], "size does not belong")
	state := body["state"].(map[string]any)
	size := state["configuration"].(map[string]any)["selected_size"].(map[string]any)
	assert.Equal(t, "small", size["id"], "batch is all or nothing")

	res, body = f.do(t, http.MethodPost, "/api/configurator/actions",
		`{"type":"set_personalization","payload":{"text":"`+strings.Repeat("a", 51)+`"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Equal(t, "too_long", body["reason"])

	res, _ = f.do(t, http.MethodPost, "/api/configurator/reset", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	res, body = f.do(t, http.MethodPost, "/api/configurator/next", "")
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body["error"], configurator.ErrStepLocked.Error())

	res, _ = f.do(t, http.MethodPost, "/api/configurator/add-to-cart", "")
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	res, _ = f.do(t, http.MethodPost, "/api/configurator/actions", `{"type":"fly"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCheckoutValidation(t *testing.T) {
	f := newFixture(t)
	res, body := f.do(t, http.MethodPost, "/api/orders", `{"customer_email":"a@b.co"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, usecase.CodeEmptyOrder, body["code"])

	res, _ = f.do(t, http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestPlainCartItems(t *testing.T) {
	f := newFixture(t)
	res, body := f.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"mug-1","quantity":2}`)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.EqualValues(t, 3600, body["total_price"])

	res, body = f.do(t, http.MethodPost, "/api/cart/update", `{"id":"mug-1","quantity":5}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.EqualValues(t, 5, body["total_items"])

	res, body = f.do(t, http.MethodPost, "/api/cart/remove", `{"id":"mug-1"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.EqualValues(t, 0, body["total_items"])

	res, _ = f.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"missing"}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = f.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"broken"}`)
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)

	res, _ = f.do(t, http.MethodPost, "/api/cart/items", `{`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCartQuantityLimit(t *testing.T) {
	f := newFixture(t)
	res, body := f.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"mug-1","quantity":99}`)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.EqualValues(t, 99, body["total_items"])

	res, body = f.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"mug-1","quantity":100}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, usecase.CodeInvalidQuantity, body["code"])

	res, body = f.do(t, http.MethodPost, "/api/cart/update", `{"id":"mug-1","quantity":1000000}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, usecase.CodeInvalidQuantity, body["code"])

	_, body = f.do(t, http.MethodGet, "/api/cart", "")
	assert.EqualValues(t, 99, body["total_items"])
	assert.EqualValues(t, 99*1800, body["total_price"])
}

func TestProductsProxy(t *testing.T) {
	f := newFixture(t)
	res, body := f.do(t, http.MethodGet, "/api/products?search=mug", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.EqualValues(t, 1, body["total"])

	res, body = f.do(t, http.MethodGet, "/api/products?minPrice=abc", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, usecase.CodeInvalidFilter, body["code"])

	res, body = f.do(t, http.MethodGet, "/api/products/mug-1", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.EqualValues(t, 1800, body["price"])
}

func TestCatalogEndpoints(t *testing.T) {
	f := newFixture(t)
	res, body := f.do(t, http.MethodGet, "/api/catalog/templates?category=clock&locale=fr", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "fr", body["locale"])
	for _, raw := range body["templates"].([]any) {
		assert.Equal(t, "clock", raw.(map[string]any)["category"])
	}

	res, _ = f.do(t, http.MethodGet, "/api/catalog/templates/olive-burl-serving", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = f.do(t, http.MethodGet, "/api/catalog/templates/nope", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = f.do(t, http.MethodGet, "/api/catalog/colors?tier=premium", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	for _, raw := range body["colors"].([]any) {
		assert.Equal(t, true, raw.(map[string]any)["is_premium"])
	}
	res, _ = f.do(t, http.MethodGet, "/api/catalog/colors?tier=gold", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = f.do(t, http.MethodGet, "/api/catalog/fonts", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, body["fonts"])
}

func TestAdminExport(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/configurator/actions", configureAll)
	f.do(t, http.MethodPost, "/api/configurator/add-to-cart", "")
	_, order := f.do(t, http.MethodPost, "/api/orders", `{
		"customer_email":"a@b.co",
		"shipping_address":{"full_name":"A","address":"x","city":"y","country":"z"}
	}`)

	res, _ := f.do(t, http.MethodGet, "/admin/orders/export.xlsx", "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	res, _ = f.do(t, http.MethodGet, "/admin/orders/export.xlsx", "", "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/admin/orders/export.xlsx", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	raw, err := f.client.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	require.Equal(t, http.StatusOK, raw.StatusCode)
	wb, err := excelize.OpenReader(raw.Body)
	require.NoError(t, err)
	v, err := wb.GetCellValue("Orders", "A2")
	require.NoError(t, err)
	assert.Equal(t, order["order_id"], v)

	res, body := f.do(t, http.MethodGet, "/admin/orders/"+order["order_id"].(string), "", "Authorization", "Bearer "+adminToken)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, order["order_id"], body["order_id"])

	res, body = f.do(t, http.MethodGet, "/admin/orders", "", "Authorization", "Bearer "+adminToken)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.EqualValues(t, 1, body["total"])
}

func TestImages(t *testing.T) {
	f := newFixture(t)
	res, _ := f.do(t, http.MethodGet, "/images/board.png?w=10", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "image/png", res.Header.Get("Content-Type"))

	res, _ = f.do(t, http.MethodGet, "/images/missing.png", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSessionCookie(t *testing.T) {
	s := &Server{sessionKey: []byte("k")}
	rec := httptest.NewRecorder()
	id := s.session(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, id)
	cookie := rec.Result().Cookies()[0]
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	assert.Equal(t, id, s.readSession(req))

	forged := *cookie
	forged.Value = cookie.Value[:len(cookie.Value)-2] + "xx"
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&forged)
	assert.Empty(t, s.readSession(req))

	other := &Server{sessionKey: []byte("other")}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	assert.Empty(t, other.readSession(req))
}

func TestRequestLocale(t *testing.T) {
	cases := []struct {
		query, header string
		want          domain.Locale
	}{
		{"", "fr-CA,fr;q=0.9,en;q=0.8", domain.LocaleFR},
		{"", "de-DE", domain.LocaleEN},
		{"ar", "fr", domain.LocaleAR},
		{"", "", domain.LocaleEN},
	}
	for _, c := range cases {
		r := httptest.NewRequest(http.MethodGet, "/?locale="+c.query, nil)
		if c.header != "" {
			r.Header.Set("Accept-Language", c.header)
		}
		assert.Equal(t, c.want, requestLocale(r), c)
	}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestRecoveryAndRequestID(t *testing.T) {
	buf := captureLog(t)
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }), Recovery, Logging, RequestID)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	id := rec.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)

	lines := logLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "panic recovered", lines[0]["message"])
	assert.Equal(t, id, lines[0]["request_id"])
	assert.Equal(t, "http", lines[1]["message"])
	assert.Equal(t, id, lines[1]["request_id"])
	assert.EqualValues(t, http.StatusInternalServerError, lines[1]["status"])
}

func TestAccessLogCarriesRequestID(t *testing.T) {
	h := newFixture(t).srv.Config.Handler
	buf := captureLog(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	lines := logLines(t, buf)
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	assert.Equal(t, "http", last["message"])
	assert.Equal(t, "/healthz", last["path"])
	assert.Equal(t, "req-42", last["request_id"])
}
