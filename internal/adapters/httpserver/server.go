package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/resinwood/internal/adapters/productapi"
	"github.com/phenrril/resinwood/internal/catalog"
	"github.com/phenrril/resinwood/internal/configurator"
	"github.com/phenrril/resinwood/internal/domain"
	"github.com/phenrril/resinwood/internal/personalization"
	"github.com/phenrril/resinwood/internal/usecase"
)

const maxBody = 1 << 20

type Options struct {
	SessionKey    string
	AdminToken    string
	SecureCookies bool
	CORSOrigin    string
}

type Server struct {
	mux          *http.ServeMux
	catalog      *catalog.Catalog
	configurator *usecase.ConfiguratorUC
	carts        *usecase.CartUC
	orders       *usecase.OrderUC
	products     *usecase.ProductUC
	images       domain.ImageStore

	sessionKey    []byte
	adminToken    string
	secureCookies bool
}

func New(cat *catalog.Catalog, cfg *usecase.ConfiguratorUC, carts *usecase.CartUC, orders *usecase.OrderUC, products *usecase.ProductUC, images domain.ImageStore, opts Options) http.Handler {
	key := opts.SessionKey
	if key == "" {
		key = "dev-insecure"
	}
	s := &Server{
		mux:           http.NewServeMux(),
		catalog:       cat,
		configurator:  cfg,
		carts:         carts,
		orders:        orders,
		products:      products,
		images:        images,
		sessionKey:    []byte(key),
		adminToken:    opts.AdminToken,
		secureCookies: opts.SecureCookies,
	}
	s.routes()
	return Chain(s.mux,
		CORS(opts.CORSOrigin),
		Recovery,
		Logging,
		RequestID,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc("/api/catalog/templates", s.apiTemplates)
	s.mux.HandleFunc("/api/catalog/templates/", s.apiTemplateByID)
	s.mux.HandleFunc("/api/catalog/colors", s.apiColors)
	s.mux.HandleFunc("/api/catalog/fonts", s.apiFonts)

	s.mux.HandleFunc("/api/configurator", s.apiConfigurator)
	s.mux.HandleFunc("/api/configurator/actions", s.apiConfiguratorActions)
	s.mux.HandleFunc("/api/configurator/next", s.apiConfiguratorStep(s.configurator.Next))
	s.mux.HandleFunc("/api/configurator/prev", s.apiConfiguratorStep(s.configurator.Prev))
	s.mux.HandleFunc("/api/configurator/reset", s.apiConfiguratorStep(s.configurator.Reset))
	s.mux.HandleFunc("/api/configurator/add-to-cart", s.apiConfiguratorAddToCart)

	s.mux.HandleFunc("/api/cart", s.apiCart)
	s.mux.HandleFunc("/api/cart/items", s.apiCartAdd)
	s.mux.HandleFunc("/api/cart/update", s.apiCartUpdate)
	s.mux.HandleFunc("/api/cart/remove", s.apiCartRemove)
	s.mux.HandleFunc("/api/cart/clear", s.apiCartClear)

	s.mux.HandleFunc("/api/orders", s.apiOrders)

	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)

	s.mux.HandleFunc("/admin/orders", s.handleAdminOrders)
	s.mux.HandleFunc("/admin/orders/", s.handleAdminOrder)
	s.mux.HandleFunc("/admin/orders/export.xlsx", s.handleAdminExportXLSX)

	s.mux.HandleFunc("/images/", s.handleImage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	State   any    `json:"state,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps use case and adapter errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *usecase.ValidationError
		rej  *personalization.RejectionError
		api  *productapi.APIError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Message, Code: verr.Code})
	case errors.As(err, &rej):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: rej.Error(), Reason: string(rej.Reason)})
	case configurator.IsRejection(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.As(err, &api):
		log.Warn().Err(err).Int("status", api.Status).Str("path", r.URL.Path).Msg("product api failed")
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "product service unavailable", Code: api.Code})
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("request_id", requestIDFrom(r.Context())).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json", Message: err.Error()})
		return false
	}
	return true
}

func queryInt(r *http.Request, key string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key))); err == nil {
		return v
	}
	return def
}
