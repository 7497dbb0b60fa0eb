package httpserver

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/resinwood/internal/adapters/export/xlsx"
	"github.com/phenrril/resinwood/internal/domain"
)

const exportPageSize = 200

// requireAdmin accepts "Authorization: Bearer <ADMIN_TOKEN>". With no token
// configured every admin route is closed.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	if s.adminToken != "" && strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		tok := strings.TrimSpace(auth[7:])
		if subtle.ConstantTimeCompare([]byte(tok), []byte(s.adminToken)) == 1 {
			return true
		}
	}
	writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
	return false
}

func orderFilter(r *http.Request) (domain.OrderFilter, error) {
	q := r.URL.Query()
	f := domain.OrderFilter{
		Status:   domain.OrderStatus(q.Get("status")),
		Email:    strings.ToLower(strings.TrimSpace(q.Get("email"))),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 0),
	}
	if v := q.Get("since"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("since must be YYYY-MM-DD")
		}
		f.Since = t
	}
	return f, nil
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) || !s.requireAdmin(w, r) {
		return
	}
	f, err := orderFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	list, total, err := s.orders.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": list, "total": total, "page": f.Page})
}

func (s *Server) handleAdminOrder(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) || !s.requireAdmin(w, r) {
		return
	}
	ref := strings.Trim(strings.TrimPrefix(r.URL.Path, "/admin/orders/"), "/")
	o, err := s.orders.Get(r.Context(), ref)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleAdminExportXLSX(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) || !s.requireAdmin(w, r) {
		return
	}
	f, err := orderFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	f.PageSize = exportPageSize
	var all []domain.Order
	for page := 1; ; page++ {
		f.Page = page
		list, total, err := s.orders.List(r.Context(), f)
		if err != nil {
			writeError(w, r, err)
			return
		}
		all = append(all, list...)
		if len(list) == 0 || int64(page*exportPageSize) >= total {
			break
		}
	}
	name := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	if err := xlsx.WriteOrders(w, all); err != nil {
		log.Error().Err(err).Msg("orders export")
		return
	}
	log.Info().Int("orders", len(all)).Msg("orders exported")
}
