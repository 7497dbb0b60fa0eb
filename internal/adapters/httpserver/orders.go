package httpserver

import (
	"net/http"

	"github.com/phenrril/resinwood/internal/usecase"
)

func (s *Server) apiOrders(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req usecase.CheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	o, err := s.orders.Checkout(r.Context(), s.session(w, r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}
