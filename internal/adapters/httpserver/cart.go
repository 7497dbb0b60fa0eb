package httpserver

import (
	"net/http"

	"github.com/phenrril/resinwood/internal/cart"
)

type cartAddRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type cartLineRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

func (s *Server) writeCart(w http.ResponseWriter, r *http.Request, c cart.Cart, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	c, err := s.carts.Get(r.Context(), s.session(w, r))
	s.writeCart(w, r, c, err)
}

func (s *Server) apiCartAdd(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req cartAddRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "product_id required"})
		return
	}
	c, err := s.carts.AddProduct(r.Context(), s.session(w, r), req.ProductID, req.Quantity)
	s.writeCart(w, r, c, err)
}

func (s *Server) apiCartUpdate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req cartLineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := s.carts.UpdateQuantity(r.Context(), s.session(w, r), req.ID, req.Quantity)
	s.writeCart(w, r, c, err)
}

func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req cartLineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := s.carts.Remove(r.Context(), s.session(w, r), req.ID)
	s.writeCart(w, r, c, err)
}

func (s *Server) apiCartClear(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	c, err := s.carts.Clear(r.Context(), s.session(w, r))
	s.writeCart(w, r, c, err)
}
