package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/phenrril/resinwood/internal/cart"
	"github.com/phenrril/resinwood/internal/configurator"
	"github.com/phenrril/resinwood/internal/personalization"
	"github.com/phenrril/resinwood/internal/usecase"
)

func (s *Server) apiConfigurator(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	sid := s.session(w, r)
	st, err := s.configurator.State(r.Context(), sid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.configurator.View(st))
}

// apiConfiguratorActions accepts one {type, payload} action or an array of
// them. A rejected batch answers 422 with the unchanged state.
func (s *Server) apiConfiguratorActions(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "body too large"})
		return
	}
	actions, err := configurator.DecodeActions(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid action", Message: err.Error()})
		return
	}
	sid := s.session(w, r)
	st, err := s.configurator.Dispatch(r.Context(), sid, actions...)
	s.writeTransition(w, r, st, err)
}

func (s *Server) apiConfiguratorStep(fn func(context.Context, string) (configurator.State, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allow(w, r, http.MethodPost) {
			return
		}
		sid := s.session(w, r)
		st, err := fn(r.Context(), sid)
		s.writeTransition(w, r, st, err)
	}
}

func (s *Server) writeTransition(w http.ResponseWriter, r *http.Request, st configurator.State, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, s.configurator.View(st))
		return
	}
	if !configurator.IsRejection(err) {
		writeError(w, r, err)
		return
	}
	body := errorBody{Error: err.Error(), State: s.configurator.View(st)}
	var rej *personalization.RejectionError
	if errors.As(err, &rej) {
		body.Reason = string(rej.Reason)
	}
	writeJSON(w, http.StatusUnprocessableEntity, body)
}

type addToCartResponse struct {
	LineID       string       `json:"line_id"`
	Cart         cart.Cart    `json:"cart"`
	Configurator usecase.View `json:"configurator"`
}

func (s *Server) apiConfiguratorAddToCart(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	sid := s.session(w, r)
	sess, lineID, err := s.configurator.AddToCart(r.Context(), sid, requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, addToCartResponse{
		LineID:       lineID,
		Cart:         sess.Cart,
		Configurator: s.configurator.View(sess.Configurator),
	})
}
