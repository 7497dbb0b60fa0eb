package httpserver

import (
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/images/")
	data, ct, err := s.images.Image(r.Context(), name, queryInt(r, "w", 0))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}
