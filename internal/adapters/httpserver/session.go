package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	sessionCookie = "rw_session"
	sessionMaxAge = 60 * 60 * 24 * 7
)

func (s *Server) sign(payload []byte) string {
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(payload)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// readSession returns the session id carried by a valid cookie, or "".
func (s *Server) readSession(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 {
		return ""
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return ""
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return ""
	}
	want, _ := base64.RawURLEncoding.DecodeString(s.sign(payload))
	if !hmac.Equal(sig, want) {
		return ""
	}
	return string(payload)
}

func (s *Server) writeSession(w http.ResponseWriter, id string) {
	val := s.sign([]byte(id)) + "." + base64.RawURLEncoding.EncodeToString([]byte(id))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    val,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// session returns the caller's session id, issuing a fresh cookie when the
// request has none or carries a forged one.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if id := s.readSession(r); id != "" {
		return id
	}
	id := uuid.NewString()
	s.writeSession(w, id)
	return id
}
