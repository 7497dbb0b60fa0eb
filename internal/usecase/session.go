package usecase

import (
	"context"
	"time"

	"github.com/phenrril/resinwood/internal/cart"
	"github.com/phenrril/resinwood/internal/configurator"
)

// Session is everything one shopper owns between requests.
type Session struct {
	ID           string             `json:"id"`
	Configurator configurator.State `json:"configurator"`
	Cart         cart.Cart          `json:"cart"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func NewSession(id string) *Session {
	return &Session{ID: id, Configurator: configurator.Initial()}
}

// SessionStore keeps sessions by id. Update runs fn against the stored
// session (a new one when id is unknown) and stores the result only when fn
// returns nil. Updates for the same id never interleave.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}
