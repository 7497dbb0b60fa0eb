package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/resinwood/internal/configurator"
	"github.com/phenrril/resinwood/internal/domain"
)

type ConfiguratorUC struct {
	Sessions SessionStore
	Machine  *configurator.Machine
}

// View is the configurator state plus the values clients derive from it.
type View struct {
	configurator.State
	Coverage   int  `json:"coverage"`
	CanProceed bool `json:"can_proceed"`
	CanGoBack  bool `json:"can_go_back"`
}

func (uc *ConfiguratorUC) View(s configurator.State) View {
	return View{
		State:      s,
		Coverage:   uc.Machine.Coverage(s),
		CanProceed: uc.Machine.CanProceed(s),
		CanGoBack:  uc.Machine.CanGoBack(s),
	}
}

func (uc *ConfiguratorUC) State(ctx context.Context, sid string) (configurator.State, error) {
	sess, err := uc.Sessions.Get(ctx, sid)
	if errors.Is(err, domain.ErrNotFound) {
		return configurator.Initial(), nil
	}
	if err != nil {
		return configurator.State{}, err
	}
	return sess.Configurator, nil
}

// Dispatch applies actions in order. If any is rejected nothing is stored and
// the stored state is returned with the error.
func (uc *ConfiguratorUC) Dispatch(ctx context.Context, sid string, actions ...configurator.Action) (configurator.State, error) {
	var rejected error
	sess, err := uc.Sessions.Update(ctx, sid, func(s *Session) error {
		next, err := uc.Machine.ReduceAll(s.Configurator, actions...)
		if err != nil {
			rejected = err
			return err
		}
		s.Configurator = next
		return nil
	})
	if rejected != nil {
		log.Debug().Str("session", sid).Err(rejected).Msg("configurator transition rejected")
		current, stateErr := uc.State(ctx, sid)
		if stateErr != nil {
			return configurator.State{}, stateErr
		}
		return current, rejected
	}
	if err != nil {
		return configurator.State{}, err
	}
	return sess.Configurator, nil
}

func (uc *ConfiguratorUC) Next(ctx context.Context, sid string) (configurator.State, error) {
	return uc.Dispatch(ctx, sid, configurator.NextAction{})
}

func (uc *ConfiguratorUC) Prev(ctx context.Context, sid string) (configurator.State, error) {
	return uc.Dispatch(ctx, sid, configurator.PrevAction{})
}

func (uc *ConfiguratorUC) Reset(ctx context.Context, sid string) (configurator.State, error) {
	return uc.Dispatch(ctx, sid, configurator.ResetAction{})
}

// AddToCart moves the completed configuration into the cart and resets the
// configurator. It returns the updated session and the new line id.
func (uc *ConfiguratorUC) AddToCart(ctx context.Context, sid string, loc domain.Locale) (*Session, string, error) {
	var lineID string
	sess, err := uc.Sessions.Update(ctx, sid, func(s *Session) error {
		item, err := uc.Machine.NewCartItem(s.Configurator, loc)
		if err != nil {
			return err
		}
		s.Cart, lineID = s.Cart.AddConfiguredItem(item)
		s.Configurator, err = uc.Machine.Reset(s.Configurator)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	log.Info().Str("session", sid).Str("line", lineID).Str("total", sess.Cart.TotalPrice().String()).Msg("configured item added to cart")
	return sess, lineID, nil
}
