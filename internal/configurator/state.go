package configurator

import (
	"errors"

	"github.com/phenrril/resinwood/internal/domain"
	"github.com/phenrril/resinwood/internal/personalization"
)

var (
	ErrInvalidStep         = errors.New("invalid step")
	ErrStepLocked          = errors.New("current step is not complete")
	ErrUnknownTemplate     = errors.New("unknown template")
	ErrTemplateHasNoSizes  = errors.New("template has no sizes")
	ErrNoTemplate          = errors.New("no template selected")
	ErrSizeNotInTemplate   = errors.New("size does not belong to the selected template")
	ErrInvalidRatio        = errors.New("invalid resin ratio")
	ErrUnknownColor        = errors.New("unknown resin color")
	ErrInvalidTransparency = errors.New("invalid resin transparency")
	ErrUnknownFont         = errors.New("unknown font")
	ErrInvalidFontSize     = errors.New("invalid font size")
	ErrInvalidPosition     = errors.New("invalid text position")
	ErrIncomplete          = errors.New("configuration is not complete")
	ErrUnknownAction       = errors.New("unknown action")
)

var rejections = []error{
	ErrInvalidStep, ErrStepLocked, ErrUnknownTemplate, ErrTemplateHasNoSizes,
	ErrNoTemplate, ErrSizeNotInTemplate, ErrInvalidRatio, ErrUnknownColor,
	ErrInvalidTransparency, ErrUnknownFont, ErrInvalidFontSize, ErrInvalidPosition,
	ErrIncomplete, ErrUnknownAction,
}

// IsRejection reports whether err is a refused transition rather than an
// infrastructure failure.
func IsRejection(err error) bool {
	if err == nil {
		return false
	}
	var rej *personalization.RejectionError
	if errors.As(err, &rej) {
		return true
	}
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}

// State is the full configurator value. Transitions never modify a State in
// place; they build a new one.
type State struct {
	Step          Step                        `json:"step"`
	Configuration domain.ProductConfiguration `json:"configuration"`
	Price         domain.PriceBreakdown       `json:"price"`
	IsComplete    bool                        `json:"is_complete"`
}

func Initial() State {
	return State{Step: FirstStep}
}

// IsInitial reports whether s holds nothing beyond the first step.
func (s State) IsInitial() bool {
	c := s.Configuration
	return s.Step == FirstStep &&
		c.Template == nil && c.SelectedSize == nil && c.Resin == nil && c.Personalization == nil &&
		!c.ConfirmedVariation &&
		s.Price == (domain.PriceBreakdown{}) && !s.IsComplete
}
