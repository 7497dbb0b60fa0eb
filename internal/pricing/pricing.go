// Package pricing computes configurator price breakdowns and cart eligibility.
package pricing

import (
	"maps"

	"github.com/phenrril/resinwood/internal/domain"
)

// Table holds the fixed modifiers the engine applies on top of catalog prices.
// RatioCoverage is display data read by clients alongside the modifiers.
type Table struct {
	RatioModifiers     map[domain.ResinRatio]domain.Money `json:"ratio_modifiers"`
	RatioCoverage      map[domain.ResinRatio]int          `json:"ratio_coverage"`
	PersonalizationFee domain.Money                       `json:"personalization_fee"`
}

var (
	DefaultRatioModifiers = map[domain.ResinRatio]domain.Money{
		domain.RatioLow:    domain.MoneyFromUnits(0),
		domain.RatioMedium: domain.MoneyFromUnits(15),
		domain.RatioHigh:   domain.MoneyFromUnits(30),
	}
	DefaultRatioCoverage = map[domain.ResinRatio]int{
		domain.RatioLow:    20,
		domain.RatioMedium: 40,
		domain.RatioHigh:   60,
	}
	DefaultPersonalizationFee = domain.MoneyFromUnits(25)
)

func DefaultTable() Table {
	return Table{
		RatioModifiers:     maps.Clone(DefaultRatioModifiers),
		RatioCoverage:      maps.Clone(DefaultRatioCoverage),
		PersonalizationFee: DefaultPersonalizationFee,
	}
}

// Calculate returns the breakdown for cfg. A configuration without a template
// prices to the zero breakdown.
func (t Table) Calculate(cfg domain.ProductConfiguration) domain.PriceBreakdown {
	if cfg.Template == nil {
		return domain.PriceBreakdown{}
	}
	b := domain.PriceBreakdown{BasePrice: cfg.Template.BasePrice}
	if cfg.SelectedSize != nil {
		b.SizeModifier = cfg.SelectedSize.PriceModifier
	}
	b.ResinModifier = t.ResinModifier(cfg.Resin)
	if cfg.Resin != nil {
		b.ColorModifier = cfg.Resin.Color.PriceModifier
	}
	if cfg.Personalization != nil && cfg.Personalization.Text != "" {
		b.PersonalizationFee = t.PersonalizationFee
	}
	b.Total = b.BasePrice + b.SizeModifier + b.ResinModifier + b.ColorModifier + b.PersonalizationFee
	return b
}

func (t Table) ResinModifier(r *domain.ResinConfig) domain.Money {
	if r == nil {
		return 0
	}
	return t.RatioModifiers[r.Ratio]
}

func (t Table) Coverage(r domain.ResinRatio) int {
	return t.RatioCoverage[r]
}

// IsComplete reports whether cfg can be added to the cart. Personalization is
// never required.
func IsComplete(cfg domain.ProductConfiguration) bool {
	return cfg.Template != nil &&
		cfg.SelectedSize != nil &&
		cfg.Resin != nil &&
		cfg.ConfirmedVariation
}
