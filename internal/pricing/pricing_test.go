package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phenrril/resinwood/internal/domain"
)

func burl() *domain.WoodTemplate {
	return &domain.WoodTemplate{
		ID:        "olive-burl-serving",
		BasePrice: domain.MoneyFromUnits(89),
		Sizes: []domain.ProductSize{
			{ID: "small", PriceModifier: 0},
			{ID: "medium", PriceModifier: domain.MoneyFromUnits(35)},
		},
	}
}

func roseGold() domain.ResinColor {
	return domain.ResinColor{ID: "rose-gold", PriceModifier: domain.MoneyFromUnits(20), IsPremium: true}
}

func TestCalculateWithoutTemplate(t *testing.T) {
	table := DefaultTable()
	cfgs := []domain.ProductConfiguration{
		{},
		{Resin: &domain.ResinConfig{Ratio: domain.RatioHigh, Color: roseGold()}},
		{Personalization: &domain.Personalization{Text: "Hi"}, ConfirmedVariation: true},
		{SelectedSize: &domain.ProductSize{ID: "x", PriceModifier: 500}},
	}
	for _, cfg := range cfgs {
		assert.Equal(t, domain.PriceBreakdown{}, table.Calculate(cfg))
	}
}

func TestCalculateSumsComponents(t *testing.T) {
	table := DefaultTable()
	tpl := burl()
	size := tpl.Sizes[1]
	cfg := domain.ProductConfiguration{
		Template:           tpl,
		SelectedSize:       &size,
		Resin:              &domain.ResinConfig{Ratio: domain.RatioHigh, Color: roseGold(), Transparency: domain.TransparencyOpaque},
		Personalization:    &domain.Personalization{Text: "Happy Anniversary"},
		ConfirmedVariation: true,
	}
	b := table.Calculate(cfg)
	assert.Equal(t, domain.MoneyFromUnits(89), b.BasePrice)
	assert.Equal(t, domain.MoneyFromUnits(35), b.SizeModifier)
	assert.Equal(t, domain.MoneyFromUnits(30), b.ResinModifier)
	assert.Equal(t, domain.MoneyFromUnits(20), b.ColorModifier)
	assert.Equal(t, domain.MoneyFromUnits(25), b.PersonalizationFee)
	assert.Equal(t, b.BasePrice+b.SizeModifier+b.ResinModifier+b.ColorModifier+b.PersonalizationFee, b.Total)
	assert.Equal(t, domain.MoneyFromUnits(199), b.Total)
}

func TestCalculatePartial(t *testing.T) {
	table := DefaultTable()
	b := table.Calculate(domain.ProductConfiguration{Template: burl()})
	assert.Equal(t, domain.MoneyFromUnits(89), b.Total, "no size, resin or engraving")

	b = table.Calculate(domain.ProductConfiguration{
		Template:        burl(),
		Personalization: &domain.Personalization{Text: ""},
	})
	assert.Equal(t, domain.Money(0), b.PersonalizationFee, "empty text is free")
}

func TestRatioTable(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, domain.Money(0), table.ResinModifier(&domain.ResinConfig{Ratio: domain.RatioLow}))
	assert.Equal(t, domain.MoneyFromUnits(15), table.ResinModifier(&domain.ResinConfig{Ratio: domain.RatioMedium}))
	assert.Equal(t, domain.MoneyFromUnits(30), table.ResinModifier(&domain.ResinConfig{Ratio: domain.RatioHigh}))
	assert.Equal(t, domain.Money(0), table.ResinModifier(nil))
	assert.Equal(t, 20, table.Coverage(domain.RatioLow))
	assert.Equal(t, 40, table.Coverage(domain.RatioMedium))
	assert.Equal(t, 60, table.Coverage(domain.RatioHigh))
}

func TestDefaultTableIsACopy(t *testing.T) {
	table := DefaultTable()
	table.RatioModifiers[domain.RatioHigh] = 1
	assert.Equal(t, domain.MoneyFromUnits(30), DefaultTable().RatioModifiers[domain.RatioHigh])
}

func TestIsComplete(t *testing.T) {
	tpl := burl()
	size := tpl.Sizes[0]
	resin := &domain.ResinConfig{Ratio: domain.RatioMedium}

	full := domain.ProductConfiguration{Template: tpl, SelectedSize: &size, Resin: resin}
	assert.False(t, IsComplete(full))
	full.ConfirmedVariation = true
	assert.True(t, IsComplete(full))
	full.ConfirmedVariation = false
	assert.False(t, IsComplete(full))

	for _, cfg := range []domain.ProductConfiguration{
		{SelectedSize: &size, Resin: resin, ConfirmedVariation: true},
		{Template: tpl, Resin: resin, ConfirmedVariation: true},
		{Template: tpl, SelectedSize: &size, ConfirmedVariation: true},
	} {
		assert.False(t, IsComplete(cfg))
	}
}
