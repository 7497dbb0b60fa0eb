package configurator

import "github.com/phenrril/resinwood/internal/domain"

// NewCartItem turns a complete state into a cart line draft. Labels are
// resolved for loc and copied, so later catalog changes do not reach the
// line. ID and Quantity are left for the cart to assign.
func (m *Machine) NewCartItem(s State, loc domain.Locale) (domain.CartItem, error) {
	c := s.Configuration
	if !s.IsComplete || c.Template == nil || c.SelectedSize == nil || c.Resin == nil {
		return domain.CartItem{}, ErrIncomplete
	}
	price := m.table.Calculate(c)
	meta := &domain.ConfigurationMeta{
		TemplateID:        c.Template.ID,
		TemplateName:      c.Template.Name.Resolve(loc),
		SizeID:            c.SelectedSize.ID,
		SizeLabel:         c.SelectedSize.Label.Resolve(loc),
		ResinColor:        c.Resin.Color.Name.Resolve(loc),
		ResinColorHex:     c.Resin.Color.Hex,
		ResinRatio:        string(c.Resin.Ratio),
		ResinTransparency: string(c.Resin.Transparency),
		PriceBreakdown:    &price,
	}
	if p := c.Personalization; p != nil {
		meta.PersonalizationText = p.Text
		meta.PersonalizationFont = p.FontFamily
		if f, ok := m.catalog.FontByID(p.FontFamily); ok {
			meta.PersonalizationFont = f.Name
		}
	}
	return domain.CartItem{
		Name:          c.Template.Name.Resolve(loc),
		UnitPrice:     price.Total,
		Image:         c.Template.PreviewImage(),
		IsConfigured:  true,
		Configuration: meta,
	}, nil
}
