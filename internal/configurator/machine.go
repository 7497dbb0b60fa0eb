// Package configurator is the state machine behind the four step product
// wizard. Every transition takes a State and returns the next one; a rejected
// transition returns the input state together with an error.
package configurator

import (
	"github.com/phenrril/resinwood/internal/domain"
	"github.com/phenrril/resinwood/internal/personalization"
	"github.com/phenrril/resinwood/internal/pricing"
)

// Catalog is the reference data the machine reads. *catalog.Catalog
// implements it.
type Catalog interface {
	TemplateByID(id string) (domain.WoodTemplate, bool)
	ColorByID(id string) (domain.ResinColor, bool)
	DefaultColor() domain.ResinColor
	FontByID(id string) (domain.FontOption, bool)
	DefaultFont() domain.FontOption
}

const (
	DefaultRatio        = domain.RatioMedium
	DefaultTransparency = domain.TransparencyTranslucent
	DefaultFontSize     = domain.FontMedium
	DefaultPosition     = domain.PositionCenter
)

type Machine struct {
	catalog Catalog
	table   pricing.Table
	policy  personalization.Policy
}

func New(cat Catalog, table pricing.Table, policy personalization.Policy) *Machine {
	return &Machine{catalog: cat, table: table, policy: policy}
}

func (m *Machine) Table() pricing.Table { return m.table }

func (m *Machine) Policy() personalization.Policy { return m.policy }

// --- navigation ---

// SetStep jumps to n. Going back is always allowed; going forward requires
// every step in between to be complete.
func (m *Machine) SetStep(s State, n Step) (State, error) {
	if !n.Valid() {
		return s, ErrInvalidStep
	}
	for st := s.Step; st < n; st++ {
		if !gateOpen(st, s.Configuration) {
			return s, ErrStepLocked
		}
	}
	s.Step = n
	return s, nil
}

// Next advances one step. It is a no-op on the last step.
func (m *Machine) Next(s State) (State, error) {
	if s.Step >= LastStep {
		return s, nil
	}
	return m.SetStep(s, s.Step+1)
}

// Prev goes back one step. It is a no-op on the first step.
func (m *Machine) Prev(s State) (State, error) {
	if s.Step <= FirstStep {
		return s, nil
	}
	return m.SetStep(s, s.Step-1)
}

func (m *Machine) CanProceed(s State) bool {
	return gateOpen(s.Step, s.Configuration)
}

func (m *Machine) CanGoBack(s State) bool {
	return s.Step > FirstStep
}

func gateOpen(st Step, c domain.ProductConfiguration) bool {
	switch st {
	case StepStyle:
		return c.Template != nil && c.SelectedSize != nil
	case StepResin:
		return c.Resin != nil
	case StepColor:
		return c.Resin != nil && c.Resin.Color.ID != ""
	case StepPersonalize:
		return true
	}
	return false
}

// --- template and size ---

// SelectTemplate picks t and its first size. A default resin is created when
// none exists yet; an existing resin is kept.
func (m *Machine) SelectTemplate(s State, t domain.WoodTemplate) (State, error) {
	if len(t.Sizes) == 0 {
		return s, ErrTemplateHasNoSizes
	}
	t.Sizes = append([]domain.ProductSize(nil), t.Sizes...)
	size := t.Sizes[0]
	s.Configuration.Template = &t
	s.Configuration.SelectedSize = &size
	if s.Configuration.Resin == nil {
		s.Configuration.Resin = m.defaultResin()
	}
	return m.reprice(s), nil
}

func (m *Machine) SelectTemplateByID(s State, id string) (State, error) {
	t, ok := m.catalog.TemplateByID(id)
	if !ok {
		return s, ErrUnknownTemplate
	}
	return m.SelectTemplate(s, t)
}

// SelectSize stores the selected template's own copy of the size.
func (m *Machine) SelectSize(s State, sizeID string) (State, error) {
	t := s.Configuration.Template
	if t == nil {
		return s, ErrNoTemplate
	}
	size, ok := t.Size(sizeID)
	if !ok {
		return s, ErrSizeNotInTemplate
	}
	s.Configuration.SelectedSize = &size
	return m.reprice(s), nil
}

// --- resin ---

func (m *Machine) defaultResin() *domain.ResinConfig {
	return &domain.ResinConfig{
		Ratio:        DefaultRatio,
		Color:        m.catalog.DefaultColor(),
		Transparency: DefaultTransparency,
	}
}

// resin returns a copy of the current resin, or the default one.
func (m *Machine) resin(c domain.ProductConfiguration) *domain.ResinConfig {
	if c.Resin == nil {
		return m.defaultResin()
	}
	r := *c.Resin
	return &r
}

func (m *Machine) SetResinRatio(s State, r domain.ResinRatio) (State, error) {
	if !r.Valid() {
		return s, ErrInvalidRatio
	}
	resin := m.resin(s.Configuration)
	resin.Ratio = r
	s.Configuration.Resin = resin
	return m.reprice(s), nil
}

func (m *Machine) SetResinColor(s State, colorID string) (State, error) {
	clr, ok := m.catalog.ColorByID(colorID)
	if !ok {
		return s, ErrUnknownColor
	}
	resin := m.resin(s.Configuration)
	resin.Color = clr
	s.Configuration.Resin = resin
	return m.reprice(s), nil
}

// SetResinTransparency leaves the price untouched.
func (m *Machine) SetResinTransparency(s State, t domain.ResinTransparency) (State, error) {
	if !t.Valid() {
		return s, ErrInvalidTransparency
	}
	resin := m.resin(s.Configuration)
	resin.Transparency = t
	s.Configuration.Resin = resin
	s.IsComplete = pricing.IsComplete(s.Configuration)
	return s, nil
}

// --- personalization and confirmation ---

// SetPersonalization replaces the engraving. nil or blank text removes it.
// Empty font, size and position fall back to the defaults.
func (m *Machine) SetPersonalization(s State, p *domain.Personalization) (State, error) {
	if p == nil {
		s.Configuration.Personalization = nil
		return m.reprice(s), nil
	}
	text, err := m.policy.Normalize(p.Text)
	if err != nil {
		return s, err
	}
	if text == "" {
		s.Configuration.Personalization = nil
		return m.reprice(s), nil
	}
	next := domain.Personalization{
		Text:       text,
		FontFamily: p.FontFamily,
		FontSize:   p.FontSize,
		Position:   p.Position,
	}
	if next.FontFamily == "" {
		next.FontFamily = m.catalog.DefaultFont().ID
	} else if _, ok := m.catalog.FontByID(next.FontFamily); !ok {
		return s, ErrUnknownFont
	}
	if next.FontSize == "" {
		next.FontSize = DefaultFontSize
	} else if !next.FontSize.Valid() {
		return s, ErrInvalidFontSize
	}
	if next.Position == "" {
		next.Position = DefaultPosition
	} else if !next.Position.Valid() {
		return s, ErrInvalidPosition
	}
	s.Configuration.Personalization = &next
	return m.reprice(s), nil
}

func (m *Machine) SetConfirmedVariation(s State, confirmed bool) (State, error) {
	s.Configuration.ConfirmedVariation = confirmed
	s.IsComplete = pricing.IsComplete(s.Configuration)
	return s, nil
}

// Reset discards the configuration and returns to the first step.
func (m *Machine) Reset(State) (State, error) {
	return Initial(), nil
}

// Coverage is the resin coverage percentage shown for s, 0 without resin.
func (m *Machine) Coverage(s State) int {
	if s.Configuration.Resin == nil {
		return 0
	}
	return m.table.Coverage(s.Configuration.Resin.Ratio)
}

func (m *Machine) reprice(s State) State {
	s.Price = m.table.Calculate(s.Configuration)
	s.IsComplete = pricing.IsComplete(s.Configuration)
	return s
}
