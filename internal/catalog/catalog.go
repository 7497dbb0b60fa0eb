// Package catalog holds the static reference data of the configurator:
// wood templates with their sizes, resin colours, engraving fonts and the
// pricing table. Data is loaded once at startup and never mutated.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/phenrril/resinwood/internal/domain"
	"github.com/phenrril/resinwood/internal/pricing"
)

//go:embed catalog.yaml
var embedded []byte

var hexRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Catalog struct {
	templates []domain.WoodTemplate
	colors    []domain.ResinColor
	fonts     []domain.FontOption
	table     pricing.Table

	templateIdx map[string]int
	colorIdx    map[string]int
	fontIdx     map[string]int
	defaultClr  int
}

type fileData struct {
	Pricing   *filePricing        `yaml:"pricing"`
	Templates []fileTemplate      `yaml:"templates"`
	Colors    []fileColor         `yaml:"colors"`
	Fonts     []domain.FontOption `yaml:"fonts"`
}

type filePricing struct {
	PersonalizationFee string               `yaml:"personalization_fee"`
	Ratios             map[string]fileRatio `yaml:"ratios"`
}

type fileRatio struct {
	Modifier string `yaml:"modifier"`
	Coverage int    `yaml:"coverage"`
}

type fileTemplate struct {
	ID          string               `yaml:"id"`
	Name        domain.LocalizedText `yaml:"name"`
	WoodType    string               `yaml:"wood_type"`
	Category    string               `yaml:"category"`
	BasePrice   string               `yaml:"base_price"`
	Sizes       []fileSize           `yaml:"sizes"`
	Images      []domain.ImageSet    `yaml:"images"`
	Description domain.LocalizedText `yaml:"description"`
	GrainNote   domain.LocalizedText `yaml:"grain_note"`
}

type fileSize struct {
	ID            string               `yaml:"id"`
	Label         domain.LocalizedText `yaml:"label"`
	Dimensions    domain.Dimensions    `yaml:"dimensions"`
	PriceModifier string               `yaml:"price_modifier"`
	Stock         int                  `yaml:"stock"`
}

type fileColor struct {
	ID            string               `yaml:"id"`
	Name          domain.LocalizedText `yaml:"name"`
	Hex           string               `yaml:"hex"`
	PriceModifier string               `yaml:"price_modifier"`
	Premium       bool                 `yaml:"premium"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads a catalog file; an empty path yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var f fileData
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	c := &Catalog{
		table:       pricing.DefaultTable(),
		templateIdx: map[string]int{},
		colorIdx:    map[string]int{},
		fontIdx:     map[string]int{},
		defaultClr:  -1,
	}
	if f.Pricing != nil {
		if err := c.applyPricing(f.Pricing); err != nil {
			return nil, err
		}
	}
	for _, ft := range f.Templates {
		t, err := buildTemplate(ft)
		if err != nil {
			return nil, err
		}
		if _, dup := c.templateIdx[t.ID]; dup {
			return nil, fmt.Errorf("template %q: duplicate id", t.ID)
		}
		c.templateIdx[t.ID] = len(c.templates)
		c.templates = append(c.templates, t)
	}
	for _, fc := range f.Colors {
		clr, err := buildColor(fc)
		if err != nil {
			return nil, err
		}
		if _, dup := c.colorIdx[clr.ID]; dup {
			return nil, fmt.Errorf("color %q: duplicate id", clr.ID)
		}
		if clr.IsPremium != (clr.PriceModifier > 0) {
			log.Warn().Str("color", clr.ID).Bool("premium", clr.IsPremium).Str("modifier", clr.PriceModifier.String()).Msg("premium flag does not match price modifier")
		}
		if c.defaultClr < 0 && !clr.IsPremium {
			c.defaultClr = len(c.colors)
		}
		c.colorIdx[clr.ID] = len(c.colors)
		c.colors = append(c.colors, clr)
	}
	for _, fo := range f.Fonts {
		if fo.ID == "" {
			return nil, errors.New("font without id")
		}
		if _, dup := c.fontIdx[fo.ID]; dup {
			return nil, fmt.Errorf("font %q: duplicate id", fo.ID)
		}
		c.fontIdx[fo.ID] = len(c.fonts)
		c.fonts = append(c.fonts, fo)
	}
	if len(c.templates) == 0 {
		return nil, errors.New("catalog has no templates")
	}
	if c.defaultClr < 0 {
		return nil, errors.New("catalog needs at least one standard color")
	}
	if len(c.fonts) == 0 {
		return nil, errors.New("catalog has no fonts")
	}
	return c, nil
}

func (c *Catalog) applyPricing(p *filePricing) error {
	if p.PersonalizationFee != "" {
		fee, err := domain.ParseMoney(p.PersonalizationFee)
		if err != nil {
			return fmt.Errorf("personalization fee: %w", err)
		}
		c.table.PersonalizationFee = fee
	}
	for name, r := range p.Ratios {
		ratio := domain.ResinRatio(name)
		if !ratio.Valid() {
			return fmt.Errorf("unknown resin ratio %q", name)
		}
		mod, err := domain.ParseMoney(r.Modifier)
		if err != nil {
			return fmt.Errorf("ratio %s: %w", name, err)
		}
		c.table.RatioModifiers[ratio] = mod
		c.table.RatioCoverage[ratio] = r.Coverage
	}
	return nil
}

func buildTemplate(ft fileTemplate) (domain.WoodTemplate, error) {
	t := domain.WoodTemplate{
		ID:          ft.ID,
		Name:        ft.Name,
		WoodType:    domain.WoodType(ft.WoodType),
		Category:    domain.ProductCategory(ft.Category),
		Images:      ft.Images,
		Description: ft.Description,
		GrainNote:   ft.GrainNote,
	}
	if t.ID == "" {
		return t, errors.New("template without id")
	}
	if !t.WoodType.Valid() {
		return t, fmt.Errorf("template %q: unknown wood type %q", t.ID, ft.WoodType)
	}
	if !t.Category.Valid() {
		return t, fmt.Errorf("template %q: unknown category %q", t.ID, ft.Category)
	}
	base, err := domain.ParseMoney(ft.BasePrice)
	if err != nil {
		return t, fmt.Errorf("template %q base price: %w", t.ID, err)
	}
	if base < 0 {
		return t, fmt.Errorf("template %q: negative base price", t.ID)
	}
	t.BasePrice = base
	if len(ft.Sizes) == 0 {
		return t, fmt.Errorf("template %q: no sizes", t.ID)
	}
	seen := map[string]struct{}{}
	for _, fs := range ft.Sizes {
		if fs.ID == "" {
			return t, fmt.Errorf("template %q: size without id", t.ID)
		}
		if _, dup := seen[fs.ID]; dup {
			return t, fmt.Errorf("template %q: duplicate size %q", t.ID, fs.ID)
		}
		seen[fs.ID] = struct{}{}
		mod, err := domain.ParseMoney(fs.PriceModifier)
		if err != nil {
			return t, fmt.Errorf("template %q size %q: %w", t.ID, fs.ID, err)
		}
		if fs.Stock < 0 {
			return t, fmt.Errorf("template %q size %q: negative stock", t.ID, fs.ID)
		}
		t.Sizes = append(t.Sizes, domain.ProductSize{
			ID:            fs.ID,
			Label:         fs.Label,
			Dimensions:    fs.Dimensions,
			PriceModifier: mod,
			Stock:         fs.Stock,
		})
	}
	return t, nil
}

func buildColor(fc fileColor) (domain.ResinColor, error) {
	if fc.ID == "" {
		return domain.ResinColor{}, errors.New("color without id")
	}
	if !hexRe.MatchString(fc.Hex) {
		return domain.ResinColor{}, fmt.Errorf("color %q: invalid hex %q", fc.ID, fc.Hex)
	}
	mod, err := domain.ParseMoney(fc.PriceModifier)
	if err != nil {
		return domain.ResinColor{}, fmt.Errorf("color %q: %w", fc.ID, err)
	}
	return domain.ResinColor{ID: fc.ID, Name: fc.Name, Hex: fc.Hex, PriceModifier: mod, IsPremium: fc.Premium}, nil
}

// --- Lookups ---

func (c *Catalog) Templates() []domain.WoodTemplate {
	out := make([]domain.WoodTemplate, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, clone(t))
	}
	return out
}

func (c *Catalog) TemplateByID(id string) (domain.WoodTemplate, bool) {
	i, ok := c.templateIdx[id]
	if !ok {
		return domain.WoodTemplate{}, false
	}
	return clone(c.templates[i]), true
}

func (c *Catalog) TemplatesByCategory(cat domain.ProductCategory) []domain.WoodTemplate {
	out := []domain.WoodTemplate{}
	for _, t := range c.templates {
		if t.Category == cat {
			out = append(out, clone(t))
		}
	}
	return out
}

func (c *Catalog) TemplatesByWoodType(w domain.WoodType) []domain.WoodTemplate {
	out := []domain.WoodTemplate{}
	for _, t := range c.templates {
		if t.WoodType == w {
			out = append(out, clone(t))
		}
	}
	return out
}

// clone copies the slices so callers cannot reach the catalog's backing arrays.
func clone(t domain.WoodTemplate) domain.WoodTemplate {
	t.Sizes = append([]domain.ProductSize(nil), t.Sizes...)
	t.Images = append([]domain.ImageSet(nil), t.Images...)
	return t
}

func (c *Catalog) Colors() []domain.ResinColor {
	return append([]domain.ResinColor(nil), c.colors...)
}

func (c *Catalog) ColorByID(id string) (domain.ResinColor, bool) {
	i, ok := c.colorIdx[id]
	if !ok {
		return domain.ResinColor{}, false
	}
	return c.colors[i], true
}

func (c *Catalog) StandardColors() []domain.ResinColor {
	return c.colorsWhere(false)
}

func (c *Catalog) PremiumColors() []domain.ResinColor {
	return c.colorsWhere(true)
}

func (c *Catalog) colorsWhere(premium bool) []domain.ResinColor {
	out := []domain.ResinColor{}
	for _, clr := range c.colors {
		if clr.IsPremium == premium {
			out = append(out, clr)
		}
	}
	return out
}

// DefaultColor is the first standard colour.
func (c *Catalog) DefaultColor() domain.ResinColor {
	return c.colors[c.defaultClr]
}

func (c *Catalog) Fonts() []domain.FontOption {
	return append([]domain.FontOption(nil), c.fonts...)
}

func (c *Catalog) FontByID(id string) (domain.FontOption, bool) {
	i, ok := c.fontIdx[id]
	if !ok {
		return domain.FontOption{}, false
	}
	return c.fonts[i], true
}

func (c *Catalog) DefaultFont() domain.FontOption {
	return c.fonts[0]
}

func (c *Catalog) PricingTable() pricing.Table {
	t := pricing.DefaultTable()
	for k, v := range c.table.RatioModifiers {
		t.RatioModifiers[k] = v
	}
	for k, v := range c.table.RatioCoverage {
		t.RatioCoverage[k] = v
	}
	t.PersonalizationFee = c.table.PersonalizationFee
	return t
}
