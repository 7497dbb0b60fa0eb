package domain

// ConfigurationMeta is the configuration snapshot stored with a configured
// cart line. It is copied at add time and never points back at the catalog.
type ConfigurationMeta struct {
	TemplateID          string          `json:"template_id"`
	TemplateName        string          `json:"template_name,omitempty"`
	SizeID              string          `json:"size_id"`
	SizeLabel           string          `json:"size_label"`
	ResinColor          string          `json:"resin_color"`
	ResinColorHex       string          `json:"resin_color_hex"`
	ResinRatio          string          `json:"resin_ratio"`
	ResinTransparency   string          `json:"resin_transparency"`
	PersonalizationText string          `json:"personalization_text,omitempty"`
	PersonalizationFont string          `json:"personalization_font,omitempty"`
	PriceBreakdown      *PriceBreakdown `json:"price_breakdown,omitempty"`
}

type CartItem struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	UnitPrice     Money              `json:"price"`
	Quantity      int                `json:"quantity"`
	Image         string             `json:"image,omitempty"`
	IsConfigured  bool               `json:"is_configured,omitempty"`
	Configuration *ConfigurationMeta `json:"configuration,omitempty"`
}

func (it CartItem) LineTotal() Money {
	return it.UnitPrice.Mul(it.Quantity)
}
