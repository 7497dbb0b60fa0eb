package domain

type ResinRatio string

const (
	RatioLow    ResinRatio = "low"
	RatioMedium ResinRatio = "medium"
	RatioHigh   ResinRatio = "high"
)

func (r ResinRatio) Valid() bool {
	return r == RatioLow || r == RatioMedium || r == RatioHigh
}

// ResinTransparency is display-only and never affects price.
type ResinTransparency string

const (
	TransparencyOpaque      ResinTransparency = "opaque"
	TransparencyTranslucent ResinTransparency = "translucent"
	TransparencyTransparent ResinTransparency = "transparent"
)

func (t ResinTransparency) Valid() bool {
	return t == TransparencyOpaque || t == TransparencyTranslucent || t == TransparencyTransparent
}

type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

func (f FontSize) Valid() bool {
	return f == FontSmall || f == FontMedium || f == FontLarge
}

type TextPosition string

const (
	PositionCenter      TextPosition = "center"
	PositionBottomRight TextPosition = "bottom-right"
	PositionTopLeft     TextPosition = "top-left"
	PositionBottomLeft  TextPosition = "bottom-left"
)

func (p TextPosition) Valid() bool {
	switch p {
	case PositionCenter, PositionBottomRight, PositionTopLeft, PositionBottomLeft:
		return true
	}
	return false
}

type ResinConfig struct {
	Ratio        ResinRatio        `json:"ratio"`
	Color        ResinColor        `json:"color"`
	Transparency ResinTransparency `json:"transparency"`
}

// Personalization is optional engraving. FontFamily holds a FontOption id.
type Personalization struct {
	Text       string       `json:"text"`
	FontFamily string       `json:"font_family"`
	FontSize   FontSize     `json:"font_size"`
	Position   TextPosition `json:"position"`
}

// ProductConfiguration is the in-progress customization. SelectedSize, when
// set, is always one of Template.Sizes.
type ProductConfiguration struct {
	Template           *WoodTemplate    `json:"template"`
	SelectedSize       *ProductSize     `json:"selected_size"`
	Resin              *ResinConfig     `json:"resin"`
	Personalization    *Personalization `json:"personalization"`
	ConfirmedVariation bool             `json:"confirmed_variation"`
}

type PriceBreakdown struct {
	BasePrice          Money `json:"base_price"`
	SizeModifier       Money `json:"size_modifier"`
	ResinModifier      Money `json:"resin_modifier"`
	ColorModifier      Money `json:"color_modifier"`
	PersonalizationFee Money `json:"personalization_fee"`
	Total              Money `json:"total"`
}
