package domain

type WoodType string

const (
	WoodOliveBurl     WoodType = "olive-burl"
	WoodOliveLiveEdge WoodType = "olive-live-edge"
	WoodOliveRoot     WoodType = "olive-root"
	WoodOliveClassic  WoodType = "olive-classic"
)

func (w WoodType) Valid() bool {
	switch w {
	case WoodOliveBurl, WoodOliveLiveEdge, WoodOliveRoot, WoodOliveClassic:
		return true
	}
	return false
}

type ProductCategory string

const (
	CategoryServingBoard ProductCategory = "serving-board"
	CategoryCoaster      ProductCategory = "coaster"
	CategoryTable        ProductCategory = "table"
	CategoryClock        ProductCategory = "clock"
	CategoryTray         ProductCategory = "tray"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryServingBoard, CategoryCoaster, CategoryTable, CategoryClock, CategoryTray:
		return true
	}
	return false
}

type Dimensions struct {
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`
	Thickness float64 `json:"thickness" yaml:"thickness"`
}

type ProductSize struct {
	ID            string        `json:"id"`
	Label         LocalizedText `json:"label"`
	Dimensions    Dimensions    `json:"dimensions"`
	PriceModifier Money         `json:"price_modifier"`
	Stock         int           `json:"stock"`
}

type ImageSet struct {
	SM string `json:"sm" yaml:"sm"`
	MD string `json:"md" yaml:"md"`
	LG string `json:"lg" yaml:"lg"`
}

type WoodTemplate struct {
	ID          string          `json:"id"`
	Name        LocalizedText   `json:"name"`
	WoodType    WoodType        `json:"wood_type"`
	Category    ProductCategory `json:"category"`
	Sizes       []ProductSize   `json:"sizes"`
	Images      []ImageSet      `json:"images"`
	BasePrice   Money           `json:"base_price"`
	Description LocalizedText   `json:"description"`
	GrainNote   LocalizedText   `json:"grain_note"`
}

// Size returns the template's own copy of the size with the given id.
func (t *WoodTemplate) Size(id string) (ProductSize, bool) {
	for _, s := range t.Sizes {
		if s.ID == id {
			return s, true
		}
	}
	return ProductSize{}, false
}

func (t *WoodTemplate) PreviewImage() string {
	if len(t.Images) == 0 {
		return ""
	}
	return t.Images[0].MD
}

type ResinColor struct {
	ID            string        `json:"id"`
	Name          LocalizedText `json:"name"`
	Hex           string        `json:"hex"`
	PriceModifier Money         `json:"price_modifier"`
	IsPremium     bool          `json:"is_premium"`
}

type FontOption struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Family        string `json:"family" yaml:"family"`
	StylesheetURL string `json:"stylesheet_url" yaml:"stylesheet_url"`
	PreviewText   string `json:"preview_text" yaml:"preview_text"`
}
