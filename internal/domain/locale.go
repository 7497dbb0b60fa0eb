package domain

import "strings"

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleFR Locale = "fr"
	LocaleAR Locale = "ar"
)

// BaseLocale is used whenever a localized value is missing.
const BaseLocale = LocaleEN

var SupportedLocales = []Locale{LocaleEN, LocaleFR, LocaleAR}

// ParseLocale accepts "fr", "FR", "fr-FR" and similar; anything unknown maps to BaseLocale.
func ParseLocale(s string) Locale {
	v := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(v, "-_"); i > 0 {
		v = v[:i]
	}
	switch Locale(v) {
	case LocaleEN, LocaleFR, LocaleAR:
		return Locale(v)
	}
	return BaseLocale
}

type LocalizedText struct {
	EN string `json:"en" yaml:"en"`
	FR string `json:"fr" yaml:"fr"`
	AR string `json:"ar" yaml:"ar"`
}

func (t LocalizedText) Resolve(l Locale) string {
	var v string
	switch l {
	case LocaleFR:
		v = t.FR
	case LocaleAR:
		v = t.AR
	default:
		v = t.EN
	}
	if v == "" {
		return t.EN
	}
	return v
}

func (t LocalizedText) IsZero() bool {
	return t.EN == "" && t.FR == "" && t.AR == ""
}
