package httpserver

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/phenrril/resinwood/internal/domain"
)

var localeMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.French,
	language.Arabic,
})

// requestLocale prefers ?locale= and falls back to Accept-Language.
func requestLocale(r *http.Request) domain.Locale {
	tag, _ := language.MatchStrings(localeMatcher, r.URL.Query().Get("locale"), r.Header.Get("Accept-Language"))
	base, _ := tag.Base()
	return domain.ParseLocale(base.String())
}
