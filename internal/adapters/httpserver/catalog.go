package httpserver

import (
	"net/http"
	"strings"

	"github.com/phenrril/resinwood/internal/domain"
)

// templateView adds locale-resolved display strings next to the raw
// translations.
type templateView struct {
	domain.WoodTemplate
	DisplayName        string `json:"display_name"`
	DisplayDescription string `json:"display_description"`
}

type colorView struct {
	domain.ResinColor
	DisplayName string `json:"display_name"`
}

func viewTemplate(t domain.WoodTemplate, loc domain.Locale) templateView {
	return templateView{WoodTemplate: t, DisplayName: t.Name.Resolve(loc), DisplayDescription: t.Description.Resolve(loc)}
}

func (s *Server) apiTemplates(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	var list []domain.WoodTemplate
	switch {
	case q.Get("category") != "":
		list = s.catalog.TemplatesByCategory(domain.ProductCategory(q.Get("category")))
	case q.Get("wood_type") != "":
		list = s.catalog.TemplatesByWoodType(domain.WoodType(q.Get("wood_type")))
	default:
		list = s.catalog.Templates()
	}
	if wt := q.Get("wood_type"); wt != "" && q.Get("category") != "" {
		filtered := list[:0]
		for _, t := range list {
			if string(t.WoodType) == wt {
				filtered = append(filtered, t)
			}
		}
		list = filtered
	}
	loc := requestLocale(r)
	out := make([]templateView, 0, len(list))
	for _, t := range list {
		out = append(out, viewTemplate(t, loc))
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": out, "locale": loc})
}

func (s *Server) apiTemplateByID(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/catalog/templates/"), "/")
	t, ok := s.catalog.TemplateByID(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, viewTemplate(t, requestLocale(r)))
}

func (s *Server) apiColors(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	var list []domain.ResinColor
	switch r.URL.Query().Get("tier") {
	case "standard":
		list = s.catalog.StandardColors()
	case "premium":
		list = s.catalog.PremiumColors()
	case "":
		list = s.catalog.Colors()
	default:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "tier must be standard or premium"})
		return
	}
	loc := requestLocale(r)
	out := make([]colorView, 0, len(list))
	for _, c := range list {
		out = append(out, colorView{ResinColor: c, DisplayName: c.Name.Resolve(loc)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"colors": out, "default": s.catalog.DefaultColor().ID})
}

func (s *Server) apiFonts(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"fonts": s.catalog.Fonts(), "default": s.catalog.DefaultFont().ID})
}
