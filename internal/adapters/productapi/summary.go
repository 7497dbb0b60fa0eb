package productapi

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const summaryLen = 160

// Summarize flattens an HTML description to plain text and cuts it to at
// most max runes on a word boundary.
func Summarize(html string, max int) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("script,style").Remove()
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i >= 0 && utf8.RuneCountInString(cut[:i]) > max/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
