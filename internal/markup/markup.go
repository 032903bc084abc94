// Package markup holds the text helpers for Telegram HTML messages.
package markup

import (
	"net/url"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes the three characters Telegram's HTML parse mode
// reserves. Quotes are left alone: Telegram only requires these entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// SiteName returns a human-friendly site name for a link: the host without a
// leading www. Empty when the link does not parse.
func SiteName(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// Truncate cuts s to at most limit runes. Cutting on runes, not bytes,
// keeps multi-byte text valid for the Telegram API.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
