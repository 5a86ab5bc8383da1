package codec

import (
	"net/url"
	"strings"
)

var (
	fieldEscaper = strings.NewReplacer("%", "%25", ";", "%3B", ":", "%3A")
	itemEscaper  = strings.NewReplacer("%", "%25", ";", "%3B")
)

func escapeField(s string) string { return fieldEscaper.Replace(s) }

// Items may keep ":" since they are never split on it ("at 09:00").
func escapeItem(s string) string { return itemEscaper.Replace(s) }

// unescape reverses the escapers. Text written before escaping existed may
// carry a stray "%"; anything that fails to decode is returned as is.
func unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	out, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return out
}
