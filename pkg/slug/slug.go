// Package slug turns titles into URL fragment identifiers.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Generate lowercases name, strips accents and joins the remaining ASCII
// letters and digits with single hyphens.
//
//	"UI/UX & Graphic Design" -> "ui-ux-graphic-design"
//	"Café Ordering App"      -> "cafe-ordering-app"
func Generate(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range norm.NFD.String(strings.ToLower(name)) {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining accent left over from decomposition
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}
