package ingest

import (
	"regexp"
	"strings"

	"github.com/burkiv/dersb/classify"
)

// turkishTranslit maps the folded Turkish letters to their ASCII slugs.
var turkishTranslit = strings.NewReplacer(
	"ğ", "g",
	"ü", "u",
	"ş", "s",
	"ı", "i",
	"ö", "o",
	"ç", "c",
)

var nonSlugRunRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a free-text label to a stable ASCII identifier token:
// Turkish-folded lowercase, transliterated, non-alphanumeric runs collapsed
// to single hyphens. "Ramazan Yetgin" becomes "ramazan-yetgin".
func Slugify(s string) string {
	s = turkishTranslit.Replace(classify.Fold(s))
	s = nonSlugRunRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
