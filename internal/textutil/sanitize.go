package textutil

import (
	"strings"
	"unicode"
)

// pathSeparatorReplacer turns path separators into dashes so a name stays a
// single path segment.
var pathSeparatorReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
)

// SanitizePathSegment makes name safe to use as one segment of an archive or
// filesystem path. Separators become dashes and control characters are
// dropped; everything else is kept as written. Returns fallback when nothing
// usable remains or the result is "." or "..".
func SanitizePathSegment(name, fallback string) string {
	name = pathSeparatorReplacer.Replace(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return fallback
	}
	return name
}
