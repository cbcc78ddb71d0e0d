package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// imageExtensionPattern matches one trailing image extension token.
	imageExtensionPattern = regexp.MustCompile(`\.(jpe?g|png|webp)$`)
	// disallowedPattern matches runs of characters outside the comparison alphabet.
	disallowedPattern = regexp.MustCompile(`[^a-z0-9 ]+`)
	// shotSuffixPattern matches a trailing shot number such as "_1" or "_02".
	shotSuffixPattern = regexp.MustCompile(`_\d+$`)
)

// Normalize converts a label or file name into its canonical comparison form.
//
// The text is lowercased, diacritics are folded onto their base letters, one
// trailing image extension is dropped, every run of characters other than
// a-z, 0-9 and space becomes a single separator, and whitespace is collapsed
// and trimmed. Normalize never fails and Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	lowered := lowerFolded(text)
	lowered = imageExtensionPattern.ReplaceAllString(lowered, "")
	return collapse(lowered)
}

// BaseIdentity returns the identity used to detect repeated shots of the same
// photo. The extension and a trailing "_<digits>" suffix are removed before
// normalization, so "shot_1.jpg" and "shot_2.jpg" share the identity "shot".
// Only one extension is removed: "a.jpg.jpg" keeps "a jpg", as Normalize does.
func BaseIdentity(filename string) string {
	lowered := lowerFolded(filename)
	lowered = imageExtensionPattern.ReplaceAllString(lowered, "")
	lowered = shotSuffixPattern.ReplaceAllString(lowered, "")
	return collapse(lowered)
}

// collapse maps disallowed runs to a separator and collapses whitespace.
func collapse(lowered string) string {
	cleaned := disallowedPattern.ReplaceAllString(lowered, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// lowerFolded lowercases text and folds compatibility forms and diacritics,
// so "Ｆｕｌｌ" becomes "full" and "é" becomes "e".
func lowerFolded(text string) string {
	lowered := cases.Lower(language.Und).String(strings.TrimSpace(text))
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), lowered)
	if err != nil {
		return lowered
	}
	return strings.TrimSpace(folded)
}
