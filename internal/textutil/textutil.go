// Package textutil provides small text helpers shared by the alignment,
// embedding, and indexing code: dialogue tokenization, snippet truncation,
// and filename sanitization for imported clips.
package textutil

import "strings"

// Tokens splits dialogue into lowercase word tokens. Apostrophes are kept so
// contractions ("shouldn't") survive as single tokens; all other punctuation
// is treated as a separator.
func Tokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '\''
	})
	out := fields[:0]
	for _, field := range fields {
		if field = strings.Trim(field, "'"); field != "" {
			out = append(out, field)
		}
	}
	return out
}

// Truncate caps a transcript at limit bytes. A non-positive limit disables
// truncation.
func Truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit]
}

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a clip name.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of surrounding whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}
