package encode

import "unicode"

// Display-name limits of the two target families.
const (
	X32NameLimit    = 12
	YamahaNameLimit = 8
)

// Truncate hard-cuts a name to at most limit runes. No ellipsis, no word
// boundary awareness; input within the limit comes back unchanged, so the
// operation is idempotent.
func Truncate(name string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	return string(runes[:limit])
}

// IsASCII reports whether every rune is printable ASCII. Console scribble
// strips and CSV importers handle anything else unpredictably, so
// non-ASCII names surface as validation warnings.
func IsASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || r < ' ' {
			return false
		}
	}
	return true
}
