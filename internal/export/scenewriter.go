package export

import (
	"fmt"
	"strings"

	"stagehand/internal/encode"
)

// Tok is one positional token on a scene line. Construction goes through
// the typed helpers below so quoting and numeric formatting are enforced
// in exactly one place.
type Tok struct {
	text string
}

// Str renders a string token, double-quoted whenever it contains a space
// or is empty. Embedded quotes are stripped: the scene dialect has no
// escape syntax.
func Str(s string) Tok {
	s = strings.ReplaceAll(s, `"`, "")
	if s == "" || strings.ContainsRune(s, ' ') {
		return Tok{`"` + s + `"`}
	}
	return Tok{s}
}

// QStr renders a string token that is always double-quoted, as required
// for name fields regardless of content.
func QStr(s string) Tok {
	return Tok{`"` + strings.ReplaceAll(s, `"`, "") + `"`}
}

// Sym renders a bare symbol token (ON, OFF, PEQ, ...).
func Sym(s string) Tok { return Tok{s} }

// Int renders an integer token.
func Int(n int) Tok { return Tok{fmt.Sprintf("%d", n)} }

// DB renders a level token with the shared dB formatting, including the
// negative-infinity sentinel.
func DB(v float64) Tok { return Tok{encode.FormatDB(v)} }

// Gain renders a preamp gain token (numeric at any value).
func Gain(v float64) Tok { return Tok{encode.FormatGain(v)} }

// Num renders a plain numeric token with one decimal place and no sign.
func Num(v float64) Tok { return Tok{fmt.Sprintf("%.1f", v)} }

// OnOff renders the boolean switch token.
func OnOff(b bool) Tok {
	if b {
		return Tok{"ON"}
	}
	return Tok{"OFF"}
}

// Hex renders a bitmask as a %-prefixed uppercase hexadecimal token,
// zero-padded to two digits.
func Hex(mask uint32) Tok { return Tok{fmt.Sprintf("%%%02X", mask)} }

// SceneWriter builds an OSC-style scene file: a magic header line followed
// by address-keyed lines of space-separated tokens. Lines carry no
// trailing whitespace and are emitted in call order, so identical input
// always produces byte-identical output.
type SceneWriter struct {
	b strings.Builder
}

// Header writes the first line verbatim (the fixed magic/version marker
// plus its positional fields).
func (w *SceneWriter) Header(magic string, tokens ...Tok) {
	w.b.WriteString(magic)
	for _, t := range tokens {
		w.b.WriteByte(' ')
		w.b.WriteString(t.text)
	}
	w.b.WriteByte('\n')
}

// Line writes one address-keyed record.
func (w *SceneWriter) Line(addr string, tokens ...Tok) {
	w.b.WriteString(addr)
	for _, t := range tokens {
		w.b.WriteByte(' ')
		w.b.WriteString(t.text)
	}
	w.b.WriteByte('\n')
}

// String returns the accumulated file body.
func (w *SceneWriter) String() string {
	return w.b.String()
}
