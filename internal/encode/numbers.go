package encode

import (
	"fmt"

	"stagehand/internal/console"
)

// NegInfinity is the token targets use for a fader at or below the floor.
const NegInfinity = "-oo"

// FormatDB renders a level with one decimal place and an explicit sign.
// Values at or below the fader floor render as the negative-infinity
// token.
func FormatDB(v float64) string {
	if v <= console.FaderFloorDB {
		return NegInfinity
	}
	return fmt.Sprintf("%+.1f", v)
}

// FormatGain renders a preamp gain with one decimal place and sign. Gain
// has no silent sentinel; the floor does not apply.
func FormatGain(v float64) string {
	return fmt.Sprintf("%+.1f", v)
}

// PadNumber renders a channel or bus number zero-padded to two digits.
func PadNumber(n int) string {
	return fmt.Sprintf("%02d", n)
}
