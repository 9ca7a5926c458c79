package encode

import "strings"

// X32 scribble-strip color tokens as they appear in scene files.
var x32Colors = map[string]string{
	"off":     "OFF",
	"black":   "OFF",
	"red":     "RD",
	"green":   "GN",
	"yellow":  "YE",
	"blue":    "BL",
	"magenta": "MG",
	"pink":    "MG",
	"purple":  "MG",
	"cyan":    "CY",
	"white":   "WH",
	"orange":  "YE",
}

// Yamaha channel colors use proper-noun names in the CSV dialect.
var yamahaColors = map[string]string{
	"blue":    "Blue",
	"orange":  "Orange",
	"yellow":  "Yellow",
	"purple":  "Purple",
	"pink":    "Pink",
	"cyan":    "SkyBlue",
	"green":   "Green",
	"red":     "Red",
	"magenta": "Magenta",
	"white":   "White",
	"off":     "White",
	"black":   "White",
}

// X32Color maps a canonical color name to the X32 token. Unknown or
// unsupported names fall back to white rather than failing.
func X32Color(name string) string {
	if token, ok := x32Colors[normalizeKey(name)]; ok {
		return token
	}
	return "WH"
}

// YamahaColor maps a canonical color name to the CL/QL proper-noun color.
// Unknown names fall back to White.
func YamahaColor(name string) string {
	if color, ok := yamahaColors[normalizeKey(name)]; ok {
		return color
	}
	return "White"
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
