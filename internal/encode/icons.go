package encode

import "strings"

// IconTable is one target's closed icon vocabulary: direct category
// matches, substring matches over the channel name, and the blank default.
// Category lookup always wins over the fuzzy name match; substring entries
// are probed in declared order so the table controls precedence.
type IconTable struct {
	Categories map[string]string
	NameHints  []NameHint
	Blank      string
}

// NameHint pairs a lowercase substring with the icon it implies.
type NameHint struct {
	Substring string
	Icon      string
}

// Resolve applies the fixed precedence: direct category match, then the
// first substring hit over the channel name, then the blank icon.
func (t IconTable) Resolve(category, name string) string {
	if icon, ok := t.Categories[normalizeKey(category)]; ok {
		return icon
	}
	lower := strings.ToLower(name)
	for _, hint := range t.NameHints {
		if strings.Contains(lower, hint.Substring) {
			return hint.Icon
		}
	}
	return t.Blank
}

// yamahaIcons is the CL/QL icon vocabulary.
var yamahaIcons = IconTable{
	Categories: map[string]string{
		"kick":       "Kick",
		"snare":      "Snare",
		"tom":        "Tom",
		"hihat":      "HiHat",
		"overhead":   "Cymbal",
		"cymbal":     "Cymbal",
		"drums":      "DrumKit",
		"bass":       "Bass",
		"guitar":     "Guitar",
		"acoustic":   "A.Guitar",
		"piano":      "Piano",
		"keys":       "Keyboard",
		"synth":      "Keyboard",
		"vocal":      "Vocal",
		"choir":      "Chorus",
		"horn":       "Trumpet",
		"sax":        "Sax",
		"strings":    "Strings",
		"violin":     "Violin",
		"percussion": "Perc",
		"playback":   "Media",
		"talkback":   "TalkBack",
		"monitor":    "Wedge",
		"iem":        "InEar",
	},
	NameHints: []NameHint{
		{"kick", "Kick"},
		{"bd", "Kick"},
		{"snare", "Snare"},
		{"sn ", "Snare"},
		{"tom", "Tom"},
		{"hat", "HiHat"},
		{"oh", "Cymbal"},
		{"ride", "Cymbal"},
		{"crash", "Cymbal"},
		{"bass", "Bass"},
		{"di", "Bass"},
		{"gtr", "Guitar"},
		{"guitar", "Guitar"},
		{"piano", "Piano"},
		{"key", "Keyboard"},
		{"synth", "Keyboard"},
		{"vox", "Vocal"},
		{"voc", "Vocal"},
		{"lead", "Vocal"},
		{"choir", "Chorus"},
		{"horn", "Trumpet"},
		{"tpt", "Trumpet"},
		{"sax", "Sax"},
		{"violin", "Violin"},
		{"cello", "Strings"},
		{"perc", "Perc"},
		{"conga", "Perc"},
		{"track", "Media"},
		{"click", "Media"},
		{"tb", "TalkBack"},
		{"wedge", "Wedge"},
		{"iem", "InEar"},
		{"ear", "InEar"},
	},
	Blank: "Blank",
}

// x32Icons maps into the X32 icon index table (1 is the blank strip icon).
var x32Icons = IconTable{
	Categories: map[string]string{
		"kick":       "21",
		"snare":      "22",
		"tom":        "23",
		"hihat":      "24",
		"cymbal":     "25",
		"overhead":   "25",
		"drums":      "20",
		"bass":       "27",
		"guitar":     "29",
		"acoustic":   "28",
		"piano":      "31",
		"keys":       "32",
		"synth":      "32",
		"vocal":      "38",
		"choir":      "39",
		"horn":       "34",
		"sax":        "35",
		"strings":    "36",
		"violin":     "36",
		"percussion": "26",
		"playback":   "42",
		"talkback":   "40",
		"monitor":    "55",
		"iem":        "56",
	},
	NameHints: []NameHint{
		{"kick", "21"},
		{"bd", "21"},
		{"snare", "22"},
		{"tom", "23"},
		{"hat", "24"},
		{"oh", "25"},
		{"ride", "25"},
		{"crash", "25"},
		{"bass", "27"},
		{"di", "27"},
		{"gtr", "29"},
		{"guitar", "29"},
		{"piano", "31"},
		{"key", "32"},
		{"synth", "32"},
		{"vox", "38"},
		{"voc", "38"},
		{"lead", "38"},
		{"horn", "34"},
		{"sax", "35"},
		{"perc", "26"},
		{"track", "42"},
		{"click", "42"},
		{"wedge", "55"},
		{"iem", "56"},
	},
	Blank: "1",
}

// YamahaIcon resolves a canonical category or free-text channel name into
// the CL/QL icon vocabulary.
func YamahaIcon(category, name string) string {
	return yamahaIcons.Resolve(category, name)
}

// X32Icon resolves into the X32 numeric icon table, returned as the token
// written into scene files.
func X32Icon(category, name string) string {
	return x32Icons.Resolve(category, name)
}
