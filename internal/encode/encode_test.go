package encode_test

import (
	"testing"

	"stagehand/internal/encode"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"within limit unchanged", "Kick", 8, "Kick"},
		{"exact limit unchanged", "DrumKit!", 8, "DrumKit!"},
		{"hard cut at eight", "Very Long Channel Name", 8, "Very Lon"},
		{"hard cut at twelve", "Very Long Channel Name", 12, "Very Long Ch"},
		{"empty stays empty", "", 8, ""},
		{"zero limit", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encode.Truncate(tt.in, tt.limit)
			if got != tt.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
			if len([]rune(got)) > tt.limit {
				t.Fatalf("result %q exceeds limit %d", got, tt.limit)
			}
			// Idempotence: truncating twice equals truncating once.
			if again := encode.Truncate(got, tt.limit); again != got {
				t.Fatalf("truncation is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestFormatDB(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "+0.0"},
		{-5, "-5.0"},
		{3.26, "+3.3"},
		{-89.9, "-89.9"},
		{-90, "-oo"},
		{-120, "-oo"},
	}
	for _, tt := range tests {
		if got := encode.FormatDB(tt.in); got != tt.want {
			t.Errorf("FormatDB(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatGainHasNoSentinel(t *testing.T) {
	if got := encode.FormatGain(-95); got != "-95.0" {
		t.Fatalf("gain must stay numeric below the fader floor, got %q", got)
	}
}

func TestPadNumber(t *testing.T) {
	if got := encode.PadNumber(3); got != "03" {
		t.Fatalf("PadNumber(3) = %q", got)
	}
	if got := encode.PadNumber(16); got != "16" {
		t.Fatalf("PadNumber(16) = %q", got)
	}
}

func TestColorFallbacks(t *testing.T) {
	if got := encode.X32Color("chartreuse"); got != "WH" {
		t.Fatalf("unknown color should fall back to WH, got %q", got)
	}
	if got := encode.YamahaColor("chartreuse"); got != "White" {
		t.Fatalf("unknown color should fall back to White, got %q", got)
	}
	if got := encode.X32Color("Red"); got != "RD" {
		t.Fatalf("color lookup must be case-insensitive, got %q", got)
	}
	if got := encode.YamahaColor(" blue "); got != "Blue" {
		t.Fatalf("color lookup must trim whitespace, got %q", got)
	}
}

func TestIconPrecedence(t *testing.T) {
	// Category match wins over any substring in the name.
	if got := encode.YamahaIcon("kick", "Lead Vox"); got != "Kick" {
		t.Fatalf("category must win over name hint, got %q", got)
	}
	// Without a category the name substring decides.
	if got := encode.YamahaIcon("", "Lead Vox"); got != "Vocal" {
		t.Fatalf("expected Vocal from name hint, got %q", got)
	}
	// Neither matches: blank icon.
	if got := encode.YamahaIcon("", "Channel 14"); got != "Blank" {
		t.Fatalf("expected Blank fallback, got %q", got)
	}
	if got := encode.X32Icon("", "Channel 14"); got != "1" {
		t.Fatalf("expected X32 blank icon index 1, got %q", got)
	}
	if got := encode.X32Icon("snare", "whatever"); got != "22" {
		t.Fatalf("expected snare icon 22, got %q", got)
	}
}

func TestIsASCII(t *testing.T) {
	if !encode.IsASCII("Lead Vox 1!") {
		t.Fatal("plain ASCII flagged")
	}
	if encode.IsASCII("Stimmführer") {
		t.Fatal("non-ASCII not flagged")
	}
	if encode.IsASCII("tab\tname") {
		t.Fatal("control characters must be flagged")
	}
}
