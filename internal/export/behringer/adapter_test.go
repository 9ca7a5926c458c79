package behringer_test

import (
	"strings"
	"testing"

	"stagehand/internal/console"
	"stagehand/internal/export/behringer"
)

func newX32Session() *console.ConsoleSession {
	s := console.NewSession("Behringer", "X32")
	s.Console.ChannelCount = 32
	s.Console.BusCount = 16
	s.Console.MatrixCount = 6
	s.Console.DCACount = 8
	s.Console.EffectSlots = 8
	s.CurrentScene.Name = "Main Set"
	return s
}

func sceneBody(t *testing.T, s *console.ConsoleSession) string {
	t.Helper()
	result := behringer.New("Behringer", "X32").Export(s)
	if !result.Success {
		t.Fatalf("export failed: %v", result.Errors)
	}
	if len(result.Files) < 2 {
		t.Fatalf("expected scene file plus README, got %d files", len(result.Files))
	}
	if result.Files[0].Extension != ".scn" {
		t.Fatalf("first file should be the scene, got %q", result.Files[0].Filename)
	}
	return result.Files[0].Content
}

func TestEmptySessionEmitsAllDefaultSlots(t *testing.T) {
	body := sceneBody(t, newX32Session())

	if !strings.HasPrefix(body, "#4.0# \"Main Set\"") {
		t.Fatalf("missing magic header: %q", body[:40])
	}
	if got := strings.Count(body, "/config \"\" 1 WH"); got < 32 {
		t.Fatalf("expected at least 32 default config records, got %d", got)
	}

	counts := map[string]int{}
	for _, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(line, "/ch/") && strings.HasSuffix(strings.SplitN(line, " ", 2)[0], "/config"):
			counts["ch-config"]++
		case strings.HasPrefix(line, "/bus/") && strings.Contains(line, "/config "):
			counts["bus-config"]++
		case strings.HasPrefix(line, "/mtx/") && strings.Contains(line, "/config "):
			counts["mtx-config"]++
		case strings.HasPrefix(line, "/dca/") && strings.Contains(line, "/config "):
			counts["dca-config"]++
		case strings.HasPrefix(line, "/fx/"):
			counts["fx"]++
		case strings.HasPrefix(line, "/auxin/") && strings.Contains(line, "/config "):
			counts["auxin-config"]++
		}
	}
	for key, want := range map[string]int{
		"ch-config":    32,
		"bus-config":   16,
		"mtx-config":   6,
		"dca-config":   8,
		"fx":           8,
		"auxin-config": 8,
	} {
		if counts[key] != want {
			t.Errorf("%s: got %d records, want %d", key, counts[key], want)
		}
	}
}

func TestExportIsDeterministic(t *testing.T) {
	s := newX32Session()
	s.CurrentScene.Channels = []console.Channel{
		{Number: 3, Name: "Snare Top", Color: "red", FaderDB: -4.5, AssignedToMain: true, DCAAssignments: []int{2}},
		{Number: 1, Name: "Kick", Color: "green", FaderDB: -2, AssignedToMain: true},
	}
	first := sceneBody(t, s)
	second := sceneBody(t, s)
	if first != second {
		t.Fatal("two exports of the same session differ")
	}
}

func TestChannelEncoding(t *testing.T) {
	s := newX32Session()
	s.CurrentScene.Channels = []console.Channel{{
		Number: 5,
		Name:   "Lead Vocal Microphone",
		Color:  "red",
		Icon:   "vocal",
		Input: &console.InputConfig{
			Source:  console.PatchPoint{Type: console.PatchDante, Number: 17},
			Phantom: console.PhantomOn,
			GainDB:  24.5,
		},
		FaderDB:        -5,
		Pan:            -25,
		AssignedToMain: true,
		BusSends:       []console.BusSend{{Bus: 2, LevelDB: -8, PreFader: true}},
		DCAAssignments: []int{1, 3, 8, 12},
	}}

	body := sceneBody(t, s)

	if !strings.Contains(body, `/ch/05/config "Lead Vocal M" 38 RD 17`) {
		t.Fatalf("config line wrong:\n%s", findLine(body, "/ch/05/config"))
	}
	if !strings.Contains(body, "/ch/05/preamp +24.5 ON OFF OFF") {
		t.Fatalf("preamp line wrong:\n%s", findLine(body, "/ch/05/preamp"))
	}
	if !strings.Contains(body, "/ch/05/mix ON -5.0 ON -25") {
		t.Fatalf("mix line wrong:\n%s", findLine(body, "/ch/05/mix "))
	}
	if !strings.Contains(body, "/ch/05/mix/02 ON -8.0 +0 PRE") {
		t.Fatalf("bus send line wrong:\n%s", findLine(body, "/ch/05/mix/02"))
	}
	// DCAs 1, 3, 8 set bits 0, 2, 7; the out-of-range 12 is ignored.
	if !strings.Contains(body, "/ch/05/grp %85 %00") {
		t.Fatalf("grp line wrong:\n%s", findLine(body, "/ch/05/grp"))
	}
}

func TestCompressorLimiterAndKneeTokens(t *testing.T) {
	s := newX32Session()
	s.CurrentScene.Channels = []console.Channel{
		{Number: 1, Name: "Bass", Dynamics: &console.DynamicsConfig{
			Compressor: &console.CompressorConfig{Enabled: true, ThresholdDB: -12, Ratio: 20, Knee: "hard", AttackMS: 10, ReleaseMS: 80},
		}},
		{Number: 2, Name: "Vox", Dynamics: &console.DynamicsConfig{
			Compressor: &console.CompressorConfig{Enabled: true, ThresholdDB: -18, Ratio: 4, Knee: "soft", AttackMS: 15, ReleaseMS: 120},
		}},
	}
	body := sceneBody(t, s)

	if !strings.Contains(body, "/ch/01/dyn ON COMP -12.0 LIM LIN 10.0 80.0 +0.0") {
		t.Fatalf("limiter encoding wrong:\n%s", findLine(body, "/ch/01/dyn"))
	}
	if !strings.Contains(body, "/ch/02/dyn ON COMP -18.0 4.0 LOG 15.0 120.0 +0.0") {
		t.Fatalf("numeric ratio encoding wrong:\n%s", findLine(body, "/ch/02/dyn"))
	}
}

func TestEffectsEncoding(t *testing.T) {
	s := newX32Session()
	s.CurrentScene.Effects = []console.EffectProcessor{
		{Slot: 1, Category: console.EffectReverb, Reverb: &console.ReverbParams{Algorithm: "plate", DecaySeconds: 2.2, PreDelayMS: 30, HighCutHz: 6000, ReturnLevelDB: -3}},
		{Slot: 2, Category: console.EffectDelay, Delay: &console.DelayParams{Mode: "ping-pong", TimeMS: 380, FeedbackPct: 35}},
	}
	body := sceneBody(t, s)

	if !strings.Contains(body, "/fx/1 PLATE 2.2 30.0 6000.0 -3.0") {
		t.Fatalf("reverb slot wrong:\n%s", findLine(body, "/fx/1"))
	}
	if !strings.Contains(body, "/fx/2 PPDLY 380.0 35.0 8000.0 +0.0") {
		t.Fatalf("delay slot wrong:\n%s", findLine(body, "/fx/2"))
	}
	// Unconfigured slots still carry a complete default record.
	if !strings.Contains(body, "/fx/8 HALL 1.6 20.0 8000.0 +0.0") {
		t.Fatalf("default slot wrong:\n%s", findLine(body, "/fx/8"))
	}
}

func TestValidateBlocksOversizedSessions(t *testing.T) {
	s := newX32Session()
	s.Console.ChannelCount = 48

	a := behringer.New("Behringer", "X32")
	v := a.Validate(s)
	if v.Valid {
		t.Fatal("48 channels must not validate against a 32-channel desk")
	}
	if len(v.Errors) == 0 {
		t.Fatal("expected a hard error")
	}

	result := a.Export(s)
	if result.Success {
		t.Fatal("export must be blocked by hard validation errors")
	}
	if len(result.Files) != 0 {
		t.Fatal("a blocked export must not produce files")
	}
}

func TestValidateRejectsDuplicateChannelNumbers(t *testing.T) {
	s := newX32Session()
	s.CurrentScene.Channels = []console.Channel{
		{Number: 1, Name: "Kick"},
		{Number: 1, Name: "Kick Sub"},
	}

	a := behringer.New("Behringer", "X32")
	v := a.Validate(s)
	if v.Valid {
		t.Fatal("two channels numbered 1 must not validate")
	}
	found := false
	for _, e := range v.Errors {
		if strings.Contains(e, "duplicate channel number 1") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a duplicate-number error, got %v", v.Errors)
	}

	result := a.Export(s)
	if result.Success || len(result.Files) != 0 {
		t.Fatal("a scene must not be rendered from conflicting channel definitions")
	}
}

func TestValidateWarnsAboutTruncation(t *testing.T) {
	s := newX32Session()
	s.CurrentScene.Channels = []console.Channel{{Number: 1, Name: "Very Long Channel Name"}}

	v := behringer.New("Behringer", "X32").Validate(s)
	if !v.Valid {
		t.Fatalf("truncation must not block export: %v", v.Errors)
	}
	found := false
	for _, w := range v.Warnings {
		if strings.Contains(w, "truncated") && strings.Contains(w, "Very Long Ch") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected truncation warning, got %v", v.Warnings)
	}
}

func TestWrongManufacturerIsHardError(t *testing.T) {
	s := newX32Session()
	s.Console.Manufacturer = "Yamaha"
	s.Console.Model = "CL5"

	v := behringer.New("Behringer", "X32").Validate(s)
	if v.Valid {
		t.Fatal("mismatched desk must fail validation")
	}
}

func TestInstructionsAreNumbered(t *testing.T) {
	result := behringer.New("Behringer", "X32").Export(newX32Session())
	if len(result.Instructions) == 0 {
		t.Fatal("expected transfer instructions")
	}
	if !strings.HasPrefix(result.Instructions[0], "1. ") {
		t.Fatalf("instructions must be numbered: %q", result.Instructions[0])
	}
	joined := strings.Join(result.Instructions, " ")
	if !strings.Contains(joined, "FAT32") {
		t.Fatal("instructions must mention the FAT32 stick format")
	}
}

func findLine(body, prefix string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	return "(line not found: " + prefix + ")"
}
