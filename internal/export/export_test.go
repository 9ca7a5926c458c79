package export_test

import (
	"strings"
	"testing"

	"stagehand/internal/console"
	"stagehand/internal/export"
)

type fakeAdapter struct{ model string }

func (f *fakeAdapter) Manufacturer() string            { return "Acme" }
func (f *fakeAdapter) Model() string                   { return f.model }
func (f *fakeAdapter) Capability() export.Capability   { return export.Capability{Scenes: true} }
func (f *fakeAdapter) Validate(*console.ConsoleSession) export.Validation {
	return export.Validation{Valid: true}
}
func (f *fakeAdapter) Export(*console.ConsoleSession) export.Result {
	return export.Result{Success: true}
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	reg, err := export.NewRegistry(export.Entry{
		Manufacturer: "Acme",
		Model:        "Mix42",
		Factory:      func() export.Adapter { return &fakeAdapter{model: "Mix42"} },
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reg.Lookup("ACME", " mix42 "); !ok {
		t.Fatal("expected case-insensitive, whitespace-tolerant lookup")
	}
	if _, ok := reg.Lookup("Acme", "Mix43"); ok {
		t.Fatal("unexpected hit for unknown model")
	}
}

func TestRegistryRejectsDuplicatesAndNilFactories(t *testing.T) {
	entry := export.Entry{
		Manufacturer: "Acme",
		Model:        "Mix42",
		Factory:      func() export.Adapter { return &fakeAdapter{model: "Mix42"} },
	}
	if _, err := export.NewRegistry(entry, entry); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if _, err := export.NewRegistry(export.Entry{Manufacturer: "Acme", Model: "X"}); err == nil {
		t.Fatal("expected nil factory to fail")
	}
}

func TestSceneWriterQuotingAndOrder(t *testing.T) {
	var w export.SceneWriter
	w.Header("#4.0#", export.QStr("My Scene"), export.QStr(""), export.Sym("%000000000"), export.Int(1))
	w.Line("/ch/01/config", export.QStr("Lead Vox"), export.Int(38), export.Sym("RD"), export.Int(1))
	w.Line("/ch/01/mix", export.OnOff(true), export.DB(-90), export.OnOff(false))

	got := w.String()
	want := "#4.0# \"My Scene\" \"\" %000000000 1\n" +
		"/ch/01/config \"Lead Vox\" 38 RD 1\n" +
		"/ch/01/mix ON -oo OFF\n"
	if got != want {
		t.Fatalf("scene body mismatch:\n got: %q\nwant: %q", got, want)
	}
	for _, line := range strings.Split(strings.TrimRight(got, "\n"), "\n") {
		if strings.TrimRight(line, " \t") != line {
			t.Fatalf("line has trailing whitespace: %q", line)
		}
	}
}

func TestStrQuotesOnlyWhenNeeded(t *testing.T) {
	var w export.SceneWriter
	w.Line("/x", export.Str("Kick"), export.Str("Lead Vox"), export.Str(""))
	if got := w.String(); got != "/x Kick \"Lead Vox\" \"\"\n" {
		t.Fatalf("unexpected quoting: %q", got)
	}
}

func TestHexToken(t *testing.T) {
	var w export.SceneWriter
	w.Line("/ch/01/grp", export.Hex(0x85), export.Hex(0))
	if got := w.String(); got != "/ch/01/grp %85 %00\n" {
		t.Fatalf("unexpected bitmask rendering: %q", got)
	}
}

func TestTableWriterHeaderAndRows(t *testing.T) {
	w := export.NewTable("CL5", "V2.00", "ChannelName", []string{"CH", "Name", "ShortName", "Color", "Icon"})
	w.Row(export.Plain("CH_01"), export.Display("Lead Vox"), export.Display("LeadVox"), export.Plain("Blue"), export.Plain("Vocal"))

	got := w.String()
	want := "[Information]\n" +
		"MODEL NAME,CL5\n" +
		"PROTOCOL VERSION,V2.00\n" +
		"\n" +
		"[ChannelName]\n" +
		"CH,Name,ShortName,Color,Icon\n" +
		"CH_01,\"Lead Vox\",\"LeadVox\",Blue,Vocal\n"
	if got != want {
		t.Fatalf("table mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestNumberInstructions(t *testing.T) {
	got := export.NumberInstructions([]string{"Format the stick", "Copy the file"})
	if got[0] != "1. Format the stick" || got[1] != "2. Copy the file" {
		t.Fatalf("unexpected numbering: %v", got)
	}
}

func TestResultPartialSuccess(t *testing.T) {
	r := export.Result{Success: true}
	r.AddFile(export.File{Filename: "scene.scn"})
	r.Errorf("guidance generation failed: %s", "boom")
	if r.Success {
		t.Fatal("an export error must clear the success flag")
	}
	if len(r.Files) != 1 {
		t.Fatal("already-generated files must survive an export error")
	}
}
