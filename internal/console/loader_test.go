package console_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stagehand/internal/console"
)

const v1Doc = `{
  "gig": {"name": "Club Night"},
  "console": {"manufacturer": "Behringer", "model": "X32", "channelCount": 32},
  "currentScene": {
    "name": "Main Set",
    "channels": [
      {"number": 1, "name": "Kick Drum Microphone", "faderDb": -5.0}
    ]
  }
}`

const v2Doc = `{
  "version": "2.0",
  "gig": {"name": "Festival", "genre": "rock"},
  "console": {
    "manufacturer": "Yamaha",
    "model": "CL5",
    "channelCount": 72,
    "stageboxes": [{"model": "Rio1608-D", "slot": 2, "inputs": 16, "outputs": 8}]
  },
  "currentScene": {"name": "Headliner", "channels": []},
  "scenes": [{"name": "Support Act"}],
  "advisoryNotes": [{"subject": "Vocal EQ", "body": "Cut 250 Hz on channel 12", "channel": 12}]
}`

func TestDecodeV1DefaultsVersion(t *testing.T) {
	s, err := console.Decode([]byte(v1Doc))
	if err != nil {
		t.Fatalf("Decode v1: %v", err)
	}
	if s.Version != console.SchemaV1 {
		t.Fatalf("expected version to default to 1.0, got %q", s.Version)
	}
	if len(s.AdvisoryNotes) != 0 {
		t.Fatal("v1 documents carry no advisory notes")
	}
	ch := s.CurrentScene.ChannelByNumber(1)
	if ch == nil {
		t.Fatal("expected channel 1 present")
	}
	if ch.ShortName != "Kick Dru" {
		t.Fatalf("expected derived short name, got %q", ch.ShortName)
	}
}

func TestDecodeV2CarriesAdvisoryNotesAndScenes(t *testing.T) {
	s, err := console.Decode([]byte(v2Doc))
	if err != nil {
		t.Fatalf("Decode v2: %v", err)
	}
	if s.Version != console.SchemaV2 {
		t.Fatalf("expected version 2.0, got %q", s.Version)
	}
	if len(s.Scenes) != 1 || s.Scenes[0].Name != "Support Act" {
		t.Fatalf("stored scenes not decoded: %+v", s.Scenes)
	}
	if len(s.AdvisoryNotes) != 1 || s.AdvisoryNotes[0].Channel != 12 {
		t.Fatalf("advisory notes not decoded: %+v", s.AdvisoryNotes)
	}
	if len(s.Console.Stageboxes) != 1 {
		t.Fatal("stagebox list missing")
	}
	if got := s.Console.Stageboxes[0].DanteStartChannel(); got != 17 {
		t.Fatalf("slot 2 Rio1608-D should start at Dante 17, got %d", got)
	}
}

func TestDecodeRejectsUnknownVersionAndBadShape(t *testing.T) {
	if _, err := console.Decode([]byte(`{"version": "3.0", "console": {"manufacturer": "x", "model": "y"}, "currentScene": {"name": "s"}}`)); err == nil {
		t.Fatal("expected error for unsupported schema version")
	}
	if _, err := console.Decode([]byte(`{"currentScene": {"name": "s"}}`)); err == nil {
		t.Fatal("expected error when console identity is missing")
	}
	if _, err := console.Decode([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestLoadAndEncodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	if err := os.WriteFile(path, []byte(v2Doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := console.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	data, err := console.Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(data), `"version": "2.0"`) {
		t.Fatal("encoded document lost its version tag")
	}

	again, err := console.Decode(data)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if again.Console.Model != "CL5" {
		t.Fatalf("round trip lost console model: %q", again.Console.Model)
	}
}
