package console

import (
	"fmt"
	"strings"
	"time"
)

// Schema versions accepted by the loader. Version 2.0 adds advisory notes
// and the stored-scene list; adapters must tolerate both shapes.
const (
	SchemaV1 = "1.0"
	SchemaV2 = "2.0"
)

// FaderFloorDB is the level at or below which a fader is treated as
// effectively silent. Targets render it with their "negative infinity"
// token instead of a numeric value.
const FaderFloorDB = -90.0

// GigInfo carries show metadata. None of it affects machine output; it
// feeds generated documentation and file naming.
type GigInfo struct {
	Name     string    `json:"name"`
	Venue    string    `json:"venue,omitempty"`
	Date     time.Time `json:"date,omitempty"`
	Genre    string    `json:"genre,omitempty"`
	Engineer string    `json:"engineer,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

// ConsoleConfig identifies the target desk and its populated topology.
// Counts are the session's declared sizes, not hardware maxima; adapters
// validate them against the limits of the concrete model.
type ConsoleConfig struct {
	Manufacturer string     `json:"manufacturer"`
	Model        string     `json:"model"`
	ChannelCount int        `json:"channelCount"`
	BusCount     int        `json:"busCount"`
	MatrixCount  int        `json:"matrixCount"`
	DCACount     int        `json:"dcaCount"`
	EffectSlots  int        `json:"effectSlots"`
	Stageboxes   []Stagebox `json:"stageboxes,omitempty"`
}

// Scene is one complete mixer state: every populated channel, bus, DCA,
// and effect slot. Slots absent from the slices are exported as defaults.
type Scene struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Channels    []Channel         `json:"channels"`
	Buses       []Bus             `json:"buses,omitempty"`
	DCAs        []DCA             `json:"dcas,omitempty"`
	Effects     []EffectProcessor `json:"effects,omitempty"`
}

// AdvisoryNote is a free-form recommendation attached to the session by an
// upstream assistant. Schema 2.0 only; purely informational.
type AdvisoryNote struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Channel int    `json:"channel,omitempty"`
}

// ConsoleSession is the root aggregate: one gig, one target desk, one
// current scene, and optionally further stored scenes.
type ConsoleSession struct {
	Version       string         `json:"version"`
	ID            string         `json:"id,omitempty"`
	Gig           GigInfo        `json:"gig"`
	Console       ConsoleConfig  `json:"console"`
	CurrentScene  Scene          `json:"currentScene"`
	Scenes        []Scene        `json:"scenes,omitempty"`
	AdvisoryNotes []AdvisoryNote `json:"advisoryNotes,omitempty"`
	CreatedAt     time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt,omitempty"`
}

// NewSession returns an empty, fully-defaulted session for the given desk.
// The current scene starts with no channels; callers populate it
// field-by-field afterwards.
func NewSession(manufacturer, model string) *ConsoleSession {
	now := time.Now().UTC()
	return &ConsoleSession{
		Version: SchemaV2,
		Gig:     GigInfo{Name: "Untitled Gig"},
		Console: ConsoleConfig{
			Manufacturer: strings.TrimSpace(manufacturer),
			Model:        strings.TrimSpace(model),
		},
		CurrentScene: Scene{Name: "Scene 1"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Normalize fills derived defaults the schema allows to be absent: short
// names fall back to the (possibly truncated) long name, and the version
// tag defaults to 1.0 when missing. It never overwrites populated fields.
func (s *ConsoleSession) Normalize() {
	if s == nil {
		return
	}
	if strings.TrimSpace(s.Version) == "" {
		s.Version = SchemaV1
	}
	normalizeScene(&s.CurrentScene)
	for i := range s.Scenes {
		normalizeScene(&s.Scenes[i])
	}
}

func normalizeScene(sc *Scene) {
	for i := range sc.Channels {
		ch := &sc.Channels[i]
		if ch.ShortName == "" {
			ch.ShortName = defaultShortName(ch.Name)
		}
	}
	for i := range sc.Buses {
		b := &sc.Buses[i]
		if b.ShortName == "" {
			b.ShortName = defaultShortName(b.Name)
		}
	}
}

// defaultShortName derives a short display name by hard truncation. The
// rule is one-directional: a long name never falls back to the short name.
func defaultShortName(name string) string {
	const limit = 8
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	return string(runes[:limit])
}

// Check verifies the structural invariants the rest of the system relies
// on: dense unique numbers within declared bounds and finite levels. It
// reports violations rather than repairing them.
func (s *ConsoleSession) Check() []error {
	if s == nil {
		return []error{fmt.Errorf("nil session")}
	}
	var errs []error
	errs = append(errs, checkScene("currentScene", &s.CurrentScene, s.Console)...)
	for i := range s.Scenes {
		errs = append(errs, checkScene(fmt.Sprintf("scenes[%d]", i), &s.Scenes[i], s.Console)...)
	}
	for _, sb := range s.Console.Stageboxes {
		if sb.Slot < 1 {
			errs = append(errs, fmt.Errorf("stagebox %q: slot %d is not 1-based", sb.Model, sb.Slot))
		}
	}
	return errs
}

func checkScene(label string, sc *Scene, cfg ConsoleConfig) []error {
	var errs []error

	seen := make(map[int]bool, len(sc.Channels))
	for _, ch := range sc.Channels {
		if ch.Number < 1 || (cfg.ChannelCount > 0 && ch.Number > cfg.ChannelCount) {
			errs = append(errs, fmt.Errorf("%s: channel %d out of declared bounds 1..%d", label, ch.Number, cfg.ChannelCount))
		}
		if seen[ch.Number] {
			errs = append(errs, fmt.Errorf("%s: duplicate channel number %d", label, ch.Number))
		}
		seen[ch.Number] = true
		if bad, field := ch.nonFiniteLevel(); bad {
			errs = append(errs, fmt.Errorf("%s: channel %d: %s is not finite", label, ch.Number, field))
		}
	}

	seenBus := make(map[int]bool, len(sc.Buses))
	for _, b := range sc.Buses {
		if seenBus[b.Number] {
			errs = append(errs, fmt.Errorf("%s: duplicate bus number %d", label, b.Number))
		}
		seenBus[b.Number] = true
	}

	seenDCA := make(map[int]bool, len(sc.DCAs))
	for _, d := range sc.DCAs {
		if d.Number < 1 || (cfg.DCACount > 0 && d.Number > cfg.DCACount) {
			errs = append(errs, fmt.Errorf("%s: DCA %d out of declared bounds 1..%d", label, d.Number, cfg.DCACount))
		}
		if seenDCA[d.Number] {
			errs = append(errs, fmt.Errorf("%s: duplicate DCA number %d", label, d.Number))
		}
		seenDCA[d.Number] = true
	}

	return errs
}

// ChannelByNumber returns the populated channel with the given number, or
// nil when the slot is unconfigured.
func (sc *Scene) ChannelByNumber(n int) *Channel {
	for i := range sc.Channels {
		if sc.Channels[i].Number == n {
			return &sc.Channels[i]
		}
	}
	return nil
}

// BusByNumber returns the populated bus with the given number, or nil.
func (sc *Scene) BusByNumber(n int) *Bus {
	for i := range sc.Buses {
		if sc.Buses[i].Number == n {
			return &sc.Buses[i]
		}
	}
	return nil
}

// DCAByNumber returns the populated DCA with the given number, or nil.
func (sc *Scene) DCAByNumber(n int) *DCA {
	for i := range sc.DCAs {
		if sc.DCAs[i].Number == n {
			return &sc.DCAs[i]
		}
	}
	return nil
}

// EffectBySlot returns the effect processor in the given rack slot, or nil.
func (sc *Scene) EffectBySlot(slot int) *EffectProcessor {
	for i := range sc.Effects {
		if sc.Effects[i].Slot == slot {
			return &sc.Effects[i]
		}
	}
	return nil
}
