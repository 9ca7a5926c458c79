package console

import "math"

// ChannelType classifies a strip. Group/aux/matrix/main strips share the
// Channel shape but are usually carried in the Buses slice.
type ChannelType string

const (
	ChannelMono   ChannelType = "mono"
	ChannelStereo ChannelType = "stereo"
	ChannelGroup  ChannelType = "group"
	ChannelAux    ChannelType = "aux"
	ChannelMatrix ChannelType = "matrix"
	ChannelMain   ChannelType = "main"
)

// PhantomState is tri-state: riders frequently omit whether a source needs
// +48V, and "unknown" must survive into the generated checklists.
type PhantomState string

const (
	PhantomOn      PhantomState = "on"
	PhantomOff     PhantomState = "off"
	PhantomUnknown PhantomState = "unknown"
)

// PatchType identifies the physical or network domain of a patch point.
type PatchType string

const (
	PatchLocal PatchType = "local"
	PatchDante PatchType = "dante"
	PatchAES50 PatchType = "aes50"
	PatchMADI  PatchType = "madi"
	PatchUSB   PatchType = "usb"
	PatchNone  PatchType = "none"
)

// PatchPoint is one input or output connector in a patch domain.
type PatchPoint struct {
	Type   PatchType `json:"type"`
	Number int       `json:"number"`
}

// InputConfig is the preamp block of a channel.
type InputConfig struct {
	Source      PatchPoint   `json:"source"`
	Phantom     PhantomState `json:"phantom,omitempty"`
	PhaseInvert bool         `json:"phaseInvert,omitempty"`
	GainDB      float64      `json:"gainDb"`
	Pad         bool         `json:"pad,omitempty"`
}

// FilterConfig is a high- or low-pass filter.
type FilterConfig struct {
	Enabled     bool    `json:"enabled"`
	FrequencyHz float64 `json:"frequencyHz"`
	SlopeDBOct  int     `json:"slopeDbOct,omitempty"`
}

// EQBandType enumerates the supported parametric band shapes.
type EQBandType string

const (
	BandPeak      EQBandType = "peak"
	BandLowShelf  EQBandType = "lowShelf"
	BandHighShelf EQBandType = "highShelf"
	BandNotch     EQBandType = "notch"
)

// EQBand is one parametric or shelving band. Purpose is a human note
// ("tame 2.5k harshness") surfaced only in generated documentation.
type EQBand struct {
	Type        EQBandType `json:"type"`
	FrequencyHz float64    `json:"frequencyHz"`
	GainDB      float64    `json:"gainDb"`
	Q           float64    `json:"q,omitempty"`
	Purpose     string     `json:"purpose,omitempty"`
}

// EQConfig is a channel or bus equalizer block.
type EQConfig struct {
	Enabled  bool          `json:"enabled"`
	HighPass *FilterConfig `json:"highPass,omitempty"`
	LowPass  *FilterConfig `json:"lowPass,omitempty"`
	Bands    []EQBand      `json:"bands,omitempty"`
}

// GateConfig is a noise gate / expander.
type GateConfig struct {
	Enabled     bool    `json:"enabled"`
	ThresholdDB float64 `json:"thresholdDb"`
	RangeDB     float64 `json:"rangeDb,omitempty"`
	AttackMS    float64 `json:"attackMs,omitempty"`
	HoldMS      float64 `json:"holdMs,omitempty"`
	ReleaseMS   float64 `json:"releaseMs,omitempty"`
}

// CompressorConfig is a channel compressor. A Ratio of 20 or more is
// treated as limiting by targets that have a dedicated limiter token.
type CompressorConfig struct {
	Enabled     bool    `json:"enabled"`
	ThresholdDB float64 `json:"thresholdDb"`
	Ratio       float64 `json:"ratio"`
	AttackMS    float64 `json:"attackMs,omitempty"`
	ReleaseMS   float64 `json:"releaseMs,omitempty"`
	Knee        string  `json:"knee,omitempty"` // "hard", "medium", "soft"
	MakeupDB    float64 `json:"makeupDb,omitempty"`
}

// DynamicsConfig bundles the independently-switchable gate and compressor.
type DynamicsConfig struct {
	Gate       *GateConfig       `json:"gate,omitempty"`
	Compressor *CompressorConfig `json:"compressor,omitempty"`
}

// BusSend is one channel-to-bus send.
type BusSend struct {
	Bus      int     `json:"bus"`
	LevelDB  float64 `json:"levelDb"`
	PreFader bool    `json:"preFader,omitempty"`
}

// EffectSend is one channel-to-effect-rack send.
type EffectSend struct {
	Slot    int     `json:"slot"`
	LevelDB float64 `json:"levelDb"`
}

// Channel is one input strip. Number is 1-based and unique within the
// scene; bounds are validated against the console's declared counts, never
// silently corrected.
type Channel struct {
	Number         int             `json:"number"`
	Name           string          `json:"name"`
	ShortName      string          `json:"shortName,omitempty"`
	Type           ChannelType     `json:"type,omitempty"`
	Color          string          `json:"color,omitempty"`
	Icon           string          `json:"icon,omitempty"`
	Input          *InputConfig    `json:"input,omitempty"`
	EQ             *EQConfig       `json:"eq,omitempty"`
	Dynamics       *DynamicsConfig `json:"dynamics,omitempty"`
	FaderDB        float64         `json:"faderDb"`
	Mute           bool            `json:"mute,omitempty"`
	Pan            float64         `json:"pan,omitempty"` // -100 (L) .. +100 (R)
	AssignedToMain bool            `json:"assignedToMain"`
	BusSends       []BusSend       `json:"busSends,omitempty"`
	EffectSends    []EffectSend    `json:"effectSends,omitempty"`
	DirectOut      *PatchPoint     `json:"directOut,omitempty"`
	DCAAssignments []int           `json:"dcaAssignments,omitempty"`
}

// Silent reports whether the channel fader sits at or below the floor.
func (c *Channel) Silent() bool {
	return c.FaderDB <= FaderFloorDB
}

// nonFiniteLevel scans the fields that must stay finite. The fader floor
// sentinel is an ordinary finite value; only NaN/Inf violate the invariant.
func (c *Channel) nonFiniteLevel() (bool, string) {
	if math.IsNaN(c.FaderDB) || math.IsInf(c.FaderDB, 0) {
		return true, "fader"
	}
	if c.Input != nil && (math.IsNaN(c.Input.GainDB) || math.IsInf(c.Input.GainDB, 0)) {
		return true, "input gain"
	}
	return false, ""
}
