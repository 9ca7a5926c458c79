package console

// EffectCategory enumerates the supported processor families.
type EffectCategory string

const (
	EffectReverb     EffectCategory = "reverb"
	EffectDelay      EffectCategory = "delay"
	EffectModulation EffectCategory = "modulation"
	EffectPitch      EffectCategory = "pitch"
	EffectDistortion EffectCategory = "distortion"
)

// ReverbParams configures a reverb algorithm.
type ReverbParams struct {
	Algorithm     string  `json:"algorithm"` // "hall", "plate", "room", "spring"
	DecaySeconds  float64 `json:"decaySeconds"`
	PreDelayMS    float64 `json:"preDelayMs,omitempty"`
	HighCutHz     float64 `json:"highCutHz,omitempty"`
	ReturnLevelDB float64 `json:"returnLevelDb,omitempty"`
}

// DelayParams configures a delay line.
type DelayParams struct {
	Mode          string  `json:"mode"` // "stereo", "ping-pong", "tape"
	TimeMS        float64 `json:"timeMs"`
	FeedbackPct   float64 `json:"feedbackPct,omitempty"`
	HighCutHz     float64 `json:"highCutHz,omitempty"`
	ReturnLevelDB float64 `json:"returnLevelDb,omitempty"`
}

// ModulationParams configures chorus/flanger/phaser style processors.
type ModulationParams struct {
	Mode     string  `json:"mode"` // "chorus", "flanger", "phaser"
	RateHz   float64 `json:"rateHz"`
	DepthPct float64 `json:"depthPct,omitempty"`
	MixPct   float64 `json:"mixPct,omitempty"`
}

// PitchParams configures a pitch shifter.
type PitchParams struct {
	Semitones   int     `json:"semitones"`
	DetuneCents int     `json:"detuneCents,omitempty"`
	MixPct      float64 `json:"mixPct,omitempty"`
}

// DistortionParams configures a saturation/distortion stage.
type DistortionParams struct {
	DrivePct float64 `json:"drivePct"`
	TonePct  float64 `json:"tonePct,omitempty"`
	MixPct   float64 `json:"mixPct,omitempty"`
}

// EffectProcessor occupies one rack slot. Exactly one parameter variant is
// populated, matching Category; the rest stay nil.
type EffectProcessor struct {
	Slot       int               `json:"slot"`
	Category   EffectCategory    `json:"category"`
	Name       string            `json:"name,omitempty"`
	Reverb     *ReverbParams     `json:"reverb,omitempty"`
	Delay      *DelayParams      `json:"delay,omitempty"`
	Modulation *ModulationParams `json:"modulation,omitempty"`
	Pitch      *PitchParams      `json:"pitch,omitempty"`
	Distortion *DistortionParams `json:"distortion,omitempty"`
}

// Valid reports whether exactly the variant named by Category is set.
func (e *EffectProcessor) Valid() bool {
	populated := 0
	match := false
	if e.Reverb != nil {
		populated++
		match = match || e.Category == EffectReverb
	}
	if e.Delay != nil {
		populated++
		match = match || e.Category == EffectDelay
	}
	if e.Modulation != nil {
		populated++
		match = match || e.Category == EffectModulation
	}
	if e.Pitch != nil {
		populated++
		match = match || e.Category == EffectPitch
	}
	if e.Distortion != nil {
		populated++
		match = match || e.Category == EffectDistortion
	}
	return populated == 1 && match
}
