package behringer

import (
	"fmt"
	"strings"

	"stagehand/internal/console"
	"stagehand/internal/encode"
	"stagehand/internal/export"
)

// Hardware limits shared by the X32/M32 family. Every family member loads
// the same scene dialect.
const (
	maxChannels = 32
	maxAuxIns   = 8
	maxBuses    = 16
	maxMatrices = 6
	maxDCAs     = 8
	maxEffects  = 8
)

// sceneMagic is the fixed first-line marker of the scene dialect.
const sceneMagic = "#4.0#"

// Models lists the family members this adapter handles, keyed by
// manufacturer.
var Models = map[string][]string{
	"Behringer": {"X32", "X32 Compact", "X32 Producer", "X32 Rack"},
	"Midas":     {"M32", "M32R"},
}

// Adapter exports scenes for one concrete desk of the family.
type Adapter struct {
	manufacturer string
	model        string
}

// New returns an adapter bound to the given family member.
func New(manufacturer, model string) *Adapter {
	return &Adapter{manufacturer: manufacturer, model: model}
}

func (a *Adapter) Manufacturer() string { return a.manufacturer }
func (a *Adapter) Model() string        { return a.model }

// Capability reports the family's full-fidelity feature set. Scene files
// load directly from USB; no offline editor is involved, and re-import
// into the canonical model is not supported.
func (a *Adapter) Capability() export.Capability {
	return export.Capability{
		Scenes:                true,
		EQ:                    true,
		Dynamics:              true,
		Routing:               true,
		Effects:               true,
		Import:                false,
		Extensions:            []string{".scn"},
		RequiresOfflineEditor: false,
	}
}

// Validate runs the pre-flight compatibility check. Hard errors block
// export; truncation and character-set findings are warnings only.
func (a *Adapter) Validate(session *console.ConsoleSession) export.Validation {
	v := export.Validation{Valid: true}
	if session == nil {
		v.Valid = false
		v.Errors = append(v.Errors, "no session provided")
		return v
	}

	cfg := session.Console
	if !strings.EqualFold(strings.TrimSpace(cfg.Manufacturer), a.manufacturer) {
		v.Errors = append(v.Errors, fmt.Sprintf("session targets manufacturer %q, adapter handles %s", cfg.Manufacturer, a.manufacturer))
	}
	if !strings.EqualFold(strings.TrimSpace(cfg.Model), a.model) {
		v.Errors = append(v.Errors, fmt.Sprintf("session targets model %q, adapter handles %s", cfg.Model, a.model))
	}
	if cfg.ChannelCount > maxChannels {
		v.Errors = append(v.Errors, fmt.Sprintf("%d channels requested, %s supports %d", cfg.ChannelCount, a.model, maxChannels))
	}
	if cfg.BusCount > maxBuses {
		v.Errors = append(v.Errors, fmt.Sprintf("%d mix buses requested, %s supports %d", cfg.BusCount, a.model, maxBuses))
	}
	if cfg.MatrixCount > maxMatrices {
		v.Errors = append(v.Errors, fmt.Sprintf("%d matrices requested, %s supports %d", cfg.MatrixCount, a.model, maxMatrices))
	}
	if cfg.DCACount > maxDCAs {
		v.Errors = append(v.Errors, fmt.Sprintf("%d DCAs requested, %s supports %d", cfg.DCACount, a.model, maxDCAs))
	}
	if cfg.EffectSlots > maxEffects {
		v.Errors = append(v.Errors, fmt.Sprintf("%d effect slots requested, %s has %d", cfg.EffectSlots, a.model, maxEffects))
	}

	// Structural violations are hard errors: a duplicate channel number
	// would otherwise silently shadow the later definition in the scene.
	for _, err := range session.Check() {
		v.Errors = append(v.Errors, err.Error())
	}

	scene := &session.CurrentScene
	for _, ch := range scene.Channels {
		if ch.Number > maxChannels {
			v.Errors = append(v.Errors, fmt.Sprintf("channel %d exceeds the %d-channel surface", ch.Number, maxChannels))
		}
		if len([]rune(ch.Name)) > encode.X32NameLimit {
			v.Warnings = append(v.Warnings, fmt.Sprintf("channel %d name %q will be truncated to %q",
				ch.Number, ch.Name, encode.Truncate(ch.Name, encode.X32NameLimit)))
		}
		if !encode.IsASCII(ch.Name) {
			v.Warnings = append(v.Warnings, fmt.Sprintf("channel %d name %q contains non-ASCII characters; the scribble strip may not render them", ch.Number, ch.Name))
		}
	}
	for _, sb := range cfg.Stageboxes {
		if !console.KnownStageboxModel(sb.Model) {
			v.Warnings = append(v.Warnings, fmt.Sprintf("stagebox model %q is not recognized; network patching falls back to declared counts", sb.Model))
		}
	}
	if len(scene.Channels) == 0 {
		v.Suggestions = append(v.Suggestions, "the scene has no configured channels; the export will contain factory defaults only")
	}

	v.Valid = len(v.Errors) == 0
	return v
}

// Export renders the scene file plus the verification README. A hard
// validation failure blocks the export entirely; any unexpected failure
// during generation is converted into a reported error while files already
// produced are kept in the result.
func (a *Adapter) Export(session *console.ConsoleSession) (result export.Result) {
	result.Success = true

	defer func() {
		if r := recover(); r != nil {
			result.Errorf("scene export failed unexpectedly: %v", r)
		}
	}()

	v := a.Validate(session)
	result.Warnings = append(result.Warnings, v.Warnings...)
	if !v.Valid {
		result.Success = false
		result.Errors = append(result.Errors, v.Errors...)
		return result
	}

	sceneName := encode.Truncate(strings.TrimSpace(session.CurrentScene.Name), encode.X32NameLimit)
	if sceneName == "" {
		sceneName = "Scene"
	}

	body := renderScene(session)
	result.AddFile(export.File{
		Filename:    sceneFilename(session),
		Extension:   ".scn",
		Content:     body,
		MIMEType:    "text/plain",
		Description: fmt.Sprintf("%s scene %q", a.model, sceneName),
	})

	readme := renderReference(a, session)
	result.AddFile(export.File{
		Filename:    "README.md",
		Extension:   ".md",
		Content:     readme,
		MIMEType:    "text/markdown",
		Description: "Reference tables for manual verification on the desk",
	})

	result.Instructions = export.NumberInstructions([]string{
		"Format a USB stick as FAT32.",
		fmt.Sprintf("Copy %s into the root directory of the stick.", sceneFilename(session)),
		"Insert the stick into the top-panel USB port of the console.",
		"Press UTILITY on the SCENES page and choose Import Scene.",
		"Select the file, store it to a free scene slot, then GO to recall it.",
		"Walk the channel strips against README.md before the first soundcheck.",
	})
	return result
}

func sceneFilename(session *console.ConsoleSession) string {
	base := strings.TrimSpace(session.Gig.Name)
	if base == "" {
		base = strings.TrimSpace(session.CurrentScene.Name)
	}
	if base == "" {
		base = "scene"
	}
	safe := make([]rune, 0, len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			safe = append(safe, r)
		case r == ' ', r == '-', r == '_':
			safe = append(safe, '_')
		}
	}
	if len(safe) == 0 {
		return "scene.scn"
	}
	return string(safe) + ".scn"
}
