package yamaha

import (
	"fmt"
	"strings"

	"stagehand/internal/console"
	"stagehand/internal/encode"
	"stagehand/internal/export"
)

// protocolVersion is the fixed version line of every table header.
const protocolVersion = "V2.00"

// modelSpec holds the hardware limits of one CL/QL family member.
type modelSpec struct {
	Channels int
	Mixes    int
	Matrices int
	DCAs     int
	StereoIn int
}

// Specs lists the supported family members and their limits.
var Specs = map[string]modelSpec{
	"CL5": {Channels: 72, Mixes: 24, Matrices: 8, DCAs: 16, StereoIn: 8},
	"CL3": {Channels: 64, Mixes: 24, Matrices: 8, DCAs: 16, StereoIn: 8},
	"CL1": {Channels: 48, Mixes: 24, Matrices: 8, DCAs: 16, StereoIn: 8},
	"QL5": {Channels: 64, Mixes: 16, Matrices: 8, DCAs: 16, StereoIn: 8},
	"QL1": {Channels: 32, Mixes: 16, Matrices: 8, DCAs: 16, StereoIn: 8},
}

// Adapter exports the CSV tables and guidance pack for one CL/QL desk.
type Adapter struct {
	model string
	spec  modelSpec
}

// New returns an adapter for the given model. Unknown models get the
// smallest spec so validation still produces useful errors.
func New(model string) *Adapter {
	spec, ok := Specs[strings.ToUpper(strings.TrimSpace(model))]
	if !ok {
		spec = Specs["QL1"]
	}
	return &Adapter{model: strings.ToUpper(strings.TrimSpace(model)), spec: spec}
}

func (a *Adapter) Manufacturer() string { return "Yamaha" }
func (a *Adapter) Model() string        { return a.model }

// Capability reflects the tabular dialect: names, colors, icons, and
// patching only. Loading the tables requires the offline editor; there is
// no import path back into the canonical model.
func (a *Adapter) Capability() export.Capability {
	return export.Capability{
		Scenes:                false,
		EQ:                    false,
		Dynamics:              false,
		Routing:               true,
		Effects:               false,
		Import:                false,
		Extensions:            []string{".csv"},
		RequiresOfflineEditor: true,
	}
}

// Validate runs the pre-flight check against the model's limits.
func (a *Adapter) Validate(session *console.ConsoleSession) export.Validation {
	v := export.Validation{Valid: true}
	if session == nil {
		v.Valid = false
		v.Errors = append(v.Errors, "no session provided")
		return v
	}

	cfg := session.Console
	if !strings.EqualFold(strings.TrimSpace(cfg.Manufacturer), "Yamaha") {
		v.Errors = append(v.Errors, fmt.Sprintf("session targets manufacturer %q, adapter handles Yamaha", cfg.Manufacturer))
	}
	if !strings.EqualFold(strings.TrimSpace(cfg.Model), a.model) {
		v.Errors = append(v.Errors, fmt.Sprintf("session targets model %q, adapter handles %s", cfg.Model, a.model))
	}
	if cfg.ChannelCount > a.spec.Channels {
		v.Errors = append(v.Errors, fmt.Sprintf("%d channels requested, %s supports %d", cfg.ChannelCount, a.model, a.spec.Channels))
	}
	if cfg.BusCount > a.spec.Mixes {
		v.Errors = append(v.Errors, fmt.Sprintf("%d mix buses requested, %s supports %d", cfg.BusCount, a.model, a.spec.Mixes))
	}
	if cfg.MatrixCount > a.spec.Matrices {
		v.Errors = append(v.Errors, fmt.Sprintf("%d matrices requested, %s supports %d", cfg.MatrixCount, a.model, a.spec.Matrices))
	}
	if cfg.DCACount > a.spec.DCAs {
		v.Errors = append(v.Errors, fmt.Sprintf("%d DCAs requested, %s supports %d", cfg.DCACount, a.model, a.spec.DCAs))
	}

	// Structural violations are hard errors: duplicate numbers would
	// otherwise collapse into one table row with the first definition.
	for _, err := range session.Check() {
		v.Errors = append(v.Errors, err.Error())
	}

	scene := &session.CurrentScene
	for _, ch := range scene.Channels {
		if ch.Number > a.spec.Channels {
			v.Errors = append(v.Errors, fmt.Sprintf("channel %d exceeds the %d-channel surface", ch.Number, a.spec.Channels))
		}
		if len([]rune(ch.Name)) > encode.YamahaNameLimit {
			v.Warnings = append(v.Warnings, fmt.Sprintf("channel %d name %q will display as %q",
				ch.Number, ch.Name, encode.Truncate(ch.Name, encode.YamahaNameLimit)))
		}
		if !encode.IsASCII(ch.Name) {
			v.Warnings = append(v.Warnings, fmt.Sprintf("channel %d name %q contains non-ASCII characters; the console file converter may reject them", ch.Number, ch.Name))
		}
	}

	if phantom := phantomChannels(scene); len(phantom) > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%d channel(s) need +48V; phantom power is not part of the CSV tables and must be set by hand", len(phantom)))
	}
	if hasUnrepresentable(scene) {
		v.Suggestions = append(v.Suggestions, "EQ, dynamics, and effect settings cannot be written into CL/QL tables; dial them in from the generated guidance documents")
	}

	v.Valid = len(v.Errors) == 0
	return v
}

// Export renders the CSV tables followed by the guidance pack. The tables
// alone are an incomplete export for any session that carries processing
// settings, so a guidance failure is reported as an export error even
// though the CSV files are still returned.
func (a *Adapter) Export(session *console.ConsoleSession) (result export.Result) {
	result.Success = true

	defer func() {
		if r := recover(); r != nil {
			result.Errorf("table export failed unexpectedly: %v", r)
		}
	}()

	v := a.Validate(session)
	result.Warnings = append(result.Warnings, v.Warnings...)
	if !v.Valid {
		result.Success = false
		result.Errors = append(result.Errors, v.Errors...)
		return result
	}

	for _, f := range a.renderTables(session) {
		result.AddFile(f)
	}
	for _, f := range renderGuidance(a, session) {
		result.AddFile(f)
	}

	result.Instructions = export.NumberInstructions([]string{
		"Copy every .csv file into one folder on your computer.",
		fmt.Sprintf("Open %s Editor (offline) and create a console file for the %s.", familyName(a.model), a.model),
		"Import each CSV table through File > Import CSV, matching the section named in the file.",
		"Save the console file to a USB stick formatted as FAT32.",
		fmt.Sprintf("On the %s press SETUP > SAVE/LOAD, select the file, and LOAD.", a.model),
		"Work through 16_master_checklist.md to apply everything the tables cannot carry.",
	})
	return result
}

func familyName(model string) string {
	if strings.HasPrefix(model, "QL") {
		return "QL"
	}
	return "CL"
}

// effectiveChannels returns how many channel slots the tables cover.
func (a *Adapter) effectiveChannels(session *console.ConsoleSession) int {
	if n := session.Console.ChannelCount; n > 0 && n <= a.spec.Channels {
		return n
	}
	return a.spec.Channels
}

func phantomChannels(scene *console.Scene) []console.Channel {
	var out []console.Channel
	for _, ch := range scene.Channels {
		if ch.Input != nil && ch.Input.Phantom == console.PhantomOn {
			out = append(out, ch)
		}
	}
	return out
}

func hasUnrepresentable(scene *console.Scene) bool {
	if len(scene.Effects) > 0 {
		return true
	}
	for _, ch := range scene.Channels {
		if ch.EQ != nil || ch.Dynamics != nil || ch.Input != nil {
			return true
		}
	}
	return false
}
