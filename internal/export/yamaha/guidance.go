package yamaha

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"stagehand/internal/console"
	"stagehand/internal/encode"
	"stagehand/internal/export"
)

var titleCaser = cases.Title(language.English)

// renderGuidance produces the documentation pack. Every canonical setting
// the CSV tables cannot carry must land in at least one of these files;
// sections with nothing to report say so explicitly instead of going
// missing.
func renderGuidance(a *Adapter, session *console.ConsoleSession) []export.File {
	docs := []struct {
		name        string
		description string
		render      func(*Adapter, *console.ConsoleSession) string
	}{
		{"10_phantom_power.md", "Phantom power checklist", phantomDoc},
		{"11_gain_sheet.md", "Preamp gain starting points", gainDoc},
		{"12_eq_settings.md", "Channel EQ settings", eqDoc},
		{"13_dynamics_settings.md", "Gate and compressor settings", dynamicsDoc},
		{"14_effects_rack.md", "Effects rack setup", effectsDoc},
		{"15_monitor_mixes.md", "Monitor send matrix", monitorDoc},
		{"16_master_checklist.md", "Master checklist and import steps", masterChecklistDoc},
	}

	files := make([]export.File, 0, len(docs))
	for _, d := range docs {
		files = append(files, export.File{
			Filename:    d.name,
			Extension:   ".md",
			Content:     d.render(a, session),
			MIMEType:    "text/markdown",
			Description: d.description,
		})
	}
	return files
}

func docTable(header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(header)
	return tw
}

func sortedChannels(scene *console.Scene) []console.Channel {
	out := make([]console.Channel, len(scene.Channels))
	copy(out, scene.Channels)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func phantomDoc(a *Adapter, session *console.ConsoleSession) string {
	var b strings.Builder
	b.WriteString("# Phantom power checklist\n\n")
	b.WriteString("+48V is not part of the CSV tables. Set it per channel on the SELECTED CHANNEL screen before line check.\n\n")

	phantom := phantomChannels(&session.CurrentScene)
	if len(phantom) == 0 {
		b.WriteString("Nothing required: no channel in this session needs phantom power.\n")
		return b.String()
	}

	tw := docTable(table.Row{"Ch", "Name", "Done"})
	for _, ch := range phantom {
		tw.AppendRow(table.Row{encode.PadNumber(ch.Number), ch.Name, "[ ]"})
	}
	b.WriteString(tw.Render())
	b.WriteString("\n\nDouble-check condenser and active DI channels before unmuting.\n")
	return b.String()
}

func gainDoc(a *Adapter, session *console.ConsoleSession) string {
	var b strings.Builder
	b.WriteString("# Preamp gain starting points\n\n")

	channels := sortedChannels(&session.CurrentScene)
	withInput := channels[:0:0]
	for _, ch := range channels {
		if ch.Input != nil {
			withInput = append(withInput, ch)
		}
	}
	if len(withInput) == 0 {
		b.WriteString("Nothing required: no channel carries preamp settings.\n")
		return b.String()
	}

	tw := docTable(table.Row{"Ch", "Name", "Gain", "Pad", "Phase", "Source"})
	for _, ch := range withInput {
		pad, phase := "-", "-"
		if ch.Input.Pad {
			pad = "on"
		}
		if ch.Input.PhaseInvert {
			phase = "invert"
		}
		tw.AppendRow(table.Row{
			encode.PadNumber(ch.Number),
			ch.Name,
			encode.FormatGain(ch.Input.GainDB) + " dB",
			pad,
			phase,
			patchToken(ch.Input.Source, "-"),
		})
	}
	b.WriteString(tw.Render())
	b.WriteString("\n\nAim for peaks around -18 dBFS during soundcheck, then trim.\n")
	return b.String()
}

func eqDoc(a *Adapter, session *console.ConsoleSession) string {
	var b strings.Builder
	b.WriteString("# Channel EQ settings\n\n")

	wrote := false
	for _, ch := range sortedChannels(&session.CurrentScene) {
		if ch.EQ == nil || (!ch.EQ.Enabled && ch.EQ.HighPass == nil && len(ch.EQ.Bands) == 0) {
			continue
		}
		wrote = true
		fmt.Fprintf(&b, "## CH %s: %s\n\n", encode.PadNumber(ch.Number), ch.Name)
		if hp := ch.EQ.HighPass; hp != nil && hp.Enabled {
			fmt.Fprintf(&b, "High-pass: %.0f Hz", hp.FrequencyHz)
			if hp.SlopeDBOct > 0 {
				fmt.Fprintf(&b, " (%d dB/oct)", hp.SlopeDBOct)
			}
			b.WriteString("\n\n")
		}
		if len(ch.EQ.Bands) > 0 {
			tw := docTable(table.Row{"Band", "Type", "Freq", "Gain", "Q", "Purpose"})
			for i, band := range ch.EQ.Bands {
				purpose := band.Purpose
				if purpose == "" {
					purpose = "-"
				}
				tw.AppendRow(table.Row{
					i + 1,
					string(band.Type),
					fmt.Sprintf("%.0f Hz", band.FrequencyHz),
					encode.FormatGain(band.GainDB) + " dB",
					fmt.Sprintf("%.1f", band.Q),
					purpose,
				})
			}
			b.WriteString(tw.Render())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if !wrote {
		b.WriteString("Nothing required: no channel carries EQ settings.\n")
	}
	return b.String()
}

// genreDynamicsHint returns the starting-point note appended to the
// dynamics sheet for the session's genre.
func genreDynamicsHint(genre string) string {
	switch strings.ToLower(strings.TrimSpace(genre)) {
	case "rock", "metal", "punk":
		return "Drums want fast attacks and firm ratios (4:1 and up); keep vocal compression 3:1 with makeup to ride the band."
	case "jazz", "acoustic", "folk", "classical":
		return "Compress sparingly: slow attacks, low ratios (2:1), and let transients through; gates mostly off."
	case "edm", "electronic", "pop", "hip-hop", "hip hop":
		return "Program material arrives pre-compressed; use gentle bus compression and watch gate thresholds on live vocals."
	default:
		return "Start gentle (2:1 to 4:1) and tighten only where the room demands it."
	}
}

func dynamicsDoc(a *Adapter, session *console.ConsoleSession) string {
	var b strings.Builder
	b.WriteString("# Gate and compressor settings\n\n")

	genre := strings.TrimSpace(session.Gig.Genre)
	if genre != "" {
		fmt.Fprintf(&b, "Genre: %s. %s\n\n", titleCaser.String(genre), genreDynamicsHint(genre))
	}

	wrote := false
	tw := docTable(table.Row{"Ch", "Name", "Block", "Threshold", "Ratio/Range", "Attack", "Release", "Knee"})
	for _, ch := range sortedChannels(&session.CurrentScene) {
		if ch.Dynamics == nil {
			continue
		}
		if g := ch.Dynamics.Gate; g != nil {
			wrote = true
			tw.AppendRow(table.Row{
				encode.PadNumber(ch.Number), ch.Name, "gate",
				encode.FormatGain(g.ThresholdDB) + " dB",
				fmt.Sprintf("%.0f dB range", g.RangeDB),
				fmt.Sprintf("%.0f ms", g.AttackMS),
				fmt.Sprintf("%.0f ms", g.ReleaseMS),
				"-",
			})
		}
		if c := ch.Dynamics.Compressor; c != nil {
			wrote = true
			ratio := fmt.Sprintf("%.1f:1", c.Ratio)
			if c.Ratio >= 20 {
				ratio = "limit"
			}
			knee := c.Knee
			if knee == "" {
				knee = "medium"
			}
			tw.AppendRow(table.Row{
				encode.PadNumber(ch.Number), ch.Name, "comp",
				encode.FormatGain(c.ThresholdDB) + " dB",
				ratio,
				fmt.Sprintf("%.0f ms", c.AttackMS),
				fmt.Sprintf("%.0f ms", c.ReleaseMS),
				knee,
			})
		}
	}
	if !wrote {
		b.WriteString("Nothing required: no channel carries dynamics settings.\n")
		return b.String()
	}
	b.WriteString(tw.Render())
	b.WriteString("\n")
	return b.String()
}

func effectsDoc(a *Adapter, session *console.ConsoleSession) string {
	var b strings.Builder
	b.WriteString("# Effects rack setup\n\n")

	effects := session.CurrentScene.Effects
	if len(effects) == 0 {
		b.WriteString("Nothing required: no effect slots are configured.\n")
		return b.String()
	}

	sorted := make([]console.EffectProcessor, len(effects))
	copy(sorted, effects)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Slot < sorted[j].Slot })

	for _, fx := range sorted {
		fmt.Fprintf(&b, "## Rack %d: %s\n\n", fx.Slot, titleCaser.String(string(fx.Category)))
		switch {
		case fx.Reverb != nil:
			p := fx.Reverb
			fmt.Fprintf(&b, "- Algorithm: %s\n- Decay: %.1f s\n", titleCaser.String(p.Algorithm), p.DecaySeconds)
			if p.PreDelayMS > 0 {
				fmt.Fprintf(&b, "- Pre-delay: %.0f ms\n", p.PreDelayMS)
			}
			if p.HighCutHz > 0 {
				fmt.Fprintf(&b, "- High cut: %.0f Hz\n", p.HighCutHz)
			}
			fmt.Fprintf(&b, "- Return level: %s dB\n", encode.FormatDB(p.ReturnLevelDB))
		case fx.Delay != nil:
			p := fx.Delay
			fmt.Fprintf(&b, "- Mode: %s\n- Time: %.0f ms\n- Feedback: %.0f%%\n", titleCaser.String(p.Mode), p.TimeMS, p.FeedbackPct)
			fmt.Fprintf(&b, "- Return level: %s dB\n", encode.FormatDB(p.ReturnLevelDB))
		case fx.Modulation != nil:
			p := fx.Modulation
			fmt.Fprintf(&b, "- Mode: %s\n- Rate: %.2f Hz\n- Depth: %.0f%%\n", titleCaser.String(p.Mode), p.RateHz, p.DepthPct)
		case fx.Pitch != nil:
			p := fx.Pitch
			fmt.Fprintf(&b, "- Shift: %+d semitones\n- Detune: %+d cents\n- Mix: %.0f%%\n", p.Semitones, p.DetuneCents, p.MixPct)
		case fx.Distortion != nil:
			p := fx.Distortion
			fmt.Fprintf(&b, "- Drive: %.0f%%\n- Tone: %.0f%%\n- Mix: %.0f%%\n", p.DrivePct, p.TonePct, p.MixPct)
		default:
			b.WriteString("- No parameters recorded; use the rack default.\n")
		}

		feeds := channelsFeedingSlot(&session.CurrentScene, fx.Slot)
		if len(feeds) > 0 {
			b.WriteString("- Fed by: ")
			parts := make([]string, 0, len(feeds))
			for _, f := range feeds {
				parts = append(parts, fmt.Sprintf("CH %d (%s)", f.number, encode.FormatDB(f.level)))
			}
			b.WriteString(strings.Join(parts, ", "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

type effectFeed struct {
	number int
	level  float64
}

func channelsFeedingSlot(scene *console.Scene, slot int) []effectFeed {
	var out []effectFeed
	for _, ch := range sortedChannels(scene) {
		for _, send := range ch.EffectSends {
			if send.Slot == slot {
				out = append(out, effectFeed{number: ch.Number, level: send.LevelDB})
			}
		}
	}
	return out
}

func monitorDoc(a *Adapter, session *console.ConsoleSession) string {
	var b strings.Builder
	b.WriteString("# Monitor send matrix\n\n")

	scene := &session.CurrentScene
	monitors := make([]console.Bus, 0, len(scene.Buses))
	for _, bus := range scene.Buses {
		if bus.Purpose == console.PurposeMonitor || bus.Purpose == console.PurposeIEM {
			monitors = append(monitors, bus)
		}
	}
	if len(monitors) == 0 {
		b.WriteString("Nothing required: no bus is tagged as a monitor or IEM mix.\n")
		return b.String()
	}
	sort.Slice(monitors, func(i, j int) bool { return monitors[i].Number < monitors[j].Number })

	header := table.Row{"Ch", "Name"}
	for _, m := range monitors {
		header = append(header, fmt.Sprintf("MIX %d %s", m.Number, m.Name))
	}
	tw := docTable(header)

	for _, ch := range sortedChannels(scene) {
		row := table.Row{encode.PadNumber(ch.Number), ch.Name}
		any := false
		for _, m := range monitors {
			cell := "-"
			for _, send := range ch.BusSends {
				if send.Bus == m.Number {
					cell = encode.FormatDB(send.LevelDB)
					any = true
				}
			}
			row = append(row, cell)
		}
		if any {
			tw.AppendRow(row)
		}
	}
	b.WriteString(tw.Render())
	b.WriteString("\n\nLevels are send levels in dB; \"-oo\" means assigned but pulled down.\n")
	return b.String()
}

func masterChecklistDoc(a *Adapter, session *console.ConsoleSession) string {
	var b strings.Builder
	b.WriteString("# Master checklist\n\n")
	if session.Gig.Name != "" {
		fmt.Fprintf(&b, "Gig: %s", session.Gig.Name)
		if session.Gig.Venue != "" {
			fmt.Fprintf(&b, " at %s", session.Gig.Venue)
		}
		b.WriteString("\n\n")
	}

	steps := []string{
		fmt.Sprintf("Import the CSV tables into %s Editor and load the console file on the %s (see the export instructions).", familyName(a.model), a.model),
		"Verify channel names, colors, and icons against 01_channel_names.csv.",
		"Confirm the Dante patch against 02_input_patch.csv and 04_rack_patch.csv.",
		"Set phantom power per 10_phantom_power.md.",
		"Dial in preamp gains from 11_gain_sheet.md during line check.",
		"Apply channel EQ from 12_eq_settings.md.",
		"Apply gates and compressors from 13_dynamics_settings.md.",
		"Build the effects racks per 14_effects_rack.md.",
		"Rebuild monitor sends from 15_monitor_mixes.md.",
		"Save the finished state to a new scene before soundcheck.",
	}
	for _, step := range export.NumberInstructions(steps) {
		b.WriteString(step)
		b.WriteString("\n")
	}

	if len(session.AdvisoryNotes) > 0 {
		b.WriteString("\n## Session notes\n\n")
		for _, note := range session.AdvisoryNotes {
			if note.Channel > 0 {
				fmt.Fprintf(&b, "- [ch %d] %s: %s\n", note.Channel, note.Subject, note.Body)
			} else {
				fmt.Fprintf(&b, "- %s: %s\n", note.Subject, note.Body)
			}
		}
	}
	return b.String()
}
