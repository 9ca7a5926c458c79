package yamaha

import (
	"fmt"

	"stagehand/internal/console"
	"stagehand/internal/encode"
	"stagehand/internal/export"
)

// renderTables emits every CSV table in fixed order. All slots up to the
// effective channel count are written, defaulted where the session leaves
// them unconfigured, so repeated exports are byte-identical and the
// offline editor always sees complete sections.
func (a *Adapter) renderTables(session *console.ConsoleSession) []export.File {
	scene := &session.CurrentScene
	channels := a.effectiveChannels(session)

	return []export.File{
		csvFile("01_channel_names.csv", "Channel names, colors, and icons", a.channelNameTable(scene, channels)),
		csvFile("02_input_patch.csv", "Input patching per channel", a.inputPatchTable(scene, channels)),
		csvFile("03_output_patch.csv", "Output patching per mix and matrix", a.outputPatchTable(scene)),
		csvFile("04_rack_patch.csv", "Dante network patching per stagebox", a.rackPatchTable(session)),
		csvFile("05_mix_names.csv", "Mix bus names", a.mixNameTable(scene)),
		csvFile("06_matrix_names.csv", "Matrix names", a.matrixNameTable(scene)),
		csvFile("07_dca_names.csv", "DCA names", a.dcaNameTable(scene)),
		csvFile("08_stin_names.csv", "Stereo input names", a.stInNameTable()),
		csvFile("09_master_names.csv", "Master strip names", a.masterNameTable(scene)),
	}
}

func csvFile(name, description, content string) export.File {
	return export.File{
		Filename:    name,
		Extension:   ".csv",
		Content:     content,
		MIMEType:    "text/csv",
		Description: description,
	}
}

func (a *Adapter) channelNameTable(scene *console.Scene, channels int) string {
	w := export.NewTable(a.model, protocolVersion, "ChannelName", []string{"CH", "Name", "ShortName", "Color", "Icon"})
	for n := 1; n <= channels; n++ {
		id := "CH_" + encode.PadNumber(n)
		ch := scene.ChannelByNumber(n)
		if ch == nil {
			fallback := "CH" + encode.PadNumber(n)
			w.Row(export.Plain(id), export.Display(fallback), export.Display(fallback), export.Plain("White"), export.Plain("Blank"))
			continue
		}
		short := ch.ShortName
		if short == "" {
			short = ch.Name
		}
		w.Row(
			export.Plain(id),
			export.Display(encode.Truncate(ch.Name, encode.YamahaNameLimit)),
			export.Display(encode.Truncate(short, encode.YamahaNameLimit)),
			export.Plain(encode.YamahaColor(ch.Color)),
			export.Plain(encode.YamahaIcon(ch.Icon, ch.Name)),
		)
	}
	return w.String()
}

// patchToken renders a patch point in the bare space-delimited convention
// of the patch tables.
func patchToken(p console.PatchPoint, fallback string) string {
	switch p.Type {
	case console.PatchDante:
		return fmt.Sprintf("DANTE %d", p.Number)
	case console.PatchLocal:
		return fmt.Sprintf("INPUT %d", p.Number)
	case console.PatchAES50, console.PatchMADI:
		return fmt.Sprintf("SLOT %d", p.Number)
	case console.PatchUSB:
		return fmt.Sprintf("USB %d", p.Number)
	default:
		return fallback
	}
}

func (a *Adapter) inputPatchTable(scene *console.Scene, channels int) string {
	w := export.NewTable(a.model, protocolVersion, "InputPatch", []string{"CH", "Source"})
	for n := 1; n <= channels; n++ {
		source := fmt.Sprintf("DANTE %d", n)
		if ch := scene.ChannelByNumber(n); ch != nil && ch.Input != nil {
			source = patchToken(ch.Input.Source, source)
		}
		w.Row(export.Plain(fmt.Sprintf("CH %d", n)), export.Plain(source))
	}
	return w.String()
}

func (a *Adapter) outputPatchTable(scene *console.Scene) string {
	w := export.NewTable(a.model, protocolVersion, "OutputPatch", []string{"Port", "Destination"})
	for n := 1; n <= a.spec.Mixes; n++ {
		dest := fmt.Sprintf("OMNI %d", n)
		if b := busOfType(scene, n, console.BusAux, console.BusGroup); b != nil && b.Output.Type != "" {
			dest = patchToken(b.Output, dest)
		}
		w.Row(export.Plain(fmt.Sprintf("MIX %d", n)), export.Plain(dest))
	}
	for n := 1; n <= a.spec.Matrices; n++ {
		dest := "NONE"
		if b := busOfType(scene, n, console.BusMatrix); b != nil && b.Output.Type != "" {
			dest = patchToken(b.Output, dest)
		}
		w.Row(export.Plain(fmt.Sprintf("MTX %d", n)), export.Plain(dest))
	}
	return w.String()
}

// rackPatchTable maps every stagebox socket into the shared Dante channel
// space using the box's slot-derived start offset.
func (a *Adapter) rackPatchTable(session *console.ConsoleSession) string {
	w := export.NewTable(a.model, protocolVersion, "RackPatch", []string{"Port", "Source"})
	for _, sb := range session.Console.Stageboxes {
		label := sb.Name
		if label == "" {
			label = string(sb.Model)
		}
		inputs := sb.Inputs
		if inputs == 0 {
			if fixed, err := console.NewStagebox(sb.Model, sb.Slot); err == nil {
				inputs = fixed.Inputs
				sb = fixed
			}
		}
		for socket := 1; socket <= inputs; socket++ {
			w.Row(
				export.Plain(fmt.Sprintf("DANTE %d", sb.NetworkChannel(socket))),
				export.Plain(fmt.Sprintf("%s INPUT %d", label, socket)),
			)
		}
	}
	return w.String()
}

func (a *Adapter) mixNameTable(scene *console.Scene) string {
	w := export.NewTable(a.model, protocolVersion, "MixName", []string{"MIX", "Name", "ShortName"})
	for n := 1; n <= a.spec.Mixes; n++ {
		name := "MIX" + encode.PadNumber(n)
		short := name
		if b := busOfType(scene, n, console.BusAux, console.BusGroup); b != nil {
			name = encode.Truncate(b.Name, encode.YamahaNameLimit)
			short = shortOf(b)
		}
		w.Row(export.Plain("MIX_"+encode.PadNumber(n)), export.Display(name), export.Display(short))
	}
	return w.String()
}

func (a *Adapter) matrixNameTable(scene *console.Scene) string {
	w := export.NewTable(a.model, protocolVersion, "MatrixName", []string{"MTX", "Name", "ShortName"})
	for n := 1; n <= a.spec.Matrices; n++ {
		name := "MTX" + encode.PadNumber(n)
		short := name
		if b := busOfType(scene, n, console.BusMatrix); b != nil {
			name = encode.Truncate(b.Name, encode.YamahaNameLimit)
			short = shortOf(b)
		}
		w.Row(export.Plain("MTX_"+encode.PadNumber(n)), export.Display(name), export.Display(short))
	}
	return w.String()
}

func (a *Adapter) dcaNameTable(scene *console.Scene) string {
	w := export.NewTable(a.model, protocolVersion, "DCAName", []string{"DCA", "Name"})
	for n := 1; n <= a.spec.DCAs; n++ {
		name := "DCA" + encode.PadNumber(n)
		if d := scene.DCAByNumber(n); d != nil {
			name = encode.Truncate(d.Name, encode.YamahaNameLimit)
		}
		w.Row(export.Plain("DCA_"+encode.PadNumber(n)), export.Display(name))
	}
	return w.String()
}

// stInNameTable always emits defaults: the canonical model has no stereo
// input collection, but the section must still be complete.
func (a *Adapter) stInNameTable() string {
	w := export.NewTable(a.model, protocolVersion, "StInName", []string{"STIN", "Name"})
	for n := 1; n <= a.spec.StereoIn; n++ {
		w.Row(export.Plain("STIN_"+encode.PadNumber(n)), export.Display("STIN"+encode.PadNumber(n)))
	}
	return w.String()
}

func (a *Adapter) masterNameTable(scene *console.Scene) string {
	w := export.NewTable(a.model, protocolVersion, "MasterName", []string{"Master", "Name"})
	stereo := "STEREO"
	for i := range scene.Buses {
		if scene.Buses[i].Type == console.BusMain {
			stereo = encode.Truncate(scene.Buses[i].Name, encode.YamahaNameLimit)
			break
		}
	}
	w.Row(export.Plain("ST_01"), export.Display(stereo))
	w.Row(export.Plain("MONO_01"), export.Display("MONO"))
	return w.String()
}

func shortOf(b *console.Bus) string {
	if b.ShortName != "" {
		return encode.Truncate(b.ShortName, encode.YamahaNameLimit)
	}
	return encode.Truncate(b.Name, encode.YamahaNameLimit)
}

func busOfType(scene *console.Scene, n int, types ...console.BusType) *console.Bus {
	for i := range scene.Buses {
		b := &scene.Buses[i]
		if b.Number != n {
			continue
		}
		for _, t := range types {
			if b.Type == t {
				return b
			}
		}
	}
	return nil
}
