package behringer

import (
	"fmt"
	"math"
	"strings"

	"stagehand/internal/console"
	"stagehand/internal/encode"
	"stagehand/internal/export"
)

// limiterRatio is the compressor ratio at which the desk's dedicated
// limiter token replaces the numeric ratio.
const limiterRatio = 20.0

// Default flat EQ band frequencies, low to high, used to pad unused band
// slots so every strip always carries four fully-specified bands.
var defaultBandFreqs = [4]float64{100, 400, 2500, 8000}

// renderScene emits the complete scene body in fixed slot order. The same
// session always yields byte-identical output.
func renderScene(session *console.ConsoleSession) string {
	var w export.SceneWriter
	scene := &session.CurrentScene

	sceneName := encode.Truncate(strings.TrimSpace(scene.Name), encode.X32NameLimit)
	if sceneName == "" {
		sceneName = "Scene"
	}
	w.Header(sceneMagic, export.QStr(sceneName), export.QStr(""), export.Sym("%000000000"), export.Int(1))

	writePreamble(&w)

	for n := 1; n <= maxChannels; n++ {
		writeChannel(&w, session, scene.ChannelByNumber(n), n)
	}
	for n := 1; n <= maxAuxIns; n++ {
		writeAuxIn(&w, n)
	}
	for n := 1; n <= maxBuses; n++ {
		writeBus(&w, busOfType(scene, n, console.BusAux, console.BusGroup), "/bus/"+encode.PadNumber(n), fmt.Sprintf("Bus%02d", n))
	}
	for n := 1; n <= maxMatrices; n++ {
		writeBus(&w, busOfType(scene, n, console.BusMatrix), "/mtx/"+encode.PadNumber(n), fmt.Sprintf("Mtx%02d", n))
	}
	writeMain(&w, scene)
	for n := 1; n <= maxDCAs; n++ {
		writeDCA(&w, scene.DCAByNumber(n), n)
	}
	for n := 1; n <= maxEffects; n++ {
		writeEffect(&w, scene.EffectBySlot(n), n)
	}

	return w.String()
}

// writePreamble emits the global link and clock defaults that precede the
// slot blocks.
func writePreamble(w *export.SceneWriter) {
	off := func(n int) []export.Tok {
		toks := make([]export.Tok, n)
		for i := range toks {
			toks[i] = export.OnOff(false)
		}
		return toks
	}
	w.Line("/config/chlink", off(16)...)
	w.Line("/config/auxlink", off(4)...)
	w.Line("/config/buslink", off(8)...)
	w.Line("/config/mtxlink", off(3)...)
	w.Line("/config/solo/level", export.DB(-10))
	w.Line("/config/clock", export.Sym("48K"), export.Sym("INT"))
}

// sourceIndex derives the preamp source number for a channel. The
// canonical patch point is already in network space (stagebox offsets are
// applied when the session is populated), so the number passes through;
// unpatched channels default to their own slot.
func sourceIndex(ch *console.Channel, slot int) int {
	if ch == nil || ch.Input == nil || ch.Input.Source.Type == console.PatchNone {
		return slot
	}
	if ch.Input.Source.Number > 0 {
		return ch.Input.Source.Number
	}
	return slot
}

func writeChannel(w *export.SceneWriter, session *console.ConsoleSession, ch *console.Channel, slot int) {
	addr := "/ch/" + encode.PadNumber(slot)

	name := ""
	icon := "1"
	color := "WH"
	if ch != nil {
		name = encode.Truncate(ch.Name, encode.X32NameLimit)
		icon = encode.X32Icon(ch.Icon, ch.Name)
		color = encode.X32Color(ch.Color)
	}
	w.Line(addr+"/config", export.QStr(name), export.Sym(icon), export.Sym(color), export.Int(sourceIndex(ch, slot)))

	gain := 0.0
	phantom, invert, pad := false, false, false
	if ch != nil && ch.Input != nil {
		gain = ch.Input.GainDB
		phantom = ch.Input.Phantom == console.PhantomOn
		invert = ch.Input.PhaseInvert
		pad = ch.Input.Pad
	}
	w.Line(addr+"/preamp", export.Gain(gain), export.OnOff(phantom), export.OnOff(invert), export.OnOff(pad))

	writeGate(w, addr, dynamicsOf(ch))
	writeComp(w, addr, dynamicsOf(ch))
	w.Line(addr+"/insert", export.OnOff(false), export.Sym("POST"), export.OnOff(false))
	writeEQ(w, addr, eqOf(ch))
	writeChannelMix(w, ch, addr)

	var mask uint32
	if ch != nil {
		mask = console.DCABitmask(ch.DCAAssignments, maxDCAs)
	}
	w.Line(addr+"/grp", export.Hex(mask), export.Hex(0))
}

func dynamicsOf(ch *console.Channel) *console.DynamicsConfig {
	if ch == nil {
		return nil
	}
	return ch.Dynamics
}

func eqOf(ch *console.Channel) *console.EQConfig {
	if ch == nil {
		return nil
	}
	return ch.EQ
}

func writeGate(w *export.SceneWriter, addr string, dyn *console.DynamicsConfig) {
	g := &console.GateConfig{ThresholdDB: -80, RangeDB: 60, AttackMS: 5, HoldMS: 50, ReleaseMS: 250}
	if dyn != nil && dyn.Gate != nil {
		g = dyn.Gate
	}
	w.Line(addr+"/gate",
		export.OnOff(dyn != nil && dyn.Gate != nil && g.Enabled),
		export.Sym("EXP4"),
		export.Gain(g.ThresholdDB),
		export.Num(g.RangeDB),
		export.Num(g.AttackMS),
		export.Num(g.HoldMS),
		export.Num(g.ReleaseMS),
	)
}

// writeComp encodes the compressor block. A ratio at or above the limiter
// threshold emits the LIM token instead of a numeric ratio; a hard knee
// selects the linear curve token, everything else the logarithmic one.
func writeComp(w *export.SceneWriter, addr string, dyn *console.DynamicsConfig) {
	c := &console.CompressorConfig{ThresholdDB: -20, Ratio: 3, AttackMS: 20, ReleaseMS: 150, Knee: "medium"}
	enabled := false
	if dyn != nil && dyn.Compressor != nil {
		c = dyn.Compressor
		enabled = c.Enabled
	}

	ratio := export.Num(c.Ratio)
	if c.Ratio >= limiterRatio {
		ratio = export.Sym("LIM")
	}
	curve := export.Sym("LOG")
	if strings.EqualFold(strings.TrimSpace(c.Knee), "hard") {
		curve = export.Sym("LIN")
	}

	w.Line(addr+"/dyn",
		export.OnOff(enabled),
		export.Sym("COMP"),
		export.Gain(c.ThresholdDB),
		ratio,
		curve,
		export.Num(c.AttackMS),
		export.Num(c.ReleaseMS),
		export.Gain(c.MakeupDB),
	)
}

func writeEQ(w *export.SceneWriter, addr string, eq *console.EQConfig) {
	w.Line(addr+"/eq", export.OnOff(eq != nil && eq.Enabled))

	bands := make([]console.EQBand, 0, 4)
	if eq != nil {
		if eq.HighPass != nil && eq.HighPass.Enabled {
			bands = append(bands, console.EQBand{Type: "lowcut", FrequencyHz: eq.HighPass.FrequencyHz})
		}
		for _, b := range eq.Bands {
			if len(bands) == 4 {
				break
			}
			bands = append(bands, b)
		}
	}
	for i := len(bands); i < 4; i++ {
		bands = append(bands, console.EQBand{Type: console.BandPeak, FrequencyHz: defaultBandFreqs[i], Q: 2})
	}

	for i, b := range bands[:4] {
		q := b.Q
		if q == 0 {
			q = 2
		}
		w.Line(fmt.Sprintf("%s/eq/%d", addr, i+1),
			export.Sym(bandToken(b.Type)),
			export.Num(b.FrequencyHz),
			export.Gain(b.GainDB),
			export.Num(q),
		)
	}
}

func bandToken(t console.EQBandType) string {
	switch t {
	case console.BandLowShelf:
		return "LShv"
	case console.BandHighShelf:
		return "HShv"
	case console.BandNotch:
		return "VEQ"
	case "lowcut":
		return "LCut"
	default:
		return "PEQ"
	}
}

func panToken(pan float64) export.Tok {
	return export.Sym(fmt.Sprintf("%+d", int(math.Round(pan))))
}

func writeChannelMix(w *export.SceneWriter, ch *console.Channel, addr string) {
	fader := console.FaderFloorDB
	muted := false
	toMain := false
	pan := 0.0
	if ch != nil {
		fader = ch.FaderDB
		muted = ch.Mute
		toMain = ch.AssignedToMain
		pan = ch.Pan
	}
	w.Line(addr+"/mix", export.OnOff(!muted), export.DB(fader), export.OnOff(toMain), panToken(pan))

	sends := map[int]console.BusSend{}
	if ch != nil {
		for _, s := range ch.BusSends {
			if s.Bus >= 1 && s.Bus <= maxBuses {
				sends[s.Bus] = s
			}
		}
	}
	for n := 1; n <= maxBuses; n++ {
		lineAddr := fmt.Sprintf("%s/mix/%s", addr, encode.PadNumber(n))
		if s, ok := sends[n]; ok {
			tap := export.Sym("POST")
			if s.PreFader {
				tap = export.Sym("PRE")
			}
			w.Line(lineAddr, export.OnOff(true), export.DB(s.LevelDB), export.Sym("+0"), tap)
		} else {
			w.Line(lineAddr, export.OnOff(false), export.DB(console.FaderFloorDB), export.Sym("+0"), export.Sym("POST"))
		}
	}
}

// writeAuxIn emits the fixed default record for an aux-in slot. The
// canonical model has no aux-in collection, so these stay at factory
// defaults; the slot block is still written in full.
func writeAuxIn(w *export.SceneWriter, n int) {
	addr := "/auxin/" + encode.PadNumber(n)
	w.Line(addr+"/config", export.QStr(""), export.Sym("1"), export.Sym("WH"), export.Int(32+n))
	w.Line(addr+"/preamp", export.Gain(0), export.OnOff(false))
	writeEQ(w, addr, nil)
	w.Line(addr+"/mix", export.OnOff(true), export.DB(console.FaderFloorDB), export.OnOff(true), panToken(0))
	w.Line(addr+"/grp", export.Hex(0), export.Hex(0))
}

// busOfType finds the populated bus with the given number among the listed
// types, or nil for a default record.
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

func writeBus(w *export.SceneWriter, b *console.Bus, addr, defaultName string) {
	name := defaultName
	icon := "1"
	color := "WH"
	fader := console.FaderFloorDB
	muted := false
	var dyn *console.DynamicsConfig
	var eq *console.EQConfig
	if b != nil {
		name = encode.Truncate(b.Name, encode.X32NameLimit)
		icon = encode.X32Icon(string(b.Purpose), b.Name)
		color = encode.X32Color(b.Color)
		fader = b.FaderDB
		muted = b.Mute
		dyn = b.Dynamics
		eq = b.EQ
	}
	w.Line(addr+"/config", export.QStr(name), export.Sym(icon), export.Sym(color))
	writeComp(w, addr, dyn)
	writeEQ(w, addr, eq)
	w.Line(addr+"/mix", export.OnOff(!muted), export.DB(fader))
}

func writeMain(w *export.SceneWriter, scene *console.Scene) {
	var main *console.Bus
	for i := range scene.Buses {
		if scene.Buses[i].Type == console.BusMain {
			main = &scene.Buses[i]
			break
		}
	}

	name := "Main"
	color := "WH"
	fader := 0.0
	muted := false
	var dyn *console.DynamicsConfig
	var eq *console.EQConfig
	if main != nil {
		name = encode.Truncate(main.Name, encode.X32NameLimit)
		color = encode.X32Color(main.Color)
		fader = main.FaderDB
		muted = main.Mute
		dyn = main.Dynamics
		eq = main.EQ
	}
	w.Line("/main/st/config", export.QStr(name), export.Sym("1"), export.Sym(color))
	writeComp(w, "/main/st", dyn)
	writeEQ(w, "/main/st", eq)
	w.Line("/main/st/mix", export.OnOff(!muted), export.DB(fader))

	w.Line("/main/m/config", export.QStr("M/C"), export.Sym("1"), export.Sym("WH"))
	writeComp(w, "/main/m", nil)
	writeEQ(w, "/main/m", nil)
	w.Line("/main/m/mix", export.OnOff(true), export.DB(console.FaderFloorDB))
}

func writeDCA(w *export.SceneWriter, d *console.DCA, n int) {
	addr := fmt.Sprintf("/dca/%d", n)
	name := fmt.Sprintf("DCA%d", n)
	color := "WH"
	fader := console.FaderFloorDB
	muted := false
	if d != nil {
		name = encode.Truncate(d.Name, encode.X32NameLimit)
		color = encode.X32Color(d.Color)
		fader = d.FaderDB
		muted = d.Mute
	}
	w.Line(addr, export.OnOff(!muted), export.DB(fader))
	w.Line(addr+"/config", export.QStr(name), export.Sym("1"), export.Sym(color))
}

func writeEffect(w *export.SceneWriter, fx *console.EffectProcessor, slot int) {
	addr := fmt.Sprintf("/fx/%d", slot)
	if fx == nil {
		w.Line(addr, export.Sym("HALL"), export.Num(1.6), export.Num(20), export.Num(8000), export.DB(0))
		return
	}
	switch fx.Category {
	case console.EffectReverb:
		p := fx.Reverb
		if p == nil {
			p = &console.ReverbParams{Algorithm: "hall", DecaySeconds: 1.6, PreDelayMS: 20, HighCutHz: 8000}
		}
		w.Line(addr, export.Sym(reverbToken(p.Algorithm)), export.Num(p.DecaySeconds), export.Num(p.PreDelayMS), export.Num(highCutOrDefault(p.HighCutHz)), export.DB(p.ReturnLevelDB))
	case console.EffectDelay:
		p := fx.Delay
		if p == nil {
			p = &console.DelayParams{Mode: "stereo", TimeMS: 250}
		}
		w.Line(addr, export.Sym(delayToken(p.Mode)), export.Num(p.TimeMS), export.Num(p.FeedbackPct), export.Num(highCutOrDefault(p.HighCutHz)), export.DB(p.ReturnLevelDB))
	case console.EffectModulation:
		p := fx.Modulation
		if p == nil {
			p = &console.ModulationParams{Mode: "chorus", RateHz: 1}
		}
		w.Line(addr, export.Sym(modulationToken(p.Mode)), export.Num(p.RateHz), export.Num(p.DepthPct), export.Num(p.MixPct))
	case console.EffectPitch:
		p := fx.Pitch
		if p == nil {
			p = &console.PitchParams{}
		}
		w.Line(addr, export.Sym("PITCH"), export.Int(p.Semitones), export.Int(p.DetuneCents), export.Num(p.MixPct))
	case console.EffectDistortion:
		p := fx.Distortion
		if p == nil {
			p = &console.DistortionParams{DrivePct: 30}
		}
		w.Line(addr, export.Sym("DIST"), export.Num(p.DrivePct), export.Num(p.TonePct), export.Num(p.MixPct))
	default:
		w.Line(addr, export.Sym("HALL"), export.Num(1.6), export.Num(20), export.Num(8000), export.DB(0))
	}
}

func highCutOrDefault(v float64) float64 {
	if v <= 0 {
		return 8000
	}
	return v
}

func reverbToken(algorithm string) string {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "plate":
		return "PLATE"
	case "room":
		return "ROOM"
	case "spring":
		return "SPRING"
	default:
		return "HALL"
	}
}

func delayToken(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "ping-pong", "pingpong":
		return "PPDLY"
	case "tape":
		return "TAPDLY"
	default:
		return "STDLY"
	}
}

func modulationToken(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "flanger":
		return "FLNG"
	case "phaser":
		return "PHAS"
	default:
		return "CRS"
	}
}
