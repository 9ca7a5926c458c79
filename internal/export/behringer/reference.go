package behringer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"stagehand/internal/console"
	"stagehand/internal/encode"
)

// renderReference builds the README shipped next to the scene file. The
// scene format carries everything machine-readable; these tables exist so
// an engineer can spot-check the desk against the plan without scrolling
// raw scene lines.
func renderReference(a *Adapter, session *console.ConsoleSession) string {
	var b strings.Builder
	scene := &session.CurrentScene

	fmt.Fprintf(&b, "# %s scene reference\n\n", a.model)
	if session.Gig.Name != "" {
		fmt.Fprintf(&b, "Gig: %s", session.Gig.Name)
		if session.Gig.Venue != "" {
			fmt.Fprintf(&b, " at %s", session.Gig.Venue)
		}
		b.WriteString("\n\n")
	}

	b.WriteString("## Channels\n\n")
	if len(scene.Channels) == 0 {
		b.WriteString("No channels configured; the scene contains factory defaults only.\n\n")
	} else {
		b.WriteString(channelTable(scene))
		b.WriteString("\n\n")
	}

	if len(scene.DCAs) > 0 {
		b.WriteString("## DCA groups\n\n")
		b.WriteString(dcaTable(scene))
		b.WriteString("\n\n")
	}

	if len(session.Console.Stageboxes) > 0 {
		b.WriteString("## Stageboxes\n\n")
		b.WriteString(stageboxTable(session.Console.Stageboxes))
		b.WriteString("\n\n")
	}

	if len(session.AdvisoryNotes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, note := range session.AdvisoryNotes {
			if note.Channel > 0 {
				fmt.Fprintf(&b, "- [ch %d] %s: %s\n", note.Channel, note.Subject, note.Body)
			} else {
				fmt.Fprintf(&b, "- %s: %s\n", note.Subject, note.Body)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func newReferenceTable(header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(header)
	return tw
}

func channelTable(scene *console.Scene) string {
	channels := make([]console.Channel, len(scene.Channels))
	copy(channels, scene.Channels)
	sort.Slice(channels, func(i, j int) bool { return channels[i].Number < channels[j].Number })

	tw := newReferenceTable(table.Row{"Ch", "Name", "Strip", "Color", "Fader", "Main", "DCAs"})
	for _, ch := range channels {
		dcas := "-"
		if len(ch.DCAAssignments) > 0 {
			parts := make([]string, 0, len(ch.DCAAssignments))
			for _, n := range ch.DCAAssignments {
				parts = append(parts, fmt.Sprintf("%d", n))
			}
			dcas = strings.Join(parts, ",")
		}
		main := "off"
		if ch.AssignedToMain {
			main = "on"
		}
		tw.AppendRow(table.Row{
			encode.PadNumber(ch.Number),
			ch.Name,
			encode.Truncate(ch.Name, encode.X32NameLimit),
			encode.X32Color(ch.Color),
			encode.FormatDB(ch.FaderDB),
			main,
			dcas,
		})
	}
	return tw.Render()
}

func dcaTable(scene *console.Scene) string {
	dcas := make([]console.DCA, len(scene.DCAs))
	copy(dcas, scene.DCAs)
	sort.Slice(dcas, func(i, j int) bool { return dcas[i].Number < dcas[j].Number })

	tw := newReferenceTable(table.Row{"DCA", "Name", "Fader", "Members"})
	for _, d := range dcas {
		members := "-"
		if len(d.ChannelNumbers) > 0 {
			parts := make([]string, 0, len(d.ChannelNumbers))
			for _, n := range d.ChannelNumbers {
				parts = append(parts, fmt.Sprintf("%d", n))
			}
			members = strings.Join(parts, ",")
		}
		tw.AppendRow(table.Row{d.Number, d.Name, encode.FormatDB(d.FaderDB), members})
	}
	return tw.Render()
}

func stageboxTable(boxes []console.Stagebox) string {
	sorted := make([]console.Stagebox, len(boxes))
	copy(sorted, boxes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Slot < sorted[j].Slot })

	tw := newReferenceTable(table.Row{"Slot", "Model", "Inputs", "Outputs", "Network start"})
	for _, sb := range sorted {
		tw.AppendRow(table.Row{sb.Slot, string(sb.Model), sb.Inputs, sb.Outputs, sb.DanteStartChannel()})
	}
	return tw.Render()
}
