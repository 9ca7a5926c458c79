package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stagehand/internal/console"
	"stagehand/internal/encode"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:         "show <session-file>",
		Short:       "Summarize a session file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := console.Load(args[0])
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeJSON(cmd.OutOrStdout(), session)
			}
			printSession(cmd, session)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the full session as JSON")
	return cmd
}

func printSession(cmd *cobra.Command, session *console.ConsoleSession) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Gig:     %s\n", session.Gig.Name)
	if session.Gig.Venue != "" {
		fmt.Fprintf(out, "Venue:   %s\n", session.Gig.Venue)
	}
	if !session.Gig.Date.IsZero() {
		fmt.Fprintf(out, "Date:    %s\n", session.Gig.Date.Format("2006-01-02"))
	}
	if session.Gig.Genre != "" {
		fmt.Fprintf(out, "Genre:   %s\n", session.Gig.Genre)
	}
	fmt.Fprintf(out, "Console: %s %s\n\n", session.Console.Manufacturer, session.Console.Model)

	if len(session.CurrentScene.Channels) > 0 {
		rows := make([][]string, 0, len(session.CurrentScene.Channels))
		for _, ch := range session.CurrentScene.Channels {
			rows = append(rows, []string{
				strconv.Itoa(ch.Number),
				ch.Name,
				channelPatch(ch),
				encode.FormatDB(ch.FaderDB),
				yesNo(ch.AssignedToMain),
				intList(ch.DCAAssignments),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Ch", "Name", "Patch", "Fader", "Main", "DCAs"},
			rows, 0, 3))
	}

	if len(session.CurrentScene.Buses) > 0 {
		rows := make([][]string, 0, len(session.CurrentScene.Buses))
		for _, bus := range session.CurrentScene.Buses {
			rows = append(rows, []string{
				strconv.Itoa(bus.Number),
				bus.Name,
				string(bus.Type),
				string(bus.Purpose),
				encode.FormatDB(bus.FaderDB),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Bus", "Name", "Type", "Purpose", "Fader"},
			rows, 0, 4))
	}

	if len(session.CurrentScene.DCAs) > 0 {
		rows := make([][]string, 0, len(session.CurrentScene.DCAs))
		for _, dca := range session.CurrentScene.DCAs {
			rows = append(rows, []string{
				strconv.Itoa(dca.Number),
				dca.Name,
				intList(dca.ChannelNumbers),
			})
		}
		fmt.Fprintln(out, renderTable([]string{"DCA", "Name", "Channels"}, rows, 0))
	}

	if len(session.Console.Stageboxes) > 0 {
		rows := make([][]string, 0, len(session.Console.Stageboxes))
		for _, box := range session.Console.Stageboxes {
			rows = append(rows, []string{
				string(box.Model),
				box.Name,
				strconv.Itoa(box.Slot),
				fmt.Sprintf("%d-%d", box.DanteStartChannel(), box.DanteStartChannel()+box.Inputs-1),
			})
		}
		fmt.Fprintln(out, renderTable([]string{"Stagebox", "Name", "Slot", "Dante Channels"}, rows))
	}

	if len(session.AdvisoryNotes) > 0 {
		fmt.Fprintln(out, "Notes:")
		for _, note := range session.AdvisoryNotes {
			if note.Channel > 0 {
				fmt.Fprintf(out, "  - [ch %d] %s: %s\n", note.Channel, note.Subject, note.Body)
			} else {
				fmt.Fprintf(out, "  - %s: %s\n", note.Subject, note.Body)
			}
		}
	}
}

func channelPatch(ch console.Channel) string {
	if ch.Input == nil || ch.Input.Source.Type == "" || ch.Input.Source.Type == console.PatchNone {
		return "-"
	}
	return fmt.Sprintf("%s %d", strings.ToUpper(string(ch.Input.Source.Type)), ch.Input.Source.Number)
}

func intList(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
