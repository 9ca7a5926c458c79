package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stagehand/internal/console"
	"stagehand/internal/export"
)

type validateOutput struct {
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	Valid        bool     `json:"valid"`
	Errors       []string `json:"errors,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var (
		targetFlag string
		jsonFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "validate <session-file>",
		Short: "Check a session against a target desk without exporting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := console.Load(args[0])
			if err != nil {
				return err
			}

			adapter, err := ctx.resolveAdapter(session, targetFlag)
			if err != nil {
				return err
			}

			validation := adapter.Validate(session)

			if jsonFlag {
				return writeJSON(cmd.OutOrStdout(), validateOutput{
					Manufacturer: adapter.Manufacturer(),
					Model:        adapter.Model(),
					Valid:        validation.Valid,
					Errors:       validation.Errors,
					Warnings:     validation.Warnings,
					Suggestions:  validation.Suggestions,
				})
			}

			printValidation(cmd, adapter, validation)
			if !validation.Valid {
				return fmt.Errorf("session is not compatible with %s %s", adapter.Manufacturer(), adapter.Model())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetFlag, "target", "t", "", `Target desk, e.g. "Yamaha QL1" (overrides the session)`)
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable output")
	return cmd
}

func printValidation(cmd *cobra.Command, adapter export.Adapter, v export.Validation) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintf(out, "Validation against %s %s\n", adapter.Manufacturer(), adapter.Model())

	for _, msg := range v.Errors {
		fmt.Fprintln(out, renderStatusLine(statusError, msg, colorize))
	}
	for _, msg := range v.Warnings {
		fmt.Fprintln(out, renderStatusLine(statusWarn, msg, colorize))
	}
	for _, msg := range v.Suggestions {
		fmt.Fprintln(out, renderStatusLine(statusInfo, msg, colorize))
	}
	if v.Valid && len(v.Warnings) == 0 {
		fmt.Fprintln(out, renderStatusLine(statusOK, "session is fully compatible", colorize))
	} else if v.Valid {
		fmt.Fprintln(out, renderStatusLine(statusOK, "session is compatible with warnings", colorize))
	}
}
