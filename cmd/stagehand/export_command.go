package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"stagehand/internal/config"
	"stagehand/internal/console"
	"stagehand/internal/export"
	"stagehand/internal/library"
	"stagehand/internal/logging"
)

type exportOutput struct {
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	OutputDir    string   `json:"outputDir"`
	Files        []string `json:"files"`
	Warnings     []string `json:"warnings,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		targetFlag string
		outputFlag string
		saveFlag   bool
		jsonFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "export <session-file>",
		Short: "Render a session into desk-ready files",
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

			logger := logging.NewComponentLogger(ctx.ensureLogger(), "export")
			result := adapter.Export(session)
			if !result.Success {
				for _, msg := range result.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), renderStatusLine(statusError, msg, shouldColorize(cmd.ErrOrStderr())))
				}
				return fmt.Errorf("export to %s %s failed", adapter.Manufacturer(), adapter.Model())
			}

			outputDir, err := ctx.exportOutputDir(outputFlag, session, adapter)
			if err != nil {
				return err
			}
			if err := writeExportFiles(outputDir, result.Files); err != nil {
				return err
			}
			logger.Info("export complete",
				logging.String(logging.FieldTarget, adapter.Manufacturer()+" "+adapter.Model()),
				logging.String(logging.FieldSession, args[0]),
				logging.Int(logging.FieldFiles, len(result.Files)),
			)

			if saveFlag {
				if err := ctx.withLibrary(func(store *library.Store) error {
					id, err := store.Save(cmd.Context(), session, "")
					if err != nil {
						return err
					}
					return store.RecordExport(cmd.Context(), library.ExportRecord{
						SessionID:    id,
						Manufacturer: adapter.Manufacturer(),
						Model:        adapter.Model(),
						OutputDir:    outputDir,
						FileCount:    len(result.Files),
						WarningCount: len(result.Warnings),
					})
				}); err != nil {
					return fmt.Errorf("save to library: %w", err)
				}
			}

			if jsonFlag {
				out := exportOutput{
					Manufacturer: adapter.Manufacturer(),
					Model:        adapter.Model(),
					OutputDir:    outputDir,
					Warnings:     result.Warnings,
					Instructions: result.Instructions,
				}
				for _, f := range result.Files {
					out.Files = append(out.Files, f.Filename)
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			printExportResult(cmd, adapter, result, outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetFlag, "target", "t", "", `Target desk, e.g. "Behringer X32" (overrides the session)`)
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory (defaults to the configured export dir)")
	cmd.Flags().BoolVar(&saveFlag, "save", false, "Store the session and export run in the library")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable output")
	return cmd
}

func (c *commandContext) exportOutputDir(flag string, session *console.ConsoleSession, adapter export.Adapter) (string, error) {
	if strings.TrimSpace(flag) != "" {
		return config.ExpandPath(flag)
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.Paths.OutputDir, slugify(session.Gig.Name), slugify(adapter.Model())), nil
}

func writeExportFiles(dir string, files []export.File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, file := range files {
		target := filepath.Join(dir, file.Filename)
		if err := os.WriteFile(target, []byte(file.Content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", file.Filename, err)
		}
	}
	return nil
}

func printExportResult(cmd *cobra.Command, adapter export.Adapter, result export.Result, outputDir string) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintf(out, "Exported for %s %s\n\n", adapter.Manufacturer(), adapter.Model())

	rows := make([][]string, 0, len(result.Files))
	for _, f := range result.Files {
		rows = append(rows, []string{f.Filename, f.Description})
	}
	fmt.Fprintln(out, renderTable([]string{"File", "Description"}, rows))

	for _, warning := range result.Warnings {
		fmt.Fprintln(out, renderStatusLine(statusWarn, warning, colorize))
	}

	if len(result.Instructions) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next steps:")
		for _, step := range result.Instructions {
			fmt.Fprintf(out, "  %s\n", step)
		}
	}

	fmt.Fprintf(out, "\nFiles written to %s\n", outputDir)
}

// slugify lowers a name into a safe directory component.
func slugify(value string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}
