package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type formatOutput struct {
	Manufacturer          string   `json:"manufacturer"`
	Model                 string   `json:"model"`
	Extensions            []string `json:"extensions"`
	Scenes                bool     `json:"scenes"`
	EQ                    bool     `json:"eq"`
	Dynamics              bool     `json:"dynamics"`
	Routing               bool     `json:"routing"`
	Effects               bool     `json:"effects"`
	RequiresOfflineEditor bool     `json:"requiresOfflineEditor"`
}

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:         "formats",
		Short:       "List supported desks and what each format can carry",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := ctx.ensureRegistry()
			if err != nil {
				return err
			}

			entries := registry.Entries()
			if jsonFlag {
				out := make([]formatOutput, 0, len(entries))
				for _, entry := range entries {
					c := entry.Factory().Capability()
					out = append(out, formatOutput{
						Manufacturer:          entry.Manufacturer,
						Model:                 entry.Model,
						Extensions:            c.Extensions,
						Scenes:                c.Scenes,
						EQ:                    c.EQ,
						Dynamics:              c.Dynamics,
						Routing:               c.Routing,
						Effects:               c.Effects,
						RequiresOfflineEditor: c.RequiresOfflineEditor,
					})
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				c := entry.Factory().Capability()
				rows = append(rows, []string{
					entry.Manufacturer,
					entry.Model,
					strings.Join(c.Extensions, ", "),
					yesNo(c.Scenes),
					yesNo(c.EQ),
					yesNo(c.Dynamics),
					yesNo(c.Routing),
					yesNo(c.Effects),
					yesNo(c.RequiresOfflineEditor),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Manufacturer", "Model", "Files", "Scenes", "EQ", "Dyn", "Routing", "FX", "Editor"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable output")
	return cmd
}
