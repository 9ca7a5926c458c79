package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stagehand/internal/console"
	"stagehand/internal/library"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage stored sessions",
	}

	libraryCmd.AddCommand(newLibraryListCommand(ctx))
	libraryCmd.AddCommand(newLibrarySaveCommand(ctx))
	libraryCmd.AddCommand(newLibraryShowCommand(ctx))
	libraryCmd.AddCommand(newLibraryDeleteCommand(ctx))
	libraryCmd.AddCommand(newLibraryHistoryCommand(ctx))

	return libraryCmd
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(store *library.Store) error {
				records, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if jsonFlag {
					return writeJSON(cmd.OutOrStdout(), records)
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Library is empty")
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						record.ID,
						record.GigName,
						record.Venue,
						record.Manufacturer + " " + record.Model,
						record.UpdatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Gig", "Venue", "Console", "Updated"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable output")
	return cmd
}

func newLibrarySaveCommand(ctx *commandContext) *cobra.Command {
	var idFlag string

	cmd := &cobra.Command{
		Use:   "save <session-file>",
		Short: "Store a session file in the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := console.Load(args[0])
			if err != nil {
				return err
			}
			return ctx.withLibrary(func(store *library.Store) error {
				id, err := store.Save(cmd.Context(), session, idFlag)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %q as %s\n", session.Gig.Name, id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&idFlag, "id", "", "Update an existing library entry instead of creating one")
	return cmd
}

func newLibraryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Summarize a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(store *library.Store) error {
				session, err := store.Session(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printSession(cmd, session)
				return nil
			})
		},
	}
}

func newLibraryDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a stored session and its export history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(store *library.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newLibraryHistoryCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show the export history of a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(store *library.Store) error {
				history, err := store.ExportHistory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonFlag {
					return writeJSON(cmd.OutOrStdout(), history)
				}
				if len(history) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No exports recorded")
					return nil
				}
				rows := make([][]string, 0, len(history))
				for _, record := range history {
					rows = append(rows, []string{
						record.ExportedAt.Local().Format("2006-01-02 15:04"),
						record.Manufacturer + " " + record.Model,
						record.OutputDir,
						strconv.Itoa(record.FileCount),
						strconv.Itoa(record.WarningCount),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"When", "Target", "Output", "Files", "Warnings"}, rows, 3, 4))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable output")
	return cmd
}
