package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stagehand/internal/deploy"
	"stagehand/internal/export"
)

func newDeployCommand(ctx *commandContext) *cobra.Command {
	var (
		toFlag    string
		watchFlag bool
	)

	cmd := &cobra.Command{
		Use:   "deploy <export-dir>",
		Short: "Copy an export package onto a USB stick",
		Long: "Copies every file from a previous `stagehand export` run onto\n" +
			"removable media. With --watch the command waits for a stick to be\n" +
			"inserted and mounted first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			files, err := collectExportFiles(args[0])
			if err != nil {
				return err
			}

			logger := ctx.ensureLogger()
			deployer := deploy.New(logger, cfg.Deploy.RequireFAT32)

			if watchFlag {
				timeout := time.Duration(cfg.Deploy.WatchTimeout) * time.Second
				fmt.Fprintf(cmd.OutOrStdout(), "Waiting up to %s for a USB stick...\n", timeout)
				if _, err := deploy.WaitForDevice(cmd.Context(), logger, timeout); err != nil {
					return err
				}
				// Give the desktop automounter a moment before scanning.
				time.Sleep(2 * time.Second)
			}

			target := strings.TrimSpace(toFlag)
			if target == "" {
				target, err = deployer.FindMount(cfg.Deploy.MountDir)
				if err != nil {
					return err
				}
			}

			if err := deployer.Deploy(cmd.Context(), files, target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deployed %d files to %s\n", len(files), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&toFlag, "to", "", "Target mount point (skips mount discovery)")
	cmd.Flags().BoolVar(&watchFlag, "watch", false, "Wait for a USB stick to be inserted")
	return cmd
}

// collectExportFiles reads a previous export directory back into file
// records, in name order.
func collectExportFiles(dir string) ([]export.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read export directory: %w", err)
	}

	var files []export.File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		files = append(files, export.File{
			Filename:  entry.Name(),
			Extension: filepath.Ext(entry.Name()),
			Content:   string(data),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Filename < files[j].Filename })
	return files, nil
}
