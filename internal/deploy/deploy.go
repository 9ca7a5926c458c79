package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"stagehand/internal/export"
	"stagehand/internal/logging"
	"stagehand/internal/services"
)

// Deployer writes export files onto a mounted target directory.
type Deployer struct {
	logger       *slog.Logger
	requireFAT32 bool
}

// New creates a deployer. When requireFAT32 is set, Deploy refuses
// targets that are not FAT-formatted.
func New(logger *slog.Logger, requireFAT32 bool) *Deployer {
	return &Deployer{
		logger:       logging.NewComponentLogger(logger, "deploy"),
		requireFAT32: requireFAT32,
	}
}

// Deploy copies every file into dir. Files are written through a
// temporary name and renamed into place so a yanked stick never holds a
// half-written scene file under its final name.
func (d *Deployer) Deploy(ctx context.Context, files []export.File, dir string) error {
	if len(files) == 0 {
		return services.Wrap(services.ErrValidation, "deploy", "copy", "no files to deploy", nil)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}
	if !info.IsDir() {
		return services.Wrap(services.ErrValidation, "deploy", "copy", fmt.Sprintf("%s is not a directory", dir), nil)
	}

	if d.requireFAT32 {
		if err := VerifyFAT(dir); err != nil {
			return err
		}
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeFile(dir, file); err != nil {
			return err
		}
		d.logger.Info("deployed file",
			logging.String("file", file.Filename),
			logging.String("dir", dir),
		)
	}

	d.logger.Info("deploy complete",
		logging.Int(logging.FieldFiles, len(files)),
		logging.String("dir", dir),
	)
	return nil
}

func writeFile(dir string, file export.File) error {
	name := strings.TrimSpace(file.Filename)
	if name == "" || name != filepath.Base(name) {
		return services.Wrap(services.ErrValidation, "deploy", "copy", fmt.Sprintf("unsafe filename %q", file.Filename), nil)
	}

	target := filepath.Join(dir, name)
	tmp := target + ".part"
	if err := os.WriteFile(tmp, []byte(file.Content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

// VerifyFAT checks that the filesystem backing dir is FAT formatted.
func VerifyFAT(dir string) error {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return fmt.Errorf("statfs %s: %w", dir, err)
	}
	if stat.Type != unix.MSDOS_SUPER_MAGIC {
		return services.Wrap(services.ErrValidation, "deploy", "verify",
			fmt.Sprintf("%s is not FAT32 formatted; the desk will not read it", dir), nil)
	}
	return nil
}

// FindMount scans mountRoot for a mounted removable volume and returns
// the first directory that passes the FAT check, or the first directory
// at all when the check is disabled.
func (d *Deployer) FindMount(mountRoot string) (string, error) {
	entries, err := os.ReadDir(mountRoot)
	if err != nil {
		return "", fmt.Errorf("read mount root: %w", err)
	}
	var candidates []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(mountRoot, entry.Name())
		// Desktop environments mount under /media/<user>/<label>.
		subs, err := os.ReadDir(path)
		if err == nil && len(subs) > 0 && allDirs(subs) {
			for _, sub := range subs {
				candidates = append(candidates, filepath.Join(path, sub.Name()))
			}
			continue
		}
		candidates = append(candidates, path)
	}

	for _, candidate := range candidates {
		if d.requireFAT32 {
			if err := VerifyFAT(candidate); err != nil {
				continue
			}
		}
		return candidate, nil
	}
	return "", services.Wrap(services.ErrNotFound, "deploy", "find mount",
		fmt.Sprintf("no suitable volume under %s", mountRoot), nil)
}

func allDirs(entries []os.DirEntry) bool {
	for _, entry := range entries {
		if !entry.IsDir() {
			return false
		}
	}
	return true
}
