package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"stagehand/internal/config"
	"stagehand/internal/console"
	"stagehand/internal/export"
	"stagehand/internal/export/catalog"
	"stagehand/internal/library"
	"stagehand/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	registryOnce sync.Once
	registry     *export.Registry
	registryErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) ensureRegistry() (*export.Registry, error) {
	c.registryOnce.Do(func() {
		c.registry, c.registryErr = catalog.New()
	})
	return c.registry, c.registryErr
}

// resolveAdapter picks the adapter for a session. An explicit --target
// flag wins, then the desk named in the session, then the configured
// default.
func (c *commandContext) resolveAdapter(session *console.ConsoleSession, targetFlag string) (export.Adapter, error) {
	registry, err := c.ensureRegistry()
	if err != nil {
		return nil, err
	}

	manufacturer, model := "", ""
	switch {
	case strings.TrimSpace(targetFlag) != "":
		manufacturer, model, err = splitTarget(targetFlag)
		if err != nil {
			return nil, err
		}
	case session != nil && session.Console.Manufacturer != "" && session.Console.Model != "":
		manufacturer, model = session.Console.Manufacturer, session.Console.Model
	default:
		cfg, err := c.ensureConfig()
		if err != nil {
			return nil, err
		}
		manufacturer, model = cfg.Console.Manufacturer, cfg.Console.Model
	}

	factory, ok := registry.Lookup(manufacturer, model)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s (run `stagehand formats` for the supported list)",
			export.ErrUnsupportedModel, manufacturer, model)
	}
	adapter := factory()

	// Retarget the session so adapters see the desk actually chosen. A
	// canonical session can be exported to any desk; the name it was
	// authored against only serves as the default.
	if session != nil {
		session.Console.Manufacturer = adapter.Manufacturer()
		session.Console.Model = adapter.Model()
	}
	return adapter, nil
}

// withLibrary opens the session library, runs fn, and closes it again.
func (c *commandContext) withLibrary(fn func(*library.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := library.Open(cfg.Paths.LibraryDB)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// splitTarget parses "Manufacturer Model" with the model allowed to
// contain spaces ("Behringer X32 Rack").
func splitTarget(target string) (string, string, error) {
	fields := strings.Fields(target)
	if len(fields) < 2 {
		return "", "", fmt.Errorf("target %q must be \"<manufacturer> <model>\"", target)
	}
	return fields[0], strings.Join(fields[1:], " "), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
