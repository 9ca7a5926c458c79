package config

import "strings"

// normalize expands path fields and canonicalizes string enums so the rest
// of the program never has to trim or case-fold configuration values.
func (c *Config) normalize() error {
	for _, field := range []*string{
		&c.Paths.OutputDir,
		&c.Paths.LibraryDB,
		&c.Paths.LogDir,
		&c.Paths.SessionDir,
		&c.Deploy.MountDir,
	} {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Console.Manufacturer = strings.TrimSpace(c.Console.Manufacturer)
	c.Console.Model = strings.TrimSpace(c.Console.Model)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Deploy.WatchTimeout <= 0 {
		c.Deploy.WatchTimeout = 120
	}

	return nil
}
