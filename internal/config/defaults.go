package config

// Default returns a Config populated with repository defaults. Paths are
// left in their tilde form; Load expands them during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  "~/stagehand/exports",
			LibraryDB:  "~/.local/share/stagehand/library.db",
			LogDir:     "~/.local/share/stagehand/logs",
			SessionDir: "~/stagehand/sessions",
		},
		Console: Console{
			Manufacturer: "Behringer",
			Model:        "X32",
		},
		Deploy: Deploy{
			MountDir:     "/media",
			RequireFAT32: true,
			WatchTimeout: 120,
		},
		Logging: Logging{
			Format: "text",
			Level:  "info",
		},
	}
}
