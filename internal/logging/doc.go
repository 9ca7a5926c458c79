// Package logging assembles the structured slog loggers used across
// Stagehand commands.
//
// It owns the text and JSON handlers, centralizes level and output
// plumbing, and exposes component loggers so every subsystem tags its
// lines the same way. The package also provides a no-op logger for tests
// and wiring code that cannot fail.
package logging
