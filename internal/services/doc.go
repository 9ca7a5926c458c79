// Package services holds cross-cutting error classification helpers
// shared by stagehand subsystems.
//
// Errors are tagged with sentinel markers so callers can branch on the
// class of failure with errors.Is without parsing message text.
package services
