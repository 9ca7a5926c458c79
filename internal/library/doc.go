// Package library persists console sessions and their export history in
// a local SQLite database.
//
// The store keeps the full session document alongside indexed metadata
// (gig name, venue, target desk) so the CLI can list and re-export past
// shows without re-reading session files. A file lock next to the
// database keeps concurrent stagehand invocations from interleaving
// writes.
package library
