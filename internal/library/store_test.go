package library

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"stagehand/internal/console"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestSession(gig string) *console.ConsoleSession {
	s := console.NewSession("Behringer", "X32")
	s.Gig.Name = gig
	s.Gig.Venue = "Paramount"
	s.CurrentScene.Channels = []console.Channel{{Number: 1, Name: "Kick"}}
	s.Normalize()
	return s
}

func TestSaveAssignsIDAndRoundTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, newTestSession("Harbor Festival"), "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	record, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record.GigName != "Harbor Festival" || record.Venue != "Paramount" {
		t.Errorf("metadata wrong: %+v", record)
	}

	session, err := store.Session(ctx, id)
	if err != nil {
		t.Fatalf("decode stored session: %v", err)
	}
	if len(session.CurrentScene.Channels) != 1 || session.CurrentScene.Channels[0].Name != "Kick" {
		t.Errorf("stored document lost channel data: %+v", session.CurrentScene.Channels)
	}
}

func TestSaveUpdatesInPlace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, newTestSession("First"), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(ctx, newTestSession("Second"), id); err != nil {
		t.Fatal(err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("update must not create a second row, got %d", len(records))
	}
	if records[0].GigName != "Second" {
		t.Errorf("update lost: %+v", records[0])
	}
}

func TestGetMissingSession(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesSessionAndHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, newTestSession("Gone Soon"), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.RecordExport(ctx, ExportRecord{
		SessionID: id, Manufacturer: "Behringer", Model: "X32",
		OutputDir: "/tmp/out", FileCount: 8,
	}); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should report not found, got %v", err)
	}

	history, err := store.ExportHistory(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 0 {
		t.Errorf("cascade delete left %d export rows", len(history))
	}
}

func TestExportHistoryNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, newTestSession("History"), "")
	if err != nil {
		t.Fatal(err)
	}
	for _, model := range []string{"X32", "QL1"} {
		if err := store.RecordExport(ctx, ExportRecord{
			SessionID: id, Manufacturer: "any", Model: model, OutputDir: "/tmp", FileCount: 1,
		}); err != nil {
			t.Fatal(err)
		}
	}

	history, err := store.ExportHistory(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 export rows, got %d", len(history))
	}
	if history[0].Model != "QL1" {
		t.Errorf("expected newest export first, got %+v", history)
	}
}

func TestRecordExportRequiresSessionID(t *testing.T) {
	store := newTestStore(t)
	if err := store.RecordExport(context.Background(), ExportRecord{}); err == nil {
		t.Fatal("expected an error for an empty session id")
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected an error for an empty database path")
	}
}
