package services

import (
	"errors"
	"testing"
)

func TestWrapPreservesMarker(t *testing.T) {
	err := Wrap(ErrValidation, "library", "save", "session is nil", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("marker lost: %v", err)
	}
	want := "validation error: library: save: session is nil"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesWrappedError(t *testing.T) {
	inner := errors.New("disk full")
	err := Wrap(ErrTransient, "deploy", "copy", "", inner)
	if !errors.Is(err, inner) {
		t.Fatalf("inner error lost: %v", err)
	}
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("marker lost: %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("nil marker should default to transient: %v", err)
	}
	if err.Error() != "transient failure: service failure" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
