package main

import (
	"encoding/json"
	"io"
)

// writeJSON renders v as indented JSON, the machine-readable twin of every
// command's table output.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
