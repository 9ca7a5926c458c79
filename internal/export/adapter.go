package export

import (
	"fmt"

	"stagehand/internal/console"
)

// Capability declares which canonical features a target format can
// represent. It is static per adapter; validation and documentation
// generation consult it to decide what must be surfaced as guidance
// instead of machine-readable output.
type Capability struct {
	Scenes                bool
	EQ                    bool
	Dynamics              bool
	Routing               bool
	Effects               bool
	Import                bool
	Extensions            []string
	RequiresOfflineEditor bool
}

// File is one generated artifact, returned in emission order.
type File struct {
	Filename    string
	Extension   string
	Content     string
	MIMEType    string
	Description string
}

// Result is the outcome of an export run. Partial success is valid:
// Success false with a non-empty file list means some artifacts were
// produced before a failure was reported.
type Result struct {
	Success      bool
	Files        []File
	Warnings     []string
	Errors       []string
	Instructions []string
}

// Validation is the outcome of a pre-flight compatibility check. Errors
// are hard incompatibilities that block export; warnings are degradations
// that do not.
type Validation struct {
	Valid       bool
	Errors      []string
	Warnings    []string
	Suggestions []string
}

// Adapter translates a canonical session into one vendor's file format.
// Implementations never mutate the session.
type Adapter interface {
	Manufacturer() string
	Model() string
	Capability() Capability
	Validate(session *console.ConsoleSession) Validation
	Export(session *console.ConsoleSession) Result
}

// Errorf appends a formatted export error and clears the success flag.
func (r *Result) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Success = false
}

// Warnf appends a formatted warning without affecting success.
func (r *Result) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// AddFile appends a generated artifact in order.
func (r *Result) AddFile(f File) {
	r.Files = append(r.Files, f)
}

// NumberInstructions renders user-facing steps as an ordered, numbered
// list ready for display or inclusion in a README.
func NumberInstructions(steps []string) []string {
	out := make([]string, len(steps))
	for i, step := range steps {
		out[i] = fmt.Sprintf("%d. %s", i+1, step)
	}
	return out
}
