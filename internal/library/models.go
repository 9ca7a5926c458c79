package library

import "time"

// SessionRecord is one library row: indexed metadata plus the complete
// session document as stored JSON.
type SessionRecord struct {
	ID           string
	GigName      string
	Venue        string
	GigDate      string
	Manufacturer string
	Model        string
	Document     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ExportRecord captures one completed export run for a stored session.
type ExportRecord struct {
	ID           int64
	SessionID    string
	Manufacturer string
	Model        string
	OutputDir    string
	FileCount    int
	WarningCount int
	ExportedAt   time.Time
}
