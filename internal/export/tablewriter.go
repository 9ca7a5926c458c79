package export

import "strings"

// Cell is one CSV field. Display strings are double-quoted; identifier and
// enumerated fields stay bare. As with scene tokens, formatting decisions
// live here and nowhere else.
type Cell struct {
	text string
}

// Display renders a quoted display-string cell. Embedded double quotes are
// doubled per CSV convention.
func Display(s string) Cell {
	return Cell{`"` + strings.ReplaceAll(s, `"`, `""`) + `"`}
}

// Plain renders a bare cell (row IDs, colors, icons, patch tokens).
func Plain(s string) Cell { return Cell{s} }

// TableWriter builds one table of the CSV dialect: the fixed two-line
// [Information] header naming the hardware model and protocol version,
// a [Section] marker, a column header line, and comma-delimited rows.
type TableWriter struct {
	b strings.Builder
}

// NewTable starts a table for the given model and protocol version and
// writes the header block.
func NewTable(model, protocolVersion, section string, columns []string) *TableWriter {
	w := &TableWriter{}
	w.b.WriteString("[Information]\n")
	w.b.WriteString("MODEL NAME," + model + "\n")
	w.b.WriteString("PROTOCOL VERSION," + protocolVersion + "\n")
	w.b.WriteString("\n")
	w.b.WriteString("[" + section + "]\n")
	w.b.WriteString(strings.Join(columns, ",") + "\n")
	return w
}

// Row appends one comma-delimited row.
func (w *TableWriter) Row(cells ...Cell) {
	for i, c := range cells {
		if i > 0 {
			w.b.WriteByte(',')
		}
		w.b.WriteString(c.text)
	}
	w.b.WriteByte('\n')
}

// String returns the accumulated table body.
func (w *TableWriter) String() string {
	return w.b.String()
}
