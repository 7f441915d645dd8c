// Package render draws run reports for the terminal: a box-drawing
// table of per-task outcomes and styled summary boxes.
package render

import (
	"fmt"
	"strings"
)

// Table lays out rows under fixed headers with box-drawing borders.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// AddRow appends a row. Rows with the wrong number of cells are dropped.
func (t *Table) AddRow(cells ...string) {
	if len(cells) != len(t.headers) {
		return
	}
	t.rows = append(t.rows, cells)
	for i, cell := range cells {
		if len(cell) > t.widths[i] {
			t.widths[i] = len(cell)
		}
	}
}

// String renders the table.
func (t *Table) String() string {
	var sb strings.Builder

	t.writeBorder(&sb, "┌", "┬", "┐")

	sb.WriteString("│")
	for i, h := range t.headers {
		fmt.Fprintf(&sb, " %-*s │", t.widths[i], h)
	}
	sb.WriteString("\n")

	t.writeBorder(&sb, "├", "┼", "┤")

	for _, row := range t.rows {
		sb.WriteString("│")
		for i, cell := range row {
			fmt.Fprintf(&sb, " %-*s │", t.widths[i], cell)
		}
		sb.WriteString("\n")
	}

	t.writeBorder(&sb, "└", "┴", "┘")

	return sb.String()
}

func (t *Table) writeBorder(sb *strings.Builder, left, middle, right string) {
	sb.WriteString(left)
	for i, w := range t.widths {
		sb.WriteString(strings.Repeat("─", w+2))
		if i < len(t.widths)-1 {
			sb.WriteString(middle)
		}
	}
	sb.WriteString(right)
	sb.WriteString("\n")
}
