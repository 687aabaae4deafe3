package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a simple fixed-width text table for analysis output. The first
// column is left-aligned, remaining columns right-aligned for numbers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends one row. Short rows are padded with empty cells.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render lays the table out with padded columns and a styled header.
func (t *Table) Render() string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	b.WriteString(BoldStyle.Render(t.formatRow(t.Headers, widths)))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(strings.Repeat("─", totalWidth(widths))))
	b.WriteString("\n")
	for _, row := range t.Rows {
		b.WriteString(t.formatRow(row, widths))
		b.WriteString("\n")
	}
	return b.String()
}

func (t *Table) formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := widths[i] - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		if i == 0 {
			parts[i] = cell + strings.Repeat(" ", pad)
		} else {
			parts[i] = strings.Repeat(" ", pad) + cell
		}
	}
	return strings.Join(parts, "  ")
}

func totalWidth(widths []int) int {
	total := (len(widths) - 1) * 2
	for _, w := range widths {
		total += w
	}
	return total
}

// Money formats an amount with two decimals for table cells.
func Money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Percent formats a 0..1 ratio as a percentage with one decimal.
func Percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}
