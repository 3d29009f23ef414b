// Package stats contains statistics calculations and reporting.
package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	columnGap    = 1
	ellipsis     = "…"
	minNameWidth = 4
)

// textTable lays out rows in aligned columns. The first column holds names
// (categories, players) and is the only one shrunk to fit a width limit.
type textTable struct {
	headers    []string
	rows       [][]string
	rightAlign map[int]bool
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool, maxWidth int) []string {
	t := textTable{headers: headers, rows: rows, rightAlign: rightAlignCols}
	widths := t.columnWidths()
	if len(widths) == 0 {
		return nil
	}
	fitFirstColumn(widths, maxWidth)

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, t.formatRow(headers, widths))
	}
	for _, row := range rows {
		lines = append(lines, t.formatRow(row, widths))
	}
	return lines
}

func (t textTable) columnWidths() []int {
	colCount := len(t.headers)
	for _, row := range t.rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for i, header := range t.headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// fitFirstColumn narrows the name column until the row fits maxWidth.
// maxWidth <= 0 disables the limit.
func fitFirstColumn(widths []int, maxWidth int) {
	if maxWidth <= 0 {
		return
	}
	total := columnGap * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	if over := total - maxWidth; over > 0 {
		widths[0] -= over
		if widths[0] < minNameWidth {
			widths[0] = minNameWidth
		}
	}
}

func (t textTable) formatRow(row []string, widths []int) string {
	var b strings.Builder
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString(strings.Repeat(" ", columnGap))
		}
		if displayWidth(cell) > width {
			cell = runewidth.Truncate(cell, width, ellipsis)
		}
		b.WriteString(padCell(cell, width, t.rightAlign[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	if rightAlign {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
