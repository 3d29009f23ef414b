package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Category", "Rounds", "Points"}
	rows := [][]string{
		{"Movies", "12", "140"},
		{"Sports", "3", "7"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign, 0)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Category Rounds Points" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Movies       12    140" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Sports        3      7" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Name", "Pts"}, [][]string{{"映画", "1"}}, map[int]bool{1: true}, 0)
	if lines[1] != "映画   1" {
		t.Fatalf("unexpected wide-rune row: %q", lines[1])
	}
}

func TestFormatTableTruncatesNames(t *testing.T) {
	rows := [][]string{{"Famous Historical Figures", "3"}}
	lines := formatTable([]string{"Category", "Rounds"}, rows, map[int]bool{1: true}, 17)
	if lines[0] != "Category   Rounds" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Famous Hi…      3" {
		t.Fatalf("unexpected truncated row: %q", lines[1])
	}

	lines = formatTable([]string{"Category", "Rounds"}, rows, map[int]bool{1: true}, 5)
	if lines[1] != "Fam…      3" {
		t.Fatalf("expected name column to keep its minimum width, got %q", lines[1])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil, 80); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}
