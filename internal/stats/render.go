package stats

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	terminalWidthBackup = 80
	sparklineLabel      = "Points: "
)

// TerminalWidth returns the width of w when it is a terminal, or 80.
func TerminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// WriteReport prints the summary, the points curve and the category and
// player tables.
func WriteReport(w io.Writer, r Report, window, width int) error {
	if len(r.Games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	if err := writeSummary(w, r); err != nil {
		return err
	}
	if err := writeCurve(w, r, window, width); err != nil {
		return err
	}
	if err := writeCategoryTable(w, r, width); err != nil {
		return err
	}
	return writePlayerTable(w, r, width)
}

func writeSummary(w io.Writer, r Report) error {
	rounds, guessed, points, best := 0, 0, 0, 0
	for _, g := range r.Games {
		rounds += g.Rounds
		guessed += g.Guessed
		points += g.Points
		if g.Points > best {
			best = g.Points
		}
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Games: %d", len(r.Games)),
		fmt.Sprintf("Rounds: %d", rounds),
		fmt.Sprintf("Guess rate: %.2f%%", GuessRate(guessed, rounds)*100),
		fmt.Sprintf("Avg clues to guess: %.2f", AverageCluesToGuess(r.Rounds)),
		fmt.Sprintf("Avg points per game: %.2f", float64(points)/float64(len(r.Games))),
		fmt.Sprintf("Best game: %d points", best),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeCurve(w io.Writer, r Report, window, width int) error {
	values := make([]float64, len(r.Games))
	for i, g := range r.Games {
		values[i] = float64(g.Points)
	}
	values = MovingAverage(values, window)
	limit := width - len(sparklineLabel)
	if limit > 0 && len(values) > limit {
		values = values[len(values)-limit:]
	}
	_, err := fmt.Fprintf(w, "%s%s\n\n", sparklineLabel, Sparkline(values))
	return err
}

func writeCategoryTable(w io.Writer, r Report, width int) error {
	if len(r.Categories) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Categories (hardest first)"); err != nil {
		return err
	}
	headers := []string{"Category", "Rounds", "Guess rate", "Clues/round", "Points"}
	rows := make([][]string, 0, len(r.Categories))
	for _, agg := range HardestCategories(r.Categories, 0) {
		rows = append(rows, []string{
			agg.Category,
			fmt.Sprintf("%d", agg.Rounds),
			fmt.Sprintf("%.2f%%", GuessRate(agg.Guessed, agg.Rounds)*100),
			fmt.Sprintf("%.1f", CluesPerRound(agg)),
			fmt.Sprintf("%d", agg.Points),
		})
	}
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true}, width)
}

func writePlayerTable(w io.Writer, r Report, width int) error {
	if len(r.Players) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Players"); err != nil {
		return err
	}
	headers := []string{"Player", "Rounds", "Guessed", "Points"}
	rows := make([][]string, 0, len(r.Players))
	for _, agg := range TopPlayers(r.Players, len(r.Players)) {
		rows = append(rows, []string{
			agg.Player,
			fmt.Sprintf("%d", agg.Rounds),
			fmt.Sprintf("%d", agg.Guessed),
			fmt.Sprintf("%d", agg.Points),
		})
	}
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true}, width)
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool, width int) error {
	for _, line := range formatTable(headers, rows, rightAlign, width) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
