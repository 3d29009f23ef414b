// Package tui provides the Bubble Tea play interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/perfil/internal/model"
	"github.com/verte-zerg/perfil/internal/session"
	"github.com/verte-zerg/perfil/internal/store"
)

// Model implements the Bubble Tea play UI.
type Model struct {
	sess  *session.Session
	store *store.Store
	game  model.GameRecord
	input textinput.Model

	width  int
	height int

	message string
	saved   bool
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	latestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	olderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a play TUI model. game carries the metadata recorded
// when the session is saved; st may be nil to disable saving.
func NewModel(sess *session.Session, st *store.Store, game model.GameRecord) *Model {
	ti := textinput.New()
	ti.Placeholder = "Who is it?"
	ti.CharLimit = 120
	ti.Focus()
	if game.StartedAt.IsZero() {
		game.StartedAt = time.Now()
	}
	return &Model{
		sess:  sess,
		store: st,
		game:  game,
		input: ti,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.handleEnter()
		case tea.KeyTab:
			m.handleNextClue()
			return m, nil
		case tea.KeyCtrlS:
			m.handleSkip()
			return m, nil
		}
	}
	if m.sess.Finished() || m.sess.Current().Outcome != session.Pending {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.sess.Finished() {
		content = m.renderFinal()
	} else {
		content = m.renderRound()
	}
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) handleEnter() tea.Cmd {
	if m.sess.Finished() {
		return tea.Quit
	}
	if m.sess.Current().Outcome != session.Pending {
		if err := m.sess.NextRound(); err != nil {
			m.message = err.Error()
			return nil
		}
		m.message = ""
		m.input.SetValue("")
		if m.sess.Finished() {
			m.finishGame()
		}
		return nil
	}
	guess := strings.TrimSpace(m.input.Value())
	if guess == "" {
		return nil
	}
	res, err := m.sess.Guess(guess)
	m.input.SetValue("")
	if err != nil {
		m.message = err.Error()
		return nil
	}
	switch {
	case res.Correct:
		m.message = correctStyle.Render(fmt.Sprintf("Correct! +%d points", res.Points))
	case res.RoundOver:
		m.message = wrongStyle.Render("Out of clues.")
	default:
		m.message = wrongStyle.Render(fmt.Sprintf("%q is not it.", guess))
	}
	return nil
}

func (m *Model) handleNextClue() {
	if m.sess.Finished() || m.sess.Current().Outcome != session.Pending {
		return
	}
	if _, err := m.sess.NextClue(); err != nil {
		if errors.Is(err, model.ErrMaxCluesReached) {
			m.message = "No clues left. Guess or skip with Ctrl+S."
			return
		}
		m.message = err.Error()
		return
	}
	m.message = ""
}

func (m *Model) handleSkip() {
	if err := m.sess.Skip(); err != nil {
		m.message = err.Error()
		return
	}
	m.message = ""
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderRound() string {
	cur := m.sess.Current()
	width := m.contentWidth()
	lines := []string{
		headerStyle.Render(fmt.Sprintf("Round %d/%d · %s · %s", cur.Round.RoundNumber, cur.Total, cur.Round.Category, cur.Player)),
		"",
	}
	clues := m.sess.RevealedClues()
	for i, clue := range clues {
		style := olderStyle
		if i == 0 {
			style = latestStyle
		}
		prefix := fmt.Sprintf("%2d. ", len(clues)-i)
		for _, line := range indentLines(prefix, clue, width) {
			lines = append(lines, style.Render(line))
		}
	}
	lines = append(lines, "")
	if cur.Outcome == session.Pending {
		lines = append(lines, m.input.View())
	} else {
		lines = append(lines, headerStyle.Render(fmt.Sprintf("It was %s.", cur.Profile.Name)))
		lines = append(lines, footerStyle.Render("Press Enter for the next round."))
	}
	if m.message != "" {
		lines = append(lines, m.message)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFinal() string {
	lines := []string{headerStyle.Render("Final scores"), ""}
	for i, s := range m.sess.Scores() {
		lines = append(lines, fmt.Sprintf("%d. %s: %d", i+1, s.Player, s.Points))
	}
	lines = append(lines, "")
	if m.message != "" {
		lines = append(lines, m.message)
	}
	lines = append(lines, footerStyle.Render("Press Enter to quit."))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if m.sess.Finished() {
		return footerStyle.Render(fmt.Sprintf("Game %s", m.sess.ID()))
	}
	cur := m.sess.Current()
	segments := []string{
		fmt.Sprintf("Clue %d/%d", cur.Turn.CluesRead, model.GetClueCount(cur.Profile)),
	}
	for _, s := range m.sess.Scores() {
		segments = append(segments, fmt.Sprintf("%s %d", s.Player, s.Points))
	}
	segments = append(segments, "Enter guess · Tab clue · Ctrl+S skip")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) finishGame() {
	if m.saved || m.store == nil {
		return
	}
	m.game.ID = m.sess.ID()
	m.game.EndedAt = time.Now()
	m.game.Rounds = len(m.sess.Rounds())
	ctx := context.Background()
	if err := m.store.InsertGame(ctx, m.game, m.sess.Results()); err != nil {
		zap.L().Error("failed to save game", zap.String("game", m.game.ID), zap.Error(err))
		m.message = wrongStyle.Render("Could not save the game.")
		return
	}
	if err := m.store.SaveShuffleMap(ctx, m.game.ID, m.sess.ShuffleMap()); err != nil {
		zap.L().Error("failed to save clue order", zap.String("game", m.game.ID), zap.Error(err))
	}
	m.saved = true
	zap.L().Info("game saved", zap.String("game", m.game.ID), zap.Int("rounds", m.game.Rounds))
}
