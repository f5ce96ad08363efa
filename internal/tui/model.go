// Package tui provides the Bubble Tea letter board interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/model"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/puzzle"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/session"
)

const (
	panelWidth = 30

	// Board size used before the first WindowSizeMsg arrives.
	defaultBoardWidth  = 48
	defaultBoardHeight = 17
)

// Recorder persists finished games. A nil Recorder disables recording.
type Recorder interface {
	InsertGame(ctx context.Context, game model.GameRecord, words []model.WordRecord) (int64, error)
}

// Model implements the Bubble Tea letter board UI.
type Model struct {
	def      puzzle.Definition
	state    *session.State
	dict     session.Lookup
	recorder Recorder
	logger   zerolog.Logger
	now      func() time.Time

	keys keyMap
	help help.Model

	width  int
	height int

	startedAt   time.Time
	note        string
	lastOutcome session.Outcome
	recorded    bool
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	wordStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Underline(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D6CECE"))
	rejectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	winStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FD67F")).Bold(true)
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	boardBoxStyle = lipgloss.NewStyle().PaddingLeft(4)
)

// NewModel constructs a letter board TUI model for def.
func NewModel(def puzzle.Definition, dict session.Lookup, recorder Recorder, logger zerolog.Logger) (*Model, error) {
	state, err := session.New(def)
	if err != nil {
		return nil, err
	}
	m := &Model{
		def:      def,
		state:    state,
		dict:     dict,
		recorder: recorder,
		logger:   logger.With().Str("puzzle", def.Name).Logger(),
		now:      time.Now,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.startedAt = m.now()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.recordIfPlayed()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.handleSubmit()
		case key.Matches(msg, m.keys.Clear):
			m.state.ClearCurrentWord()
			m.note = ""
		case key.Matches(msg, m.keys.Restart):
			m.restart()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case msg.Type == tea.KeyRunes:
			for _, r := range msg.Runes {
				if unicode.IsLetter(r) {
					m.handleLetter(r)
				}
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

// SetNote shows msg in the status line until the next key is handled.
func (m *Model) SetNote(msg string) {
	m.note = msg
}

func (m *Model) handleLetter(r rune) {
	outcome, ok := m.state.TypeLetter(r)
	if !ok {
		m.note = fmt.Sprintf("%q is not on the board.", string(unicode.ToUpper(r)))
		return
	}
	m.note = ""
	m.lastOutcome = outcome
	m.logger.Debug().
		Str("word", m.state.CurrentWord()).
		Str("path", puzzle.FormatPath(m.state.UsedPositions())).
		Stringer("outcome", outcome).
		Msg("select")
}

func (m *Model) handleSubmit() {
	m.note = ""
	word := m.state.CurrentWord()
	m.lastOutcome = m.state.SubmitCurrentWord(m.dict)
	m.logger.Debug().Str("word", word).Stringer("outcome", m.lastOutcome).Msg("submit")
	if m.lastOutcome == session.Won && !m.recorded {
		m.logger.Info().Int("words", m.state.AcceptedCount()).Msg("puzzle solved")
		m.record()
	}
}

func (m *Model) restart() {
	m.recordIfPlayed()
	state, err := session.New(m.def)
	if err != nil {
		// def was validated when the model was built.
		m.logger.Error().Err(err).Msg("restart failed")
		return
	}
	m.state = state
	m.startedAt = m.now()
	m.note = ""
	m.lastOutcome = session.Selected
	m.recorded = false
	m.logger.Info().Msg("restarted")
}

func (m *Model) recordIfPlayed() {
	if m.recorded || m.state.AcceptedCount() == 0 {
		return
	}
	m.record()
}

func (m *Model) record() {
	m.recorded = true
	if m.recorder == nil {
		return
	}
	game, words := m.gameRecord(m.now())
	id, err := m.recorder.InsertGame(context.Background(), game, words)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to save game")
		return
	}
	m.logger.Info().Int64("game_id", id).Bool("won", game.Won).Msg("game saved")
}

func (m *Model) gameRecord(endedAt time.Time) (model.GameRecord, []model.WordRecord) {
	accepted := m.state.AcceptedWords()
	paths := m.state.CompletedPaths()
	words := make([]model.WordRecord, len(accepted))
	for i, w := range accepted {
		words[i] = model.WordRecord{Seq: i, Word: w, Path: puzzle.FormatPath(paths[i])}
	}
	game := model.GameRecord{
		StartedAt:  m.startedAt,
		EndedAt:    endedAt,
		Puzzle:     m.def.Name,
		Board:      m.def.String(),
		K:          m.def.K,
		N:          m.def.N,
		Words:      len(accepted),
		Consumed:   m.state.ConsumedCount(),
		Total:      m.def.Total(),
		Won:        m.state.Won(),
		DurationMs: endedAt.Sub(m.startedAt).Milliseconds(),
	}
	return game, words
}

// View implements tea.Model.
func (m *Model) View() string {
	boardWidth, boardHeight := defaultBoardWidth, defaultBoardHeight
	if m.width > 0 && m.height > 0 {
		boardWidth = m.width - panelWidth - boardBoxStyle.GetPaddingLeft()
		boardHeight = m.height - 2
	}
	board := renderBoard(viewOf(m.state), boardWidth, boardHeight, true)
	panel := lipgloss.NewStyle().Width(panelWidth).Render(m.renderPanel())
	body := lipgloss.JoinHorizontal(lipgloss.Top, panel, boardBoxStyle.Render(board))
	return body + "\n" + m.help.View(m.keys)
}

func (m *Model) renderPanel() string {
	lines := []string{titleStyle.Render(title(m.def.K)), ""}
	lines = append(lines, "> "+wordStyle.Render(m.state.CurrentWord())+cursorStyle.Render(" "))
	lines = append(lines, m.renderStatus(), "")
	if r, ok := m.state.RequiredFirstLetter(); ok && m.state.Phase() == session.PhaseAwaitingContinuation {
		lines = append(lines, pendingStyle.Render(fmt.Sprintf("Next word starts with %c", unicode.ToUpper(r))), "")
	}
	if words := m.state.AcceptedWords(); len(words) > 0 {
		lines = append(lines, pendingStyle.Render(strings.Join(words, " → ")), "")
	}
	lines = append(lines, m.renderFooter())
	return strings.Join(lines, "\n")
}

type tone int

const (
	toneInfo tone = iota
	toneReject
	toneWin
)

// statusLine returns the text under the word in progress and how to colour it.
func (m *Model) statusLine() (string, tone) {
	if m.note != "" {
		return m.note, toneReject
	}
	status := m.state.Status()
	switch {
	case m.lastOutcome.Rejected():
		return status, toneReject
	case m.state.Won():
		return status, toneWin
	default:
		return status, toneInfo
	}
}

func (m *Model) renderStatus() string {
	text, t := m.statusLine()
	if text == "" {
		return ""
	}
	switch t {
	case toneReject:
		return rejectStyle.Render(text)
	case toneWin:
		return winStyle.Render(text)
	default:
		return statusStyle.Render(text)
	}
}

func title(k int) string {
	return fmt.Sprintf("%d-PARTITE LETTER BOXED", k)
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Words %d", m.state.AcceptedCount()),
		fmt.Sprintf("Letters %d/%d", m.state.ConsumedCount(), m.def.Total()),
	}
	if words := m.state.AcceptedWords(); len(words) > 0 {
		segments = append(segments, "Last "+words[len(words)-1])
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}
