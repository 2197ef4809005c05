package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/geoquiz/internal/geo"
	"github.com/vovakirdan/geoquiz/internal/quiz"
	"github.com/vovakirdan/geoquiz/internal/storage"
)

type feedbackKind int

const (
	feedbackNone feedbackKind = iota
	feedbackCorrect
	feedbackWrong
	feedbackRevealed
)

type feedback struct {
	kind feedbackKind
	text string
}

// GameModel is the Bubble Tea model for one quiz game.
type GameModel struct {
	sess    Session
	mode    quiz.Mode
	ids     []string
	seed    int64
	state   quiz.State
	answers []string

	cursor    int
	input     textinput.Model
	keys      GameKeyMap
	help      help.Model
	feedback  feedback
	remaining int // seconds left on the round timer
	tickGen   int

	width      int
	height     int
	resultID   int64
	saved      bool
	standalone bool // no menu to return to
	quitting   bool
	backToMenu bool
}

// NewGameModel starts a game with the session's settings.
func NewGameModel(sess Session) (GameModel, error) {
	if err := sess.validate(); err != nil {
		return GameModel{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "region name"
	ti.CharLimit = 64
	ti.Width = 32

	m := GameModel{
		sess:  sess,
		ids:   sess.Dataset.IDs(),
		input: ti,
		keys:  DefaultGameKeyMap(),
		help:  help.New(),
	}
	if err := m.start(sess.seed()); err != nil {
		return GameModel{}, err
	}
	return m, nil
}

func (m *GameModel) start(seed int64) error {
	eng := m.sess.Engine
	state, err := eng.StartGame(eng.CreateInitialState(m.sess.Settings), m.ids, seed)
	if err != nil {
		return err
	}

	m.seed = seed
	m.state = state
	m.mode = eng.Mode(state.Settings)
	m.answers = nil
	m.cursor = 0
	m.feedback = feedback{}
	m.saved = false
	m.resultID = 0
	m.resetTimer()
	m.tickGen++
	m.input.Reset()
	if m.mode.Input() == quiz.InputText {
		m.input.Focus()
	} else {
		m.input.Blur()
	}

	m.sess.logger().Debug("game started",
		"session", m.sess.ID,
		"mode", m.mode.ID(),
		"dataset", m.sess.Dataset.Name,
		"seed", seed,
	)
	return nil
}

// Init starts the cursor blink and the round timer.
func (m GameModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.timed() {
		cmds = append(cmds, tickCmd(time.Second, m.tickGen))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick(msg)
	}

	if m.mode.Input() == quiz.InputText {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.state.Status == quiz.StatusPlaying {
			m.state = m.sess.Engine.Pause(m.state)
			return m, nil
		}
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.togglePause()
		return m, nil
	}

	switch m.state.Status {
	case quiz.StatusEnded:
		if key.Matches(msg, m.keys.Submit) {
			if err := m.start(m.seed + 1); err != nil {
				m.feedback = feedback{kind: feedbackWrong, text: err.Error()}
				return m, nil
			}
			return m, m.Init()
		}
		return m, nil
	case quiz.StatusPaused:
		if key.Matches(msg, m.keys.Submit) {
			m.togglePause()
		}
		return m, nil
	case quiz.StatusPlaying:
	default:
		return m, nil
	}

	if m.mode.Input() == quiz.InputText {
		if key.Matches(msg, m.keys.Submit) {
			return m.submit(strings.TrimSpace(m.input.Value()))
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	options := m.options()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Submit):
		if len(options) > 0 {
			return m.submit(options[m.cursor])
		}
	default:
		// Digits pick a candidate directly.
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(options) && len(m.state.CandidateIDs) > 0 {
			return m.submit(options[n-1])
		}
	}
	return m, nil
}

func (m *GameModel) togglePause() {
	switch m.state.Status {
	case quiz.StatusPlaying:
		m.state = m.sess.Engine.Pause(m.state)
	case quiz.StatusPaused:
		m.state = m.sess.Engine.Resume(m.state)
	}
}

func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.tickGen || m.state.Status == quiz.StatusEnded {
		return m, nil
	}
	next := tickCmd(time.Second, m.tickGen)
	if m.state.Status != quiz.StatusPlaying {
		return m, next
	}

	m.remaining--
	if m.remaining > 0 {
		return m, next
	}

	// Time is up: the round counts as a wrong attempt.
	model, cmd := m.submit("")
	gm := model.(GameModel)
	if gm.feedback.kind == feedbackWrong {
		gm.feedback.text = "Time's up! " + gm.feedback.text
	}
	if gm.state.Status == quiz.StatusEnded {
		return gm, cmd
	}
	return gm, tea.Batch(cmd, next)
}

// submit sends one answer to the engine.
func (m GameModel) submit(answer string) (tea.Model, tea.Cmd) {
	target := m.state.Target()
	name := m.sess.Dataset.RegionName(target)

	res := m.sess.Engine.Answer(m.state, answer, m.ids, m.seed, name)
	m.answers = append(m.answers, answer)
	m.state = res.NewState
	m.feedback = m.describe(res, name)
	m.cursor = 0
	m.input.Reset()
	m.resetTimer()

	if m.state.Status == quiz.StatusEnded {
		m.saveResult()
	}
	return m, nil
}

func (m GameModel) describe(res quiz.AnswerResult, targetName string) feedback {
	switch {
	case res.IsCorrect:
		return feedback{kind: feedbackCorrect, text: fmt.Sprintf("Correct! That was %s.", targetName)}
	case res.RevealedCorrect:
		return feedback{kind: feedbackRevealed, text: fmt.Sprintf("Out of attempts. It was %s.", targetName)}
	default:
		left := m.state.Settings.MaxAttempts - m.state.AttemptsThisRound
		return feedback{kind: feedbackWrong, text: fmt.Sprintf("Wrong, %d attempt(s) left.", left)}
	}
}

func (m *GameModel) saveResult() {
	if m.saved || m.sess.Store == nil {
		return
	}
	m.saved = true

	id, err := m.sess.Store.SaveResult(storage.GameResult{
		SessionID:  m.sess.ID,
		Player:     m.sess.Player,
		ModeID:     string(m.state.Settings.GameMode),
		Dataset:    m.sess.Dataset.Name,
		Difficulty: string(m.state.Settings.Difficulty),
		Score:      m.state.Score,
		Correct:    m.state.CorrectAnswers,
		Rounds:     len(m.state.AnsweredIDs),
		Seed:       m.seed,
		Answers:    m.answers,
		Settings:   m.state.Settings,
	})
	if err != nil {
		m.sess.logger().Warn("could not save result", "error", err)
		return
	}
	m.resultID = id
	m.sess.logger().Debug("result saved", "id", id, "score", m.state.Score)
}

func (m GameModel) timed() bool {
	return m.state.Settings.TimerSeconds != nil && *m.state.Settings.TimerSeconds > 0
}

func (m *GameModel) resetTimer() {
	if m.timed() {
		m.remaining = *m.state.Settings.TimerSeconds
	}
}

// options returns the region ids the player can pick from: the candidate
// set when there is one, otherwise every region not yet revealed.
func (m GameModel) options() []string {
	if len(m.state.CandidateIDs) > 0 {
		return m.state.CandidateIDs
	}
	if m.mode.Input() == quiz.InputText {
		return nil
	}
	return quiz.RemainingIDs(m.ids, m.state.RevealedIDs)
}

// State returns the current game state.
func (m GameModel) State() quiz.State {
	return m.state
}

// Answers returns every answer submitted so far, in order.
func (m GameModel) Answers() []string {
	return m.answers
}

// BackToMenu returns true if the player left the game.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the player requested to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.state.Status == quiz.StatusEnded {
		return m.viewSummary()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("GEOQUIZ · %s · %s", m.mode.Title(), m.sess.Dataset.Name)))
	b.WriteString("\n")
	b.WriteString(statStyle.Render(m.statLine()))
	b.WriteString("\n\n")

	if m.state.Status == quiz.StatusPaused {
		b.WriteString(revealStyle.Render("PAUSED - enter or C-p to resume, esc for menu"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(promptStyle.Render(m.prompt()))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.mapPanel()))
	b.WriteString("\n")

	if m.mode.Input() == quiz.InputText {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else {
		b.WriteString(m.optionList())
	}

	if m.feedback.kind != feedbackNone {
		b.WriteString("\n")
		b.WriteString(m.feedbackStyle().Render(m.feedback.text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m GameModel) statLine() string {
	parts := []string{
		fmt.Sprintf("Round %d/%d", m.state.CurrentRound, quiz.TotalRounds(m.state.Settings, m.ids)),
		fmt.Sprintf("Score %d", m.state.Score),
		fmt.Sprintf("Streak %d", m.state.Streak),
		fmt.Sprintf("Attempt %d/%d", m.state.AttemptsThisRound+1, max(m.state.Settings.MaxAttempts, 1)),
	}
	if m.timed() {
		parts = append(parts, fmt.Sprintf("%ds", m.remaining))
	}
	return strings.Join(parts, "   ")
}

func (m GameModel) prompt() string {
	target := m.state.Target()
	if m.mode.Input() == quiz.InputText {
		return "Name the highlighted region"
	}
	return "Find: " + m.sess.Dataset.RegionName(target)
}

// Minimap size in cells.
const (
	mapWidth  = 48
	mapHeight = 12
)

// mapPanel draws the viewport the map shows this round with a short
// caption. Revealed regions are '+', the others '·'. The region under the
// cursor is '◆'; in reverse mode the target is shaded instead.
func (m GameModel) mapPanel() string {
	cfg := m.sess.Engine.MapConfig(m.state, m.sess.Dataset, m.seed)

	view := worldBound
	caption := "Map: whole world"
	if cfg.ZoomEnabled && cfg.Focus != nil {
		view = *cfg.Focus
		caption = "Map: " + formatBound(view)
	}

	width := mapWidth
	if m.width > 0 {
		width = geo.Clamp(m.width-8, 16, mapWidth)
	}
	canvas := NewCanvas(width, mapHeight, view)

	target := m.state.Target()
	if m.mode.Input() == quiz.InputText {
		if b, ok := m.sess.Dataset.Bound(target); ok {
			canvas.Fill(b, '░')
			canvas.Outline(b)
		}
	}
	// Revealed regions win over unrevealed neighbours in the same cell.
	for _, id := range m.ids {
		if c, ok := m.sess.Dataset.Centroid(id); ok && !slices.Contains(m.state.RevealedIDs, id) {
			canvas.Mark(c, '·')
		}
	}
	for _, id := range m.state.RevealedIDs {
		if c, ok := m.sess.Dataset.Centroid(id); ok {
			canvas.Mark(c, '+')
		}
	}
	if options := m.options(); m.cursor < len(options) {
		if c, ok := m.sess.Dataset.Centroid(options[m.cursor]); ok {
			canvas.Mark(c, '◆')
		}
	}

	lines := []string{caption, canvas.String()}
	if m.mode.Input() == quiz.InputText {
		if c, ok := m.sess.Dataset.Centroid(target); ok {
			lines = append(lines, "Highlighted near "+formatPoint(c))
		}
	}
	if cfg.SuppressHoverOutline {
		lines = append(lines, dimStyle.Render("no hover outlines"))
	}
	return strings.Join(lines, "\n")
}

func (m GameModel) optionList() string {
	options := m.options()
	numbered := len(m.state.CandidateIDs) > 0

	var b strings.Builder
	for i, id := range options {
		label := m.sess.Dataset.RegionName(id)
		if numbered {
			label = fmt.Sprintf("%d. %s", i+1, label)
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m GameModel) feedbackStyle() lipgloss.Style {
	switch m.feedback.kind {
	case feedbackCorrect:
		return correctStyle
	case feedbackRevealed:
		return revealStyle
	default:
		return wrongStyle
	}
}

func (m GameModel) viewSummary() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("GAME OVER"), m.width))
	b.WriteString("\n\n")

	lines := []string{
		fmt.Sprintf("Mode:     %s", m.mode.Title()),
		fmt.Sprintf("Score:    %d", m.state.Score),
		fmt.Sprintf("Correct:  %d of %d", m.state.CorrectAnswers, len(m.state.AnsweredIDs)),
		fmt.Sprintf("Seed:     %d", m.seed),
	}
	if m.resultID > 0 {
		lines = append(lines, fmt.Sprintf("Saved as game #%d", m.resultID))
	}
	b.WriteString(panelStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if m.feedback.kind != feedbackNone {
		b.WriteString(m.feedbackStyle().Render(m.feedback.text))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter: play again  |  esc: menu  |  C-c: quit"))
	b.WriteString("\n")
	return b.String()
}

// RunGame plays a single game in the current terminal and returns its
// final model.
func RunGame(sess Session) (GameModel, error) {
	model, err := NewGameModel(sess)
	if err != nil {
		return GameModel{}, err
	}
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if gm, ok := final.(GameModel); ok {
		return gm, nil
	}
	return model, nil
}
