// Package tui provides a Bubble Tea terminal user interface for recording
// a child's name.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/mynameis/internal/app"
	"github.com/handiism/mynameis/internal/capture"
	"github.com/handiism/mynameis/internal/export"
	"github.com/handiism/mynameis/internal/model"
	"github.com/handiism/mynameis/internal/session"
	"go.uber.org/zap"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500")).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#F8B500")).
			Padding(1, 4)

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateName State = iota
	StateMenu
	StateRecording
	StateDeck
	StateExporting
	StateConfirmReset
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   export.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	app *app.App

	state     State
	returnTo  State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	logs      []LogEntry
	notice    string
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	// Current child
	name     string
	prompts  []session.Prompt
	cursor   int
	deck     *session.Deck
	recorded map[string]bool
	status   model.CompletionStatus
	letters  model.LetterProgress
	prefs    model.Preferences

	// Capture
	recordKey   model.RecordingKey
	recordStart time.Time
	stopping    bool
	playing     bool
	recentIdx   int

	// Export
	exporter     *export.Manager
	exportCancel context.CancelFunc
	events       chan export.ProgressEvent

	width  int
	height int
}

// NewModel creates a new TUI model running on a.
func NewModel(a *app.App) Model {
	ti := textinput.New()
	ti.Placeholder = "Child's name"
	ti.Focus()
	ti.CharLimit = 60
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		app:       a,
		state:     StateName,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		recorded:  make(map[string]bool),
		recentIdx: -1,
	}

	if name := a.Session.ChildName(ctx); name != "" {
		m.textInput.SetValue(name)
		m.enterMenu(name)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every export progress event.
	ProgressMsg struct {
		Event export.ProgressEvent
	}

	// RecordStartedMsg is sent once the microphone is open, or failed to open.
	RecordStartedMsg struct {
		Key model.RecordingKey
		Err error
	}

	// RecordDoneMsg is sent when a take has been stopped and saved.
	RecordDoneMsg struct {
		Key   model.RecordingKey
		Saved bool
		Err   error
	}

	// PlayDoneMsg is sent when playback ends.
	PlayDoneMsg struct {
		Err error
	}

	// ExportDoneMsg is sent when an export completes.
	ExportDoneMsg struct {
		Result *export.Result
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.app.Session.CancelRecording()
			m.cancel()
			return m, tea.Quit
		}
		next, cmd := m.handleKey(msg)
		if m.state == StateName && next.state == StateName {
			var inputCmd tea.Cmd
			next.textInput, inputCmd = next.textInput.Update(msg)
			cmd = tea.Batch(cmd, inputCmd)
		}
		return next, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case RecordStartedMsg:
		if msg.Err != nil {
			m.state = m.returnTo
			if errors.Is(msg.Err, capture.ErrMicrophoneUnavailable) && len(m.app.Settings.CaptureCommand) > 0 {
				m.notice = fmt.Sprintf("Check that %s is installed and may use the microphone.", m.app.Settings.CaptureCommand[0])
			}
			m.err = msg.Err
			break
		}
		m.recordKey = msg.Key
		m.recordStart = time.Now()
		cmds = append(cmds, m.tickProgress())

	case RecordDoneMsg:
		m.state = m.returnTo
		switch {
		case msg.Err != nil:
			m.err = msg.Err
		case !msg.Saved:
			m.notice = "Nothing was recorded. Check the microphone and try again."
		default:
			m.notice = fmt.Sprintf("Saved %s.", msg.Key.Title())
			if m.state == StateDeck && m.prefs.AutoAdvance {
				m.deck.Next()
			}
		}
		m.refresh()

	case PlayDoneMsg:
		m.playing = false
		if msg.Err != nil {
			m.err = msg.Err
			break
		}
		if m.state == StateDeck && m.prefs.AutoAdvance && m.deck.Next() {
			cmds = append(cmds, m.narrate())
		}

	case ProgressMsg:
		// Filter verbose messages
		if msg.Event.Level != export.LevelVerbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			// Keep only last 10 logs
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		}
		cmds = append(cmds, waitForEvent(m.events))

	case ExportDoneMsg:
		m.state = StateMenu
		m.exportCancel = nil
		switch {
		case errors.Is(msg.Err, context.Canceled):
			m.notice = "Export cancelled."
		case msg.Err != nil:
			m.err = msg.Err
		default:
			m.notice = fmt.Sprintf("Exported %d clips to %s", msg.Result.Written, msg.Result.Collection.Path)
			if msg.Result.Failed > 0 {
				m.notice += fmt.Sprintf(" (%d failed)", msg.Result.Failed)
			}
		}
		cmds = append(cmds, m.progress.SetPercent(float64(m.status.Percentage)/100))

	case TickMsg:
		switch m.state {
		case StateRecording:
			limit := m.app.Settings.MaxRecordingDuration()
			if limit > 0 && !m.stopping && !m.recordStart.IsZero() && time.Since(m.recordStart) >= limit {
				m.stopping = true
				cmds = append(cmds, m.finishRecording())
				break
			}
			cmds = append(cmds, m.tickProgress())
		case StateExporting:
			if m.exporter != nil {
				written, total := m.exporter.GetProgress()
				var percent float64
				if total > 0 {
					percent = float64(written) / float64(total)
				}
				cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
			}
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if m.state != StateName && m.state != StateRecording {
		m.err = nil
		m.notice = ""
	}

	switch m.state {
	case StateName:
		switch key {
		case "esc":
			m.cancel()
			return m, tea.Quit
		case "tab":
			recent := m.app.Session.RecentNames(m.ctx)
			if len(recent) > 0 {
				m.recentIdx = (m.recentIdx + 1) % len(recent)
				m.textInput.SetValue(recent[m.recentIdx])
				m.textInput.CursorEnd()
			}
		case "enter":
			if err := m.app.Session.SetChildName(m.ctx, m.textInput.Value()); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.enterMenu(m.app.Session.ChildName(m.ctx))
			return m, m.progress.SetPercent(float64(m.status.Percentage) / 100)
		}

	case StateMenu:
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.prompts)-1 {
				m.cursor++
			}
		case "enter", "r":
			return m.beginRecording(model.StageKey(m.name, m.prompts[m.cursor].Stage))
		case "p":
			return m.play(model.StageKey(m.name, m.prompts[m.cursor].Stage))
		case "f":
			if m.deck.Len() == 0 {
				m.notice = "This name has no letters to practise."
				return m, nil
			}
			m.state = StateDeck
			return m, m.narrate()
		case "e":
			return m.startExport()
		case "n":
			m.app.Recorder.StopPlayback()
			m.state = StateName
			m.recentIdx = -1
			m.textInput.Focus()
		case "x":
			m.state = StateConfirmReset
		case "s":
			m.prefs.ShowPhonetics = !m.prefs.ShowPhonetics
			m.app.Session.SavePreferences(m.ctx, m.prefs)
		case "a":
			m.prefs.AutoAdvance = !m.prefs.AutoAdvance
			m.app.Session.SavePreferences(m.ctx, m.prefs)
		case "l":
			m.prefs.NarrateLetters = !m.prefs.NarrateLetters
			m.app.Session.SavePreferences(m.ctx, m.prefs)
		case "q", "esc":
			m.cancel()
			return m, tea.Quit
		}

	case StateRecording:
		if m.recordStart.IsZero() || m.stopping {
			return m, nil
		}
		switch key {
		case "enter", " ", "s":
			m.stopping = true
			return m, m.finishRecording()
		case "esc":
			m.app.Session.CancelRecording()
			m.state = m.returnTo
			m.notice = "Recording discarded."
		}

	case StateDeck:
		switch key {
		case "left", "h":
			if m.deck.Prev() {
				return m, m.narrate()
			}
		case "right", "l", "tab":
			if m.deck.Next() {
				return m, m.narrate()
			}
		case "r", "enter":
			if k, ok := m.deck.CurrentKey(); ok {
				return m.beginRecording(k)
			}
		case "p", " ":
			if k, ok := m.deck.CurrentKey(); ok {
				return m.play(k)
			}
		case "esc", "b", "q":
			m.app.Recorder.StopPlayback()
			m.playing = false
			m.state = StateMenu
		}

	case StateExporting:
		if key == "esc" && m.exportCancel != nil {
			m.exportCancel()
		}

	case StateConfirmReset:
		switch key {
		case "y":
			if err := m.app.Session.Reset(m.ctx, true); err != nil {
				m.err = err
				m.state = StateMenu
				return m, nil
			}
			m.name = ""
			m.recorded = make(map[string]bool)
			m.textInput.SetValue("")
			m.textInput.Focus()
			m.state = StateName
			m.notice = "Everything was erased."
		case "n", "esc":
			m.state = StateMenu
		}
	}

	return m, nil
}

// enterMenu switches to the stage menu for name.
func (m *Model) enterMenu(name string) {
	m.name = name
	m.prompts = session.Prompts(name)
	m.deck = session.NewDeck(name)
	m.cursor = 0
	m.state = StateMenu
	m.refresh()
}

// refresh reloads what is recorded for the current child.
func (m *Model) refresh() {
	if m.name == "" {
		return
	}
	m.prefs = m.app.Session.Preferences(m.ctx)
	m.status = m.app.Store.CompletionStatus(m.ctx, m.name)
	m.letters = m.app.Store.LetterProgress(m.ctx, m.name)
	m.recorded = make(map[string]bool)
	for _, e := range m.app.Store.ListForSubject(m.ctx, m.name) {
		m.recorded[e.Key.String()] = true
	}
}

func (m Model) beginRecording(key model.RecordingKey) (Model, tea.Cmd) {
	m.playing = false
	m.returnTo = m.state
	m.state = StateRecording
	m.recordKey = key
	m.recordStart = time.Time{}
	m.stopping = false

	sess, ctx := m.app.Session, m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return RecordStartedMsg{Key: key, Err: sess.BeginRecording(ctx, key)}
	})
}

func (m Model) finishRecording() tea.Cmd {
	sess, ctx, key := m.app.Session, m.ctx, m.recordKey
	return func() tea.Msg {
		_, saved, err := sess.FinishRecording(ctx)
		return RecordDoneMsg{Key: key, Saved: saved, Err: err}
	}
}

func (m Model) play(key model.RecordingKey) (Model, tea.Cmd) {
	done, err := m.app.Session.Play(m.ctx, key)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotRecorded):
			m.notice = fmt.Sprintf("%s is not recorded yet.", key.Title())
		case errors.Is(err, capture.ErrBusy):
			m.notice = "Stop recording first."
		default:
			m.err = err
		}
		return m, nil
	}
	m.playing = true
	return m, waitForPlayback(done)
}

// narrate plays the current card when letter narration is on and the card
// has a recording.
func (m Model) narrate() tea.Cmd {
	if !m.prefs.NarrateLetters || m.deck == nil {
		return nil
	}
	key, ok := m.deck.CurrentKey()
	if !ok || !m.recorded[key.String()] {
		return nil
	}
	done, err := m.app.Session.Play(m.ctx, key)
	if err != nil {
		m.app.Logger.Debug("narration skipped", zap.String("key", key.String()), zap.Error(err))
		return nil
	}
	return waitForPlayback(done)
}

func (m Model) startExport() (Model, tea.Cmd) {
	if m.status.Recorded == 0 && m.letters.Recorded == 0 {
		m.notice = "Record something first."
		return m, nil
	}

	m.app.Recorder.StopPlayback()
	m.logs = nil
	m.state = StateExporting
	m.events = make(chan export.ProgressEvent, 64)
	events := m.events
	m.exporter = m.app.Exporter(func(e export.ProgressEvent) {
		select {
		case events <- e:
		default:
		}
	})

	ctx, cancel := context.WithCancel(m.ctx)
	m.exportCancel = cancel
	exporter, sess, name := m.exporter, m.app.Session, m.name

	run := func() tea.Msg {
		defer close(events)
		defer cancel()
		photo, err := sess.Photo(ctx)
		if err != nil {
			photo = nil
		}
		result, err := exporter.Export(ctx, name, photo)
		return ExportDoneMsg{Result: result, Err: err}
	}
	return m, tea.Batch(run, waitForEvent(events), m.spinner.Tick, m.progress.SetPercent(0), m.tickProgress())
}

func waitForPlayback(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		return PlayDoneMsg{Err: <-done}
	}
}

// waitForEvent returns the next export event, or nothing once the export
// closed the channel.
func waitForEvent(events <-chan export.ProgressEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: e}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎙  My Name Is"))
	b.WriteString("\n")
	if m.name != "" && m.state != StateName {
		b.WriteString(dimStyle.Render(session.SentenceFor(m.name)))
	} else {
		b.WriteString(dimStyle.Render("Record your child's name in your own voice"))
	}
	b.WriteString("\n\n")

	switch m.state {
	case StateName:
		b.WriteString(m.viewName())
	case StateMenu:
		b.WriteString(m.viewMenu())
	case StateRecording:
		b.WriteString(m.viewRecording())
	case StateDeck:
		b.WriteString(m.viewDeck())
	case StateExporting:
		b.WriteString(m.viewExporting())
	case StateConfirmReset:
		b.WriteString(m.viewConfirmReset())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("› " + m.notice))
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewName() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("What is your child's name?"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	if recent := m.app.Session.RecentNames(m.ctx); len(recent) > 0 {
		b.WriteString(infoStyle.Render("Recent:"))
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(strings.Join(recent, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString(m.progress.ViewAs(float64(m.status.Percentage) / 100))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Stages: %d/%d | Letters: %d/%d",
		m.status.Recorded, m.status.Total,
		m.letters.Recorded, m.letters.Total,
	)))
	b.WriteString("\n\n")

	for i, p := range m.prompts {
		cursor := "  "
		if i == m.cursor {
			cursor = "› "
		}
		check := "[ ]"
		style := dimStyle
		if m.recorded[model.StageKey(m.name, p.Stage).String()] {
			check = "[×]"
			style = successStyle
		}
		line := fmt.Sprintf("%s%s %s", cursor, check, p.Title)
		if i == m.cursor {
			b.WriteString(subtitleStyle.Render(line))
			b.WriteString("\n")
			b.WriteString(dimStyle.Render("      " + p.Text))
		} else {
			b.WriteString(style.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Show name under cards (s)\n", checkbox(m.prefs.ShowPhonetics)))
	b.WriteString(fmt.Sprintf("  %s Play letters on cards (l)\n", checkbox(m.prefs.NarrateLetters)))
	b.WriteString(fmt.Sprintf("  %s Advance after each card (a)\n", checkbox(m.prefs.AutoAdvance)))

	if m.status.Complete() {
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(fmt.Sprintf("✨ All stages recorded for %s!\n\nPress e to export them.", m.name)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewRecording() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	switch {
	case m.stopping:
		b.WriteString(subtitleStyle.Render("Saving..."))
	case m.recordStart.IsZero():
		b.WriteString(subtitleStyle.Render("Opening microphone..."))
	default:
		elapsed := time.Since(m.recordStart).Truncate(time.Second)
		b.WriteString(errorStyle.Render(fmt.Sprintf("● Recording %s  %s", m.recordKey.Title(), elapsed)))
		if limit := m.app.Settings.MaxRecordingDuration(); limit > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf(" / %s", limit)))
		}
	}
	b.WriteString("\n\n")

	if m.recordKey.Stage.IsLetter() {
		b.WriteString(cardStyle.Render(string(unicode.ToUpper(m.recordKey.Letter))))
	} else {
		for _, p := range m.prompts {
			if p.Stage == m.recordKey.Stage {
				b.WriteString(boxStyle.Render(p.Text))
			}
		}
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewDeck() string {
	var b strings.Builder

	card, ok := m.deck.Current()
	if !ok {
		return dimStyle.Render("No cards.\n")
	}
	key := card.Key(m.name)

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Card %d of %d", m.deck.Index()+1, m.deck.Len())))
	b.WriteString("\n\n")
	b.WriteString(cardStyle.Render(string(card.Letter)))
	b.WriteString("\n\n")

	if m.prefs.ShowPhonetics {
		b.WriteString(highlightLetter(m.name, card.Position))
		b.WriteString("\n")
	}

	switch {
	case m.playing:
		b.WriteString(infoStyle.Render("♪ Playing..."))
	case m.recorded[key.String()]:
		b.WriteString(successStyle.Render("✓ Recorded"))
	default:
		b.WriteString(warningStyle.Render("! Not recorded yet"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewExporting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Exporting %s...", m.name)))
	b.WriteString("\n\n")
	b.WriteString(m.progress.View())
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewConfirmReset() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("! Erase everything?"))
	b.WriteString("\n\n")
	b.WriteString("  Every recording, the name, the photo and your preferences\n")
	b.WriteString("  will be deleted. This cannot be undone.\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case export.LevelError:
			style = errorStyle
			prefix = "✗"
		case export.LevelWarning:
			style = warningStyle
			prefix = "!"
		case export.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case export.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateName:
		return "enter: continue • tab: recent names • esc: quit"
	case StateMenu:
		return "↑/↓: stage • enter: record • p: play • f: flashcards • e: export • n: name • x: reset • q: quit"
	case StateRecording:
		return "enter: stop and save • esc: discard"
	case StateDeck:
		return "←/→: card • r: record • p: play • esc: back"
	case StateExporting:
		return "esc: cancel"
	case StateConfirmReset:
		return "y: erase everything • n: keep"
	}
	return ""
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

// highlightLetter renders name with the letter at position emphasised.
// Positions count letters only, matching the deck.
func highlightLetter(name string, position int) string {
	var b strings.Builder
	i := 0
	for _, r := range name {
		if !unicode.IsLetter(r) {
			b.WriteString(dimStyle.Render(string(r)))
			continue
		}
		if i == position {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(dimStyle.Render(string(r)))
		}
		i++
	}
	return b.String()
}

// Run starts the TUI application.
func Run(a *app.App) error {
	p := tea.NewProgram(NewModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
