package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/keywordmaster/keywordmaster/internal/session"
	"github.com/keywordmaster/keywordmaster/internal/ui"
)

// Focus is the component receiving key input
type Focus int

const (
	FocusInput Focus = iota
	FocusTags
)

// Messages for async operations
type generationDoneMsg struct {
	requestID string
	err       error
}

type stateChangedMsg struct{}

type resultsReadyMsg struct{}

// Options configures the application model.
type Options struct {
	ExportDir string // Directory for saved CSV files
	Topic     string // Initial topic
}

// AppModel is the top-level model of the interactive front end
type AppModel struct {
	ctx     context.Context
	ctrl    *session.Controller
	opts    Options
	updates <-chan struct{}

	snap    session.Snapshot
	lastErr error
	notice  string

	Focus  Focus
	Cursor int

	Input    textinput.Model
	Spinner  spinner.Model
	Viewport viewport.Model
	Help     help.Model
	Keys     inputKeyMap
	TagKeys  tagsKeyMap

	Width  int
	Height int
}

// NewAppModel creates the model over ctrl. ctx is passed to every
// generation call.
func NewAppModel(ctx context.Context, ctrl *session.Controller, opts Options) AppModel {
	input := textinput.New()
	input.Placeholder = ui.TopicPrompt
	input.Prompt = "› "
	input.PromptStyle = PromptStyle
	input.SetValue(opts.Topic)
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := AppModel{
		ctx:      ctx,
		ctrl:     ctrl,
		opts:     opts,
		snap:     ctrl.Snapshot(),
		Focus:    FocusInput,
		Input:    input,
		Spinner:  s,
		Viewport: viewport.New(ui.MinTerminalWidth, 10),
		Help:     help.New(),
		Keys:     newInputKeyMap(),
		TagKeys:  newTagsKeyMap(),
		Width:    ui.MinTerminalWidth,
		Height:   24,
	}
	m.refresh()
	return m
}

// Subscribe connects the model to controller change notifications.
func (m *AppModel) Subscribe(updates <-chan struct{}) {
	m.updates = updates
}

// Init starts the spinner and the change listener
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.Spinner.Tick, waitForChange(m.updates))
}

func waitForChange(updates <-chan struct{}) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// Update handles all messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Input.Width = max(ui.ClampWidth(msg.Width)-20, 10)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.Focus == FocusTags {
			return m.updateTags(msg)
		}
		return m.updateInput(msg)

	case generationDoneMsg:
		m.lastErr = msg.err
		if msg.err != nil {
			m.setFocus(FocusInput)
		}

	case resultsReadyMsg:
		if len(m.ctrl.Snapshot().Tags) > 0 {
			m.setFocus(FocusTags)
			m.Cursor = 0
		}

	case stateChangedMsg:
		cmd = waitForChange(m.updates)

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
	}

	m.refresh()
	return m, cmd
}

func (m AppModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Generate):
		return m.submit()

	case key.Matches(msg, m.Keys.Tags):
		if len(m.snap.Tags) > 0 {
			m.setFocus(FocusTags)
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m AppModel) updateTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	n := len(m.snap.Tags)

	switch {
	case key.Matches(msg, m.TagKeys.Prev):
		if m.Cursor > 0 {
			m.Cursor--
		}

	case key.Matches(msg, m.TagKeys.Next):
		if m.Cursor < n-1 {
			m.Cursor++
		}

	case key.Matches(msg, m.TagKeys.Remove):
		m.ctrl.RemoveTag(m.Cursor)

	case key.Matches(msg, m.TagKeys.Copy):
		if _, err := m.ctrl.CopyAll(); err != nil {
			m.notice = err.Error()
		}

	case key.Matches(msg, m.TagKeys.Save):
		path, err := m.ctrl.SaveExport(m.opts.ExportDir)
		if err != nil {
			m.notice = err.Error()
		} else {
			m.notice = "Saved " + path
		}

	case key.Matches(msg, m.TagKeys.Edit):
		m.setFocus(FocusInput)

	case key.Matches(msg, m.TagKeys.Quit):
		return m, tea.Quit
	}

	m.refresh()
	return m, nil
}

// submit starts a generation for the current input. Empty topics and
// submits while generating are ignored.
func (m AppModel) submit() (tea.Model, tea.Cmd) {
	topic := m.Input.Value()
	id, err := m.ctrl.Begin(topic)
	if err != nil {
		if errors.Is(err, session.ErrInFlight) {
			m.notice = ui.ProcessingLabel
		}
		return m, nil
	}

	m.lastErr = nil
	m.notice = ""
	m.Cursor = 0
	m.refresh()

	ctx, ctrl := m.ctx, m.ctrl
	return m, func() tea.Msg {
		err := ctrl.Complete(ctx, id, topic)
		return generationDoneMsg{requestID: id, err: err}
	}
}

func (m *AppModel) setFocus(f Focus) {
	m.Focus = f
	if f == FocusInput {
		m.Input.Focus()
	} else {
		m.Input.Blur()
	}
}

// refresh re-reads the controller state and lays out the results pane.
func (m *AppModel) refresh() {
	m.snap = m.ctrl.Snapshot()

	if n := len(m.snap.Tags); m.Cursor >= n {
		m.Cursor = max(n-1, 0)
	}
	if len(m.snap.Tags) == 0 && m.Focus == FocusTags {
		m.setFocus(FocusInput)
	}

	width := m.contentWidth()
	content, cursorLine := m.renderResults(width)
	m.Viewport.Width = width
	m.Viewport.Height = max(m.Height-m.chromeHeight(), 3)
	m.Viewport.SetContent(content)

	if cursorLine >= 0 {
		switch {
		case cursorLine < m.Viewport.YOffset:
			m.Viewport.SetYOffset(cursorLine)
		case cursorLine >= m.Viewport.YOffset+m.Viewport.Height:
			m.Viewport.SetYOffset(cursorLine - m.Viewport.Height + 1)
		}
	}
}

func (m AppModel) contentWidth() int {
	return ui.ClampWidth(m.Width) - 4
}

// Snapshot returns the state last rendered
func (m AppModel) Snapshot() session.Snapshot {
	return m.snap
}

// Notice returns the transient status line
func (m AppModel) Notice() string {
	return m.notice
}

