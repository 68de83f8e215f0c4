package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/tasks"
)

// ErrAborted is returned by [Run] when the view is closed before the run completes.
var ErrAborted = errors.New("download view closed before completion")

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ResolvingView ViewState = iota
	DownloadView
	ResultView
)

// RunFunc performs the download, reporting on progress. The channel is closed by the model once it returns.
type RunFunc func(ctx context.Context, progress chan<- tasks.ProgressUpdate) (*models.Summary, error)

type jobRow struct {
	name  string
	state models.JobState
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	run          RunFunc
	title        string
	width        int
	height       int
	status       string
	rows         []jobRow
	completed    int
	progressChan chan tasks.ProgressUpdate
	done         chan runOutcome
	summary      *models.Summary
	err          error
	finished     bool
	failuresOnly bool
	spinner      spinner.Model
	bar          progress.Model
	results      list.Model
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model that calls run when started.
func NewModel(ctx context.Context, title string, run RunFunc) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.warn

	return &Model{
		ctx:     ctx,
		view:    ResolvingView,
		run:     run,
		title:   title,
		status:  "Resolving...",
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient()),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Run shows the progress view until the download completes and the user quits.
func Run(ctx context.Context, title string, run RunFunc, opts ...tea.ProgramOption) (*models.Summary, error) {
	m := NewModel(ctx, title, run)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return nil, err
	}
	if !m.finished {
		return nil, ErrAborted
	}
	return m.summary, m.err
}

// Init starts the run and the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startRun())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, msg.Width-4)
		if m.view == ResultView {
			m.results.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if m.view == ResultView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgProgressUpdate:
			m.applyProgress(msg.data.(tasks.ProgressUpdate))
			return m, m.waitForProgress()
		case MsgRunComplete:
			out := msg.data.(runOutcome)
			m.finish(out.summary, out.err)
			return m, nil
		}
	}

	if m.view == ResultView {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ResolvingView:
		return m.renderResolving()
	case DownloadView:
		return m.renderDownload()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case m.view == ResultView && key.Matches(msg, m.keys.failures):
		m.failuresOnly = !m.failuresOnly
		m.results.SetItems(resultItems(m.summary.Results, m.failuresOnly))
		return m, nil
	}

	if m.view == ResultView {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) applyProgress(u tasks.ProgressUpdate) {
	m.status = u.Message

	switch u.Phase {
	case tasks.PhaseResolve:
		c, ok := u.Data.(*models.Collection)
		if !ok {
			return
		}
		m.title = c.Name
		m.rows = make([]jobRow, len(c.Tracks))
		for i, t := range c.Tracks {
			m.rows[i] = jobRow{name: t.DisplayName(), state: models.JobPending}
		}
		m.view = DownloadView

	case tasks.PhaseJob:
		if u.Index < 0 || u.Index >= len(m.rows) {
			return
		}
		m.rows[u.Index].state = u.State
		if u.State.Terminal() {
			m.completed = u.Step
		}
	}
}

func (m *Model) finish(summary *models.Summary, err error) {
	m.summary = summary
	m.err = err
	m.finished = true
	m.view = ResultView
	m.progressChan = nil

	if summary == nil {
		return
	}

	// Progress sends are lossy; the summary holds every terminal state.
	if len(m.rows) != len(summary.Results) {
		m.rows = make([]jobRow, len(summary.Results))
	}
	for i, res := range summary.Results {
		m.rows[i] = jobRow{name: res.Track.DisplayName(), state: res.State}
	}
	m.completed = len(summary.Results)

	m.results = list.New(resultItems(summary.Results, m.failuresOnly), list.NewDefaultDelegate(), max(0, m.width-4), max(0, m.height-8))
	m.results.Title = summary.Collection
}

func (m *Model) startRun() tea.Cmd {
	ch := make(chan tasks.ProgressUpdate, 64)
	done := make(chan runOutcome, 1)
	m.progressChan, m.done = ch, done

	go func() {
		summary, err := m.run(m.ctx, ch)
		done <- runOutcome{summary: summary, err: err}
		close(ch)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	ch, done := m.progressChan, m.done
	return func() tea.Msg {
		if ch == nil {
			return nil
		}

		update, ok := <-ch
		if !ok {
			out := <-done
			return runCompleteMsg(out.summary, out.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderResolving() string {
	title := styles.title.Render(m.title)
	return fmt.Sprintf("%s\n%s %s\n\n%s", title, m.spinner.View(), m.status, m.help.ShortHelpView([]key.Binding{m.keys.quit}))
}

func (m *Model) renderDownload() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(m.title))
	b.WriteString("\n")

	for i, row := range m.rows {
		marker := " "
		switch {
		case row.state == models.JobDone:
			marker = "✓"
		case row.state == models.JobFailed:
			marker = "✗"
		case row.state != models.JobPending:
			marker = m.spinner.View()
		}
		state := styles.state(row.state).Render(fmt.Sprintf("%-9s", row.state))
		fmt.Fprintf(&b, "%s %3d. %s %s\n", marker, i+1, state, row.name)
	}

	var percent float64
	if len(m.rows) > 0 {
		percent = float64(m.completed) / float64(len(m.rows))
	}
	fmt.Fprintf(&b, "\n%s %d/%d\n", m.bar.ViewAs(percent), m.completed, len(m.rows))
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.quit}))
	return b.String()
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Download failed: %v\n\nPress q to quit", m.err))
	}
	if m.summary == nil {
		return styles.err.Render("No result available\n\nPress q to quit")
	}

	counts := styles.ok.Render(fmt.Sprintf("✓ %d succeeded", m.summary.Succeeded))
	if m.summary.Failed > 0 {
		counts += "  " + styles.err.Render(fmt.Sprintf("✗ %d failed", m.summary.Failed))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.failures, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s\n\n%s", m.results.View(), counts, helpView)
}
