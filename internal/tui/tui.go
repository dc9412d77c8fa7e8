// Package tui provides a Bubble Tea terminal user interface for flacpress.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hillandr/flacpress/internal/batch"
	"github.com/hillandr/flacpress/internal/config"
	"github.com/hillandr/flacpress/internal/encoder"
	ioutils "github.com/hillandr/flacpress/internal/io"
	"github.com/hillandr/flacpress/internal/job"
	"github.com/hillandr/flacpress/internal/manifest"
	"github.com/hillandr/flacpress/internal/playlist"
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

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StatePreparing
	StateConverting
	StateComplete
	StateError
)

// eventLog buffers progress events from worker goroutines until the next
// UI tick drains them.
type eventLog struct {
	mu     sync.Mutex
	events []batch.ProgressEvent
}

func (l *eventLog) add(e batch.ProgressEvent) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *eventLog) drain() []batch.ProgressEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events
	l.events = nil
	return events
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []batch.ProgressEvent
	err       error

	// Conversion context
	ctx    context.Context
	cancel context.CancelFunc

	runner *batch.Runner
	cfg    *config.Conversion
	events *eventLog

	totalJobs  int32
	doneJobs   int32
	failedJobs int32

	// Options
	keepGoing bool
	playlist  bool
	verbose   bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/album.csv"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  config.DefaultSettings(),
		events:    &eventLog{},
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// PrepareDoneMsg is sent when the manifest has been parsed and jobs
	// built.
	PrepareDoneMsg struct {
		Jobs   []*job.Job
		Runner *batch.Runner
		Cfg    *config.Conversion
		Err    error
	}

	// ConvertDoneMsg is sent when the batch settles.
	ConvertDoneMsg struct {
		Err error
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
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateConverting || m.state == StatePreparing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StatePreparing
				return m, tea.Batch(m.prepare(), m.spinner.Tick)
			}

		case "k":
			if m.state == StateInput {
				m.keepGoing = !m.keepGoing
			}

		case "p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new conversion
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.runner = nil
				m.cfg = nil
				m.events = &eventLog{}
				m.totalJobs = 0
				m.doneJobs = 0
				m.failedJobs = 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case PrepareDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.runner = msg.Runner
			m.cfg = msg.Cfg
			m.totalJobs = int32(len(msg.Jobs))
			m.state = StateConverting
			cmds = append(cmds, m.convert(msg.Jobs), m.tickProgress())
		}

	case ConvertDoneMsg:
		m.syncProgress()
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.runner != nil && m.state == StateConverting {
			m.syncProgress()

			var percent float64
			if m.totalJobs > 0 {
				percent = float64(m.doneJobs) / float64(m.totalJobs)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// syncProgress pulls counters and buffered log events from the runner.
func (m *Model) syncProgress() {
	if m.runner != nil {
		m.doneJobs, m.failedJobs, m.totalJobs = m.runner.GetProgress()
	}
	m.logs = append(m.logs, m.events.drain()...)
	// Keep only the last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
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

	b.WriteString(titleStyle.Render("flacpress"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Batch-convert an album to FLAC via ffmpeg"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StatePreparing:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Reading manifest..."))
		b.WriteString("\n")
	case StateConverting:
		b.WriteString(m.viewConverting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter manifest CSV path:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Keep going after failures (k)\n", check(m.keepGoing)))
	b.WriteString(fmt.Sprintf("  %s Create playlist (p)\n", check(m.playlist)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", check(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Outputs are written to a \"flac\" directory next to the manifest."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewConverting() string {
	var b strings.Builder

	var percent float64
	if m.totalJobs > 0 {
		percent = float64(m.doneJobs) / float64(m.totalJobs)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Tracks: %d/%d | Failed: %d",
		m.doneJobs,
		m.totalJobs,
		m.failedJobs,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	return boxStyle.Render(fmt.Sprintf(
		"Conversion complete!\n\nTracks: %d/%d",
		m.doneJobs,
		m.totalJobs,
	))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case batch.LevelError:
			style = errorStyle
			prefix = "✗"
		case batch.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case batch.LevelInfo:
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
	case StateInput:
		return "enter: start • k: keep going • p: playlist • v: verbose • esc: quit"
	case StatePreparing, StateConverting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new conversion • q: quit"
	}
	return ""
}

// prepare parses the manifest and builds the job list in the background.
func (m *Model) prepare() tea.Cmd {
	manifestPath := m.textInput.Value()
	events := m.events
	verbose := m.verbose

	cfg := m.settings.ToConversion()
	cfg.Verbose = verbose
	cfg.OutputDir = filepath.Join(filepath.Dir(manifestPath), "flac")
	if m.keepGoing {
		cfg.KeepGoing = true
	}

	return func() tea.Msg {
		records, err := manifest.ParseFile(manifestPath)
		if err != nil {
			return PrepareDoneMsg{Err: err}
		}
		if err := ioutils.EnsureDir(cfg.OutputDir); err != nil {
			return PrepareDoneMsg{Err: err}
		}

		jobs, err := job.BuildAll(cfg, records)
		if err != nil {
			return PrepareDoneMsg{Err: err}
		}
		if err := job.DetectCollisions(jobs); err != nil {
			return PrepareDoneMsg{Err: err}
		}

		policy := batch.FailFast
		if cfg.KeepGoing {
			policy = batch.ContinueOnError
		}
		runner := batch.NewRunner(encoder.NewFFmpeg(), cfg.Workers(), policy, verbose, events.add)

		return PrepareDoneMsg{Jobs: jobs, Runner: runner, Cfg: cfg}
	}
}

// convert runs the batch in the background and writes the playlist when
// the whole batch succeeded.
func (m *Model) convert(jobs []*job.Job) tea.Cmd {
	runner := m.runner
	ctx := m.ctx
	cfg := m.cfg
	createPlaylist := m.playlist

	return func() tea.Msg {
		result := runner.RunAll(ctx, jobs)
		if err := result.Err(); err != nil {
			return ConvertDoneMsg{Err: err}
		}

		if createPlaylist {
			creator := playlist.NewCreator(playlist.FormatM3U, true)
			path := filepath.Join(cfg.OutputDir, creator.FileName(cfg.AlbumTitle))
			if err := ioutils.WriteFile(ctx, path, []byte(creator.Create(jobs))); err != nil {
				return ConvertDoneMsg{Err: fmt.Errorf("failed to create playlist: %w", err)}
			}
		}

		return ConvertDoneMsg{}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
