package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Brand color
var (
	primaryColor = lipgloss.Color("#ff7300")
	subtleColor  = lipgloss.Color("#626262")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF0000")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	doneStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// ProgressMsg reports that more items have been processed.
type ProgressMsg struct {
	Done    int
	Total   int
	Message string
}

// ResultMsg indicates that the operation finished.
type ResultMsg struct {
	Err    error
	Output string
}

// Model renders a progress bar for a long-running batch operation.
type Model struct {
	title      string
	spinner    spinner.Model
	bar        progress.Model
	done       int
	total      int
	logs       []string
	quitting   bool
	completed  bool
	err        error
	statusChan <-chan ProgressMsg
	resultChan <-chan error
}

// NewModel creates a progress model fed by statusChan. The worker must send
// its final error on resultChan and then close statusChan.
func NewModel(title string, total int, statusChan <-chan ProgressMsg, resultChan <-chan error) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		title:      title,
		spinner:    s,
		bar:        progress.New(progress.WithDefaultGradient()),
		total:      total,
		statusChan: statusChan,
		resultChan: resultChan,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForActivity(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd

	case ProgressMsg:
		m.done = msg.Done
		if msg.Total > 0 {
			m.total = msg.Total
		}
		if msg.Message != "" {
			m.logs = append(m.logs, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg.Message))
		}

		var cmd tea.Cmd
		if m.total > 0 {
			cmd = m.bar.SetPercent(float64(m.done) / float64(m.total))
		}
		return m, tea.Batch(cmd, m.waitForActivity())

	case ResultMsg:
		// Print the final output before quitting so the user can see the result
		if msg.Output != "" {
			fmt.Println("\n" + msg.Output)
		}
		m.err = msg.Err
		m.completed = true
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg, ok := <-m.statusChan:
			if !ok {
				var err error
				if m.resultChan != nil {
					err = <-m.resultChan
				}
				return ResultMsg{Err: err}
			}
			return msg
		case <-time.After(5 * time.Minute):
			return ResultMsg{
				Err: fmt.Errorf("timed out waiting for progress"),
			}
		}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
		}
		if !m.completed {
			return ""
		}
		return doneStyle.Render(fmt.Sprintf("✓ %s (%d/%d)", m.title, m.done, m.total)) + "\n"
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(m.title))
	s.WriteString("\n\n")

	s.WriteString(m.spinner.View() + " ")
	s.WriteString(m.bar.View())
	s.WriteString(fmt.Sprintf("  %d/%d\n", m.done, m.total))

	// Show last 5 logs
	start := 0
	if len(m.logs) > 5 {
		start = len(m.logs) - 5
	}
	for _, log := range m.logs[start:] {
		s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render(log) + "\n")
	}

	s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render("\nPress q to quit\n"))

	return s.String()
}

// Run drives the progress display until statusChan closes or fn returns.
// fn runs on its own goroutine and owns the channel; its error is returned
// after the display shuts down.
func Run(title string, total int, fn func(ch chan<- ProgressMsg) error) error {
	ch := make(chan ProgressMsg)
	errCh := make(chan error, 1)

	go func() {
		errCh <- fn(ch)
		close(ch)
	}()

	p := tea.NewProgram(NewModel(title, total, ch, errCh))
	final, runErr := p.Run()

	// Unblock the worker if the user quit while it was still sending.
	go func() {
		for range ch {
		}
	}()

	if runErr != nil {
		return fmt.Errorf("running progress display: %w", runErr)
	}
	if m, ok := final.(Model); ok && m.completed {
		return m.err
	}
	return <-errCh
}

// RunPlain consumes progress updates without a terminal UI, for scripted use.
func RunPlain(fn func(ch chan<- ProgressMsg) error) error {
	ch := make(chan ProgressMsg)
	errCh := make(chan error, 1)

	go func() {
		errCh <- fn(ch)
		close(ch)
	}()

	for msg := range ch {
		if msg.Message != "" {
			fmt.Printf("%s (%d/%d)\n", msg.Message, msg.Done, msg.Total)
		}
	}
	return <-errCh
}
