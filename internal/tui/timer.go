package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/lanes/internal/db"
	"github.com/balkashynov/lanes/internal/models"
)

// TimerModel is the pomodoro countdown TUI. The session is already started
// in the store by the time the model runs; the model only decides whether it
// ends completed (countdown elapsed or completed early) or abandoned.
type TimerModel struct {
	width  int
	height int

	session *models.PomodoroSession
	task    *models.Task // nil for unbound or BREAK sessions

	duration  time.Duration
	remaining time.Duration

	// Animation state
	pulse int

	// Outcome flags read by RunTimer after the program exits.
	completing bool
	abandoning bool
}

// countdownTickMsg is sent every second to advance the countdown
type countdownTickMsg struct{}

// pulseTickMsg drives the header animation
type pulseTickMsg struct{}

// NewTimerModel creates a new countdown model for an active session.
func NewTimerModel(session *models.PomodoroSession, task *models.Task, duration time.Duration) TimerModel {
	return TimerModel{
		session:   session,
		task:      task,
		duration:  duration,
		remaining: duration,
	}
}

// Init starts the countdown and animation tickers
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return countdownTickMsg{}
		}),
		tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
			return pulseTickMsg{}
		}),
	)
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownTickMsg:
		m.remaining -= time.Second
		if m.remaining <= 0 {
			m.remaining = 0
			m.completing = true
			return m, tea.Quit
		}
		return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return countdownTickMsg{}
		})

	case pulseTickMsg:
		m.pulse = (m.pulse + 1) % 2
		if !m.completing && !m.abandoning {
			return m, tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
				return pulseTickMsg{}
			})
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "c", "C":
			// Complete early; still counts
			m.completing = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			// Abandon without completing
			m.abandoning = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the countdown
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	var components []string

	// Animated header
	label := "FOCUS"
	accent := ColorAccentBright
	if m.session.Type == models.SessionBreak {
		label = "BREAK"
		accent = ColorBreak
	}
	pulseChars := []string{"●", "○"}
	headerText := fmt.Sprintf("%s  %s  %s", pulseChars[m.pulse], label, pulseChars[m.pulse])

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(accent)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, headerStyle.Render(headerText))

	// Bound task, if any
	if m.task != nil {
		taskStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Bold(true).
			Align(lipgloss.Center).
			Width(m.width)

		content := m.task.Content
		if len(content) > m.width-4 {
			content = content[:m.width-7] + "..."
		}
		components = append(components, taskStyle.Render(content))

		countStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Align(lipgloss.Center).
			Width(m.width)
		components = append(components, countStyle.Render(
			fmt.Sprintf("%d pomodoros so far", m.task.TotalPomodoros)))
	}

	// Big countdown display
	clock := renderBigClock(m.remaining, accent)
	for _, line := range strings.Split(clock, "\n") {
		components = append(components, lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(m.width).
			Render(line))
	}

	panelStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Align(lipgloss.Center, lipgloss.Center)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		panelStyle.Render(strings.Join(components, "\n")),
		helpBar,
	)
}

// renderBigClock renders the remaining time as ASCII art digits
func renderBigClock(remaining time.Duration, color string) string {
	minutes := int(remaining.Minutes())
	seconds := int(remaining.Seconds()) % 60

	// ASCII art for digits (5x5 characters each)
	digits := map[rune][]string{
		'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
		'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
		'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
		'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
		'4': {"█   █", "█   █", "█████", "    █", "    █"},
		'5': {"█████", "█    ", "████ ", "    █", "████ "},
		'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
		'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
		'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
		'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
		':': {"     ", "  █  ", "     ", "  █  ", "     "},
	}

	timeStr := fmt.Sprintf("%02d:%02d", minutes, seconds)

	var lines [5]strings.Builder
	for _, char := range timeStr {
		if digitArt, ok := digits[char]; ok {
			for i := 0; i < 5; i++ {
				lines[i].WriteString(digitArt[i])
				lines[i].WriteString(" ")
			}
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true)

	var result strings.Builder
	for i := 0; i < 5; i++ {
		result.WriteString(clockStyle.Render(lines[i].String()))
		if i < 4 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

// renderHelpBar renders the help bar at the bottom
func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	return helpStyle.Render("c complete now · esc/q abandon · ctrl+c force quit")
}

// RunTimer starts a session in the store, runs the countdown TUI and, if the
// countdown elapsed or the user completed early, completes the session
// (crediting the bound task for WORK sessions).
func RunTimer(store *db.Store, userID, sessionType string, taskID *string, duration time.Duration) error {
	session, err := store.StartSession(userID, sessionType, taskID)
	if err != nil {
		return err
	}

	var task *models.Task
	if taskID != nil {
		task, err = store.Task(userID, *taskID)
		if err != nil {
			return err
		}
	}

	model := NewTimerModel(session, task, duration)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	timerModel := finalModel.(TimerModel)
	if timerModel.abandoning {
		fmt.Printf("Session abandoned; nothing recorded as completed.\n")
		return nil
	}

	completed, err := store.CompleteSession(userID, session.ID)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}

	if completed.Type == models.SessionWork && task != nil {
		updated, err := store.Task(userID, task.ID)
		if err == nil {
			task = updated
		}
		fmt.Printf("Pomodoro complete: %q now has %d pomodoros.\n", task.Content, task.TotalPomodoros)
	} else {
		fmt.Printf("%s session complete.\n", completed.Type)
	}

	return nil
}
