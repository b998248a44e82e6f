package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/lanes/internal/db"
	"github.com/balkashynov/lanes/internal/models"
)

// boardKeyMap defines the board's keybindings
type boardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Move      key.Binding
	Complete  key.Binding
	Important key.Binding
	Reload    key.Binding
	Quit      key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Move, k.Complete, k.Important, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Move, k.Complete, k.Important, k.Reload, k.Quit},
	}
}

var boardKeys = boardKeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev lane")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next lane")),
	Move:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move to next lane")),
	Complete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "complete")),
	Important: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "toggle important")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// BoardModel is the three-lane task board TUI.
type BoardModel struct {
	width  int
	height int

	store  *db.Store
	userID string

	// lanes[i] holds the tasks of models.ActiveStatuses[i] in display order.
	lanes [3][]models.Task

	lane   int // selected lane index
	cursor int // selected row within the lane

	keys boardKeyMap
	help help.Model
	err  error
}

// NewBoardModel creates a board over the store for one user.
func NewBoardModel(store *db.Store, userID string) BoardModel {
	m := BoardModel{
		store:  store,
		userID: userID,
		keys:   boardKeys,
		help:   help.New(),
	}
	m.err = m.reload()
	return m
}

// reload refetches the active tasks and regroups them by lane.
func (m *BoardModel) reload() error {
	tasks, err := m.store.ListActive(m.userID)
	if err != nil {
		return err
	}

	for i := range m.lanes {
		m.lanes[i] = nil
	}
	for _, task := range tasks {
		for i, status := range models.ActiveStatuses {
			if task.Status == status {
				m.lanes[i] = append(m.lanes[i], task)
				break
			}
		}
	}
	m.clampCursor()
	return nil
}

func (m *BoardModel) clampCursor() {
	if m.cursor >= len(m.lanes[m.lane]) {
		m.cursor = len(m.lanes[m.lane]) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BoardModel) selected() *models.Task {
	if len(m.lanes[m.lane]) == 0 {
		return nil
	}
	return &m.lanes[m.lane][m.cursor]
}

// Init implements tea.Model.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.lanes[m.lane])-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Left):
			if m.lane > 0 {
				m.lane--
				m.clampCursor()
			}

		case key.Matches(msg, m.keys.Right):
			if m.lane < len(m.lanes)-1 {
				m.lane++
				m.clampCursor()
			}

		case key.Matches(msg, m.keys.Move):
			if task := m.selected(); task != nil {
				next := models.ActiveStatuses[(m.lane+1)%len(models.ActiveStatuses)]
				_, err := m.store.UpdateTask(m.userID, task.ID, db.UpdateTaskRequest{Status: &next})
				if err != nil {
					m.err = err
					return m, nil
				}
				m.err = m.reload()
			}

		case key.Matches(msg, m.keys.Complete):
			if task := m.selected(); task != nil {
				completed := models.StatusCompleted
				_, err := m.store.UpdateTask(m.userID, task.ID, db.UpdateTaskRequest{Status: &completed})
				if err != nil {
					m.err = err
					return m, nil
				}
				m.err = m.reload()
			}

		case key.Matches(msg, m.keys.Important):
			if task := m.selected(); task != nil {
				flip := !task.IsImportant
				_, err := m.store.UpdateTask(m.userID, task.ID, db.UpdateTaskRequest{IsImportant: &flip})
				if err != nil {
					m.err = err
					return m, nil
				}
				m.err = m.reload()
			}

		case key.Matches(msg, m.keys.Reload):
			m.err = m.reload()
		}
	}

	return m, nil
}

var laneColors = map[string]string{
	models.StatusSoon: ColorLaneSoon,
	models.StatusNow:  ColorLaneNow,
	models.StatusHold: ColorLaneHold,
}

// View renders the three lanes side by side
func (m BoardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	laneWidth := m.width/3 - 2
	if laneWidth < 16 {
		laneWidth = 16
	}
	laneHeight := m.height - 3

	var columns []string
	for i, status := range models.ActiveStatuses {
		columns = append(columns, m.renderLane(i, status, laneWidth, laneHeight))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	bottom := m.help.View(m.keys)
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		bottom = errStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, board, "", bottom)
}

// renderLane renders one lane column
func (m BoardModel) renderLane(idx int, status string, width, height int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(laneColors[status])).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", status, len(m.lanes[idx]))))
	b.WriteString("\n\n")

	for row, task := range m.lanes[idx] {
		content := task.Content
		if len(content) > width-4 {
			content = content[:width-7] + "..."
		}

		marker := "  "
		if task.IsImportant {
			marker = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorImportant)).Render("! ")
		}

		line := marker + content
		if idx == m.lane && row == m.cursor {
			line = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorAccentBright)).
				Bold(true).
				Render("> " + content)
			if task.IsImportant {
				line = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorImportant)).Render("!") +
					lipgloss.NewStyle().
						Foreground(lipgloss.Color(ColorAccentBright)).
						Bold(true).
						Render("> "+content)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.lanes[idx]) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("  empty"))
		b.WriteString("\n")
	}

	borderColor := ColorBorder
	if idx == m.lane {
		borderColor = ColorAccentMain
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(width).
		Height(height).
		Padding(0, 1).
		Render(b.String())
}

// RunBoard runs the lane board TUI.
func RunBoard(store *db.Store, userID string) error {
	model := NewBoardModel(store, userID)
	if model.err != nil {
		return model.err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
