package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show scene list sidebar
	sidebarWidth       = 20  // Width of scene list sidebar
	maxSessions        = 100 // Max sessions to load
)

// allScenes is the pseudo-scene that lists every session.
var allScenes = registry.SceneInfo{ID: "", Title: "All scenes"}

// HistoryKeyMap defines the key bindings for the session history.
type HistoryKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Back      key.Binding
	Quit      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
}

// ShortHelp returns keybindings to show in the mini help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.PrevScene, k.Back}
}

// FullHelp returns keybindings for the expanded help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Left, k.Right, k.NextScene, k.PrevScene},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns the default history key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev scene"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next scene"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next scene"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev scene"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the session history screen.
type HistoryModel struct {
	scenes      []registry.SceneInfo
	cursor      int
	store       *storage.Store
	sessions    []storage.Session
	stats       *storage.SceneStats
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	scenes := append([]registry.SceneInfo{allScenes}, registry.List()...)

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		scenes:      scenes,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadSessions()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Scene", Width: 8},
		{Title: "Ticks", Width: 7},
		{Title: "Spawned", Width: 8},
		{Title: "Peak", Width: 6},
		{Title: "Time", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // Header, stats, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadSessions loads sessions and stats for the selected scene.
func (m *HistoryModel) loadSessions() {
	m.sessions, m.stats = nil, nil
	if m.store != nil {
		sceneID := m.scenes[m.cursor].ID
		if sessions, err := m.store.RecentSessions(sceneID, maxSessions); err == nil {
			m.sessions = sessions
		}
		if sceneID != "" {
			if stats, err := m.store.GetSceneStats(sceneID); err == nil {
				m.stats = stats
			}
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current sessions.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = table.Row{
			s.CreatedAt.Format("Jan 02 15:04"),
			s.SceneID,
			fmt.Sprintf("%d", s.Ticks),
			fmt.Sprintf("%d", s.Spawned),
			fmt.Sprintf("%d", s.PeakActive),
			s.Duration.Truncate(time.Second).String(),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScene), key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % len(m.scenes)
			m.loadSessions()
			return m, nil

		case key.Matches(msg, m.keys.PrevScene), key.Matches(msg, m.keys.Left):
			m.cursor = (m.cursor + len(m.scenes) - 1) % len(m.scenes)
			m.loadSessions()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("SESSIONS - %s", m.scenes[m.cursor].Title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	if line := m.statsLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(centerText(line, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected scene.
func (m HistoryModel) statsLine() string {
	if m.stats == nil || m.stats.Sessions == 0 {
		return ""
	}
	return fmt.Sprintf("%d sessions | %d ticks | %d grains spawned | peak %d | %s played",
		m.stats.Sessions, m.stats.TotalTicks, m.stats.TotalSpawned,
		m.stats.PeakActive, m.stats.TotalDuration.Truncate(time.Second))
}

// renderWideLayout renders the history with a sidebar for scene selection.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Scenes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.scenes {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := s.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the current scene name above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	b.WriteString(centerText(fmt.Sprintf("< %s >", m.scenes[m.cursor].Title), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPlay a scene to start the history!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the session history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
