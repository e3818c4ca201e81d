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

	"github.com/vovakirdan/labyrinth/internal/registry"
	"github.com/vovakirdan/labyrinth/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the view list sidebar
	sidebarWidth       = 20  // Width of the view list sidebar
	maxScores          = 100 // Max scores to load
	maxRuns            = 50  // Max runs to load
)

// Scoreboard styles
var (
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			MarginBottom(1)
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	boardEmptyStyle = boardDimStyle.
			Italic(true).
			Padding(2, 4)
	boardActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229"))
	boardActiveTabStyle = boardActiveStyle.
				Background(lipgloss.Color("57")).
				Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next list"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev list"),
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

// boardView is one list the scoreboard can show.
type boardView struct {
	name    string // sidebar label
	title   string // heading above the table
	empty   string // shown when the list has no rows
	columns func(width int) []table.Column
	rows    func(store *storage.Store) ([]table.Row, error)
}

// scoreboardViews returns the high score list of every variant followed by
// the recent runs of everyone and, when player is set, the player's own runs.
func scoreboardViews(player string) []boardView {
	var views []boardView
	for _, g := range registry.List() {
		gameID := g.ID
		views = append(views, boardView{
			name:    g.Title,
			title:   "HIGH SCORES - " + g.Title,
			empty:   "No scores recorded yet.\nEscape a maze to set a high score!",
			columns: scoreColumns,
			rows: func(store *storage.Store) ([]table.Row, error) {
				scores, err := store.TopScores(gameID, maxScores)
				return scoreRows(scores), err
			},
		})
	}

	views = append(views, boardView{
		name:    "Recent runs",
		title:   "RECENT RUNS",
		empty:   "No runs recorded yet.\nEscape a maze to see it here!",
		columns: runColumns,
		rows: func(store *storage.Store) ([]table.Row, error) {
			runs, err := store.RecentRuns(maxRuns)
			return runRows(runs), err
		},
	})

	if player != "" {
		views = append(views, boardView{
			name:    "Your runs",
			title:   "RUNS OF " + strings.ToUpper(player),
			empty:   "You have not finished a maze yet.",
			columns: runColumns,
			rows: func(store *storage.Store) ([]table.Row, error) {
				runs, err := store.PlayerRuns(player, maxRuns)
				return runRows(runs), err
			},
		})
	}
	return views
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	views       []boardView
	cursor      int
	store       *storage.Store
	rowCount    int
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show the view list sidebar
}

// NewScoreboardModel creates a new scoreboard model. player adds a list of
// that player's own runs; pass "" to leave it out.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		views:       scoreboardViews(player),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()

	return m
}

// current returns the selected view.
func (m ScoreboardModel) current() boardView {
	return m.views[m.cursor]
}

// load rebuilds the table for the selected view.
func (m *ScoreboardModel) load() {
	view := m.current()

	t := table.New(
		table.WithColumns(view.columns(m.tableWidth())),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)
	m.table = styleTable(t)

	var rows []table.Row
	if m.store != nil {
		if r, err := view.rows(m.store); err == nil {
			rows = r
		}
	}
	m.rowCount = len(rows)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// tableWidth returns the width available to the table.
func (m ScoreboardModel) tableWidth() int {
	w := m.width - 4 // Margins
	if m.showSidebar {
		w -= sidebarWidth + 3 // Sidebar + border + gap
	}
	return w
}

// scoreColumns returns the high score columns, widening the date column
// when there is room.
func scoreColumns(width int) []table.Column {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 18},
	}
	if width > 40 {
		columns[1].Width = 12
		columns[2].Width = min(width-22, 20)
	}
	return columns
}

// runColumns returns the columns of a run list.
func runColumns(int) []table.Column {
	return []table.Column{
		{Title: "Player", Width: 10},
		{Title: "Game", Width: 8},
		{Title: "Size", Width: 7},
		{Title: "Moves", Width: 9},
		{Title: "Eff", Width: 5},
		{Title: "Score", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 12},
	}
}

// styleTable applies the scoreboard table styles.
func styleTable(t table.Model) table.Model {
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

// scoreRows formats high scores as table rows.
func scoreRows(scores []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// runRows formats runs as table rows.
func runRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		game := "classic"
		if strings.HasSuffix(r.GameID, "_daily") {
			game = "daily"
		}
		rows[i] = table.Row{
			player,
			game,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d/%d", r.Moves, r.Optimal),
			fmt.Sprintf("%.0f%%", r.Efficiency()*100),
			fmt.Sprintf("%d", r.Score),
			r.Duration.Round(time.Second).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextView):
			m.cursor = (m.cursor + 1) % len(m.views)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.cursor = (m.cursor + len(m.views) - 1) % len(m.views)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText(m.current().title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the list of views next to the table.
func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Records\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range m.views {
		line := "  " + truncate(v.name, sidebarWidth-6)
		if i == m.cursor {
			line = boardActiveStyle.Render("> " + truncate(v.name, sidebarWidth-6))
		}
		sidebar.WriteString(line)
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		boardFrameStyle.Width(sidebarWidth).Render(sidebar.String()),
		"  ",
		boardFrameStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	tabs := make([]string, len(m.views))
	for i, v := range m.views {
		name := truncate(v.name, 10)
		if i == m.cursor {
			tabs[i] = boardActiveTabStyle.Render(name)
		} else {
			tabs[i] = boardDimStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.current().name)
	}

	return centerText(tabLine, m.width) + "\n\n" +
		centerText(boardFrameStyle.Render(m.renderTableContent()), m.width)
}

// renderTableContent renders the table or the view's empty message.
func (m ScoreboardModel) renderTableContent() string {
	if m.rowCount == 0 {
		return boardEmptyStyle.Render(m.current().empty)
	}
	return m.table.View()
}

// truncate shortens s to at most n bytes, marking the cut with a dot.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, player, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
