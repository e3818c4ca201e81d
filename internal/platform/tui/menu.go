package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/labyrinth/internal/core"
	"github.com/vovakirdan/labyrinth/internal/games/labyrinth"
	"github.com/vovakirdan/labyrinth/internal/registry"
	"github.com/vovakirdan/labyrinth/internal/storage"
)

// previewer is implemented by games that can describe their next maze.
type previewer interface {
	Preview(screenW, screenH int) labyrinth.Preview
}

// MenuItem is one maze variant on the start screen.
type MenuItem struct {
	GameID  string
	Title   string
	Best    int // best recorded score, 0 when unknown
	Played  int // recorded scores
	Preview labyrinth.Preview
	Record  *storage.Run // fewest moves on today's daily maze, nil if unsolved
}

// Menu styles
var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 2)
	menuCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(menuCardWidth)
	menuActiveCardStyle = menuCardStyle.
				BorderForeground(lipgloss.Color("229"))
	menuDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	menuNameStyle = lipgloss.NewStyle().
			Bold(true)
)

// menuCardWidth is the inner width of a variant card.
const menuCardWidth = 56

// MenuModel is the Bubble Tea model for the start screen.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a maze
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     loadMenuItems(store, cfg.ScreenW, cfg.ScreenH),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// loadMenuItems builds one item per registered variant with its stats and,
// for the daily challenge, today's record.
func loadMenuItems(store *storage.Store, screenW, screenH int) []MenuItem {
	var stats map[string]*storage.GameStats
	if store != nil {
		//nolint:errcheck // Menu works without stats
		stats, _ = store.GetAllGamesStats()
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, info := range games {
		item := MenuItem{GameID: info.ID, Title: info.Title}
		if st, ok := stats[info.ID]; ok {
			item.Best = st.HighScore
			item.Played = st.GamesCount
		}

		if game, err := registry.Create(info.ID); err == nil {
			if p, ok := game.(previewer); ok {
				item.Preview = p.Preview(screenW, screenH)
			}
		}
		if store != nil && item.Preview.Seed != 0 {
			b := item.Preview.Board
			if run, err := store.BestRunForSeed(info.ID, item.Preview.Seed, b.Width, b.Height); err == nil {
				item.Record = run
			}
		}

		items = append(items, item)
	}
	return items
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		// Board sizes and the daily record depend on the screen
		m.items = loadMenuItems(m.store, msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the start screen.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	blocks := []string{
		menuTitleStyle.Render("L A B Y R I N T H"),
		menuDimStyle.Render("Top-left entrance, bottom-right exit"),
		"",
	}
	for i, item := range m.items {
		blocks = append(blocks, m.renderItem(item, i == m.cursor))
	}
	blocks = append(blocks, "",
		menuDimStyle.Render("↑/↓ choose · enter play · tab records · q quit"))

	body := lipgloss.JoinVertical(lipgloss.Center, blocks...)
	return "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body) + "\n"
}

// renderItem draws one variant card.
func (m MenuModel) renderItem(item MenuItem, active bool) string {
	style := menuCardStyle
	marker := "  "
	if active {
		style = menuActiveCardStyle
		marker = "> "
	}

	lines := []string{marker + menuNameStyle.Render(item.Title)}
	lines = append(lines, "  "+menuDimStyle.Render(itemDetail(item)))
	for _, stat := range itemStats(item) {
		lines = append(lines, "  "+stat)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// itemDetail describes the maze the variant plays.
func itemDetail(item MenuItem) string {
	b := item.Preview.Board
	if item.Preview.Day == "" {
		return fmt.Sprintf("new %dx%d maze every run", b.Width, b.Height)
	}
	return fmt.Sprintf("%s · %dx%d · seed %d", item.Preview.Day, b.Width, b.Height, item.Preview.Seed)
}

// itemStats summarizes recorded play of the variant, one line per fact.
func itemStats(item MenuItem) []string {
	var parts []string
	if item.Played > 0 {
		parts = append(parts, fmt.Sprintf("best %d over %d runs", item.Best, item.Played))
	}
	if r := item.Record; r != nil {
		who := r.Player
		if who == "" {
			who = "local"
		}
		parts = append(parts, fmt.Sprintf("today's record %d moves by %s", r.Moves, who))
	}
	return parts
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
	}
	return result, nil
}
