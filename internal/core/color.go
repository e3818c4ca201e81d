package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
type Color uint8

// Colors used by the labyrinth renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorGray
	ColorBrightGreen
	ColorBrightYellow
)

// Semantic aliases so games do not hard-code palette choices.
const (
	ColorWall     = ColorGray
	ColorPlayer   = ColorBrightYellow
	ColorExit     = ColorBrightGreen
	ColorEntrance = ColorCyan
	ColorHint     = ColorMagenta
	ColorHUD      = ColorDefault
)
