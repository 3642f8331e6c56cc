package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PokeRed    = lipgloss.Color("#EF4444")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Gold       = lipgloss.Color("#F59E0B")
	Blue       = lipgloss.Color("#3B82F6")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PokeRed)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(PokeRed)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(PokeRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(PokeRed).
			Padding(0, 1)
)

// Raw capture status characters (unstyled)
const (
	CapturedChar = "●"
	MissingChar  = "○"
)

// Capture status indicator styles
var (
	CapturedStyle = lipgloss.NewStyle().Foreground(Green)
	MissingStyle  = lipgloss.NewStyle().Foreground(DimGray)
)

// Pre-rendered capture indicators (for non-selection contexts)
var (
	CapturedDot = CapturedStyle.Render(CapturedChar)
	MissingDot  = MissingStyle.Render(MissingChar)
)

// ProgressStyle returns the color band for a completion percentage:
// gold at 100, green from 75, blue from 50, gray below.
func ProgressStyle(percent int) lipgloss.Style {
	switch {
	case percent >= 100:
		return lipgloss.NewStyle().Foreground(Gold).Bold(true)
	case percent >= 75:
		return lipgloss.NewStyle().Foreground(Green)
	case percent >= 50:
		return lipgloss.NewStyle().Foreground(Blue)
	default:
		return lipgloss.NewStyle().Foreground(LightGray)
	}
}

// SpinnerFrames for loading animation
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
