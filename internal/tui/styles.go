package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	Active        lipgloss.Color
	Done          lipgloss.Color
}{
	Primary:       lipgloss.Color("#6C5CE7"), // Purple
	Secondary:     lipgloss.Color("#A29BFE"), // Lavender
	Muted:         lipgloss.Color("#636E72"), // Gray
	Error:         lipgloss.Color("#D63031"), // Red
	Success:       lipgloss.Color("#00B894"), // Green
	Warning:       lipgloss.Color("#FDCB6E"), // Yellow
	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	Active:        lipgloss.Color("#74B9FF"), // Light blue
	Done:          lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderDate lipgloss.Style
	HeaderTime lipgloss.Style

	// Stats
	StatLabel    lipgloss.Style
	StatValue    lipgloss.Style
	Productivity lipgloss.Style
	BarFilled    lipgloss.Style
	BarEmpty     lipgloss.Style

	// Task list
	SelectionIndicator lipgloss.Style
	TaskID             lipgloss.Style
	TaskTitle          lipgloss.Style
	TaskTitleSelected  lipgloss.Style
	TaskTitleDone      lipgloss.Style
	CheckboxActive     lipgloss.Style
	CheckboxDone       lipgloss.Style
	EmptyList          lipgloss.Style

	// Input
	InputPrompt lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style
	Notice    lipgloss.Style
	ErrorMsg  lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
		HeaderDate: lipgloss.NewStyle().
			Foreground(Colors.Secondary),
		HeaderTime: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		StatValue: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal).
			Bold(true),
		Productivity: lipgloss.NewStyle().
			Foreground(Colors.Success).
			Bold(true),
		BarFilled: lipgloss.NewStyle().
			Foreground(Colors.Success),
		BarEmpty: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		SelectionIndicator: lipgloss.NewStyle().
			Foreground(Colors.Primary),
		TaskID: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		TaskTitle: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),
		TaskTitleSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),
		TaskTitleDone: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Strikethrough(true),
		CheckboxActive: lipgloss.NewStyle().
			Foreground(Colors.Active),
		CheckboxDone: lipgloss.NewStyle().
			Foreground(Colors.Done),
		EmptyList: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Warning).
			Padding(0, 2),
		DialogTitle: lipgloss.NewStyle().
			Foreground(Colors.Warning).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),
		Notice: lipgloss.NewStyle().
			Foreground(Colors.Warning),
		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
	}
}
