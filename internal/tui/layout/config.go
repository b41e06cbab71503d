package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + tab bar (1) + search line (1) + pane borders (2) + help bar (3) = 8
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// SidebarWidthPercent is the share of the terminal used by the category sidebar.
	SidebarWidthPercent int

	// MinSidebarWidth and MaxSidebarWidth clamp the sidebar.
	MinSidebarWidth int
	MaxSidebarWidth int

	// SplitWidthOffset is subtracted for the borders and gap of both panes.
	SplitWidthOffset int

	// MinMainWidth is the minimum width of the bookmark pane.
	MinMainWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int

	// CardHeight is the number of lines one bookmark card takes.
	CardHeight int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// SelectorMaxVisible: max categories shown in the bookmark form selector.
	SelectorMaxVisible int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	NameCharLimit   int
	URLCharLimit    int
	ColorCharLimit  int
	PathCharLimit   int
	SearchCharLimit int

	StandardWidth int // name, URL, color and path prompts
	SearchWidth   int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:     8,
			MinHeight:           5,
			SidebarWidthPercent: 25,
			MinSidebarWidth:     18,
			MaxSidebarWidth:     32,
			SplitWidthOffset:    8,
			MinMainWidth:        30,
			ContentPadding:      4,
			CardHeight:          2,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			MinWidth:             50,
			MaxWidth:             80,
			SelectorMaxVisible:   6,
			HelpLeftColumnWidth:  22,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			NameCharLimit:   100,
			URLCharLimit:    500,
			ColorCharLimit:  7,
			PathCharLimit:   500,
			SearchCharLimit: 100,
			StandardWidth:   40,
			SearchWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
