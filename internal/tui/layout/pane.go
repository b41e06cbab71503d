package layout

// SplitLayout holds the widths of the sidebar and the main pane.
type SplitLayout struct {
	Sidebar int
	Main    int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateSplit divides the terminal width between the category sidebar
// and the bookmark pane. The sidebar is clamped first; the main pane gets
// the rest but never less than MinMainWidth.
func CalculateSplit(terminalWidth int, cfg PaneConfig) SplitLayout {
	sidebar := terminalWidth * cfg.SidebarWidthPercent / 100
	sidebar = min(max(sidebar, cfg.MinSidebarWidth), cfg.MaxSidebarWidth)

	main := terminalWidth - sidebar - cfg.SplitWidthOffset
	if main < cfg.MinMainWidth {
		main = cfg.MinMainWidth
	}

	return SplitLayout{Sidebar: sidebar, Main: main}
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleCards computes how many cards of cardHeight lines fit in
// a pane after headerLines. Always at least one.
func CalculateVisibleCards(paneHeight, headerLines, cardHeight int) int {
	if cardHeight < 1 {
		cardHeight = 1
	}
	n := (paneHeight - headerLines) / cardHeight
	if n < 1 {
		return 1
	}
	return n
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
