package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/model"
	"github.com/nikbrunner/bmdash/internal/tui/layout"
)

// renderView creates the complete dashboard view.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeBookmarkForm, ModeCategoryForm, ModeRename, ModeRecolor,
		ModeConfirmDelete, ModeImport, ModeExport:
		return a.renderModal()
	}

	v := a.dash.View()
	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)

	var body string
	if a.tab == TabCategories {
		width := a.width - 4 - a.layoutConfig.Pane.ContentPadding
		body = a.styles.PaneActive.Width(width).Height(paneHeight).
			Render(a.renderCategoryList(v, width, paneHeight))
	} else {
		split := layout.CalculateSplit(a.width-4, a.layoutConfig.Pane)
		sidebar := a.styles.Pane.Width(split.Sidebar).Height(paneHeight).
			Render(a.renderFilterBar(v, split.Sidebar))
		main := a.styles.PaneActive.Width(split.Main).Height(paneHeight).
			Render(a.renderBookmarkList(v, split.Main, paneHeight))
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderTabs(v),
			a.renderSearchLine(v),
			body,
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderTabs renders the tab bar with the total bookmark count.
func (a App) renderTabs(v dashboard.View) string {
	tabs := make([]string, 0, 2)
	for _, t := range []Tab{TabBookmarks, TabCategories} {
		style := a.styles.Tab
		if t == a.tab {
			style = a.styles.TabActive
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	total := a.styles.Count.Render("  " + dashboard.CountLabel(v.Total))
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, total)...)
}

// renderSearchLine shows the search input while searching and the active
// query otherwise.
func (a App) renderSearchLine(v dashboard.View) string {
	if a.tab != TabBookmarks {
		return ""
	}
	if a.mode == ModeSearch {
		return a.styles.Search.Render("/ ") + a.search.Input.View()
	}
	if v.Query != "" {
		return a.styles.Search.Render("/ "+v.Query) + a.styles.Count.Render("  (esc to clear)")
	}
	return ""
}

// renderFilterBar renders "All" and every category as filter entries.
func (a App) renderFilterBar(v dashboard.View, width int) string {
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	counts := make(map[string]int, len(v.Categories))
	for _, c := range v.Categories {
		counts[c.ID] = c.Count
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Filter") + "\n")
	for _, f := range v.Filters {
		count := v.Total
		if f.ID != model.FilterAll {
			count = counts[f.ID]
		}
		label, _ := layout.TruncateWithPrefixSuffix(f.Label, itemWidth, "", fmt.Sprintf(" (%d)", count), a.layoutConfig.Text)

		marker := "  "
		style := a.styles.Filter
		if f.Active {
			marker = "▸ "
			style = a.styles.FilterActive
		}
		if f.Color != "" {
			style = style.Foreground(lipgloss.Color(f.Color))
		}
		b.WriteString(marker + style.Render(label) + "\n")
	}
	return b.String()
}

// renderBookmarkList renders the visible bookmark cards around the cursor.
func (a App) renderBookmarkList(v dashboard.View, width, height int) string {
	if v.Empty {
		msg := "No bookmarks yet. Press a to add one."
		if v.Query != "" || v.Filter != model.FilterAll {
			msg = "No bookmarks match."
		}
		return a.styles.Empty.Render(msg)
	}

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	visible := layout.CalculateVisibleCards(height, 0, a.layoutConfig.Pane.CardHeight)
	cursor := a.cursors[TabBookmarks]
	offset := layout.CalculateViewportOffset(cursor, len(v.Bookmarks), visible)
	end := min(offset+visible, len(v.Bookmarks))

	lines := make([]string, 0, (end-offset)*2)
	for i := offset; i < end; i++ {
		lines = append(lines, a.renderCard(v.Bookmarks[i], i == cursor, itemWidth)...)
	}
	return strings.Join(lines, "\n")
}

// renderCard renders one bookmark as a name line with its category badge
// and a URL line.
func (a App) renderCard(card dashboard.BookmarkCard, selected bool, maxWidth int) []string {
	badgeWidth := layout.VisibleLength(card.CategoryName) + 4
	name, _ := layout.TruncateText(card.Name, maxWidth-badgeWidth, a.layoutConfig.Text)
	url, _ := layout.TruncateText(card.URL, maxWidth-2, a.layoutConfig.Text)

	style := a.styles.Item
	if selected {
		style = a.styles.ItemSelected
	}
	return []string{
		style.Render(name) + "  " + a.styles.Badge(card.CategoryName, card.CategoryColor),
		"  " + a.styles.URL.Render(url),
	}
}

// renderCategoryList renders category cards with their bookmark counts.
func (a App) renderCategoryList(v dashboard.View, width, height int) string {
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	nameWidth := min(itemWidth/2, 30)
	cursor := a.cursors[TabCategories]
	visible := layout.CalculateVisibleCards(height, 0, 1)
	offset := layout.CalculateViewportOffset(cursor, len(v.Categories), visible)
	end := min(offset+visible, len(v.Categories))

	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		c := v.Categories[i]
		name, _ := layout.TruncateText(c.Name, nameWidth-2, a.layoutConfig.Text)
		badge := layout.PadRight(a.styles.Badge(name, c.Color), nameWidth)
		if i == cursor {
			badge = a.styles.ItemSelected.Render(layout.PadRight("● "+name, nameWidth))
		}

		meta := c.CountLabel + "  " + c.Color
		if c.IsDefault {
			meta += "  default"
		}
		lines = append(lines, badge+"  "+a.styles.Count.Render(meta))
	}
	return strings.Join(lines, "\n")
}

// renderModal renders the dialog for the current mode.
func (a App) renderModal() string {
	var title, content strings.Builder

	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	switch a.mode {
	case ModeBookmarkForm:
		title.WriteString(a.dash.View().FormTitle() + "\n\n")
		content.WriteString(a.fieldLabel("Name:", a.bookmarkForm.Focus == fieldName))
		content.WriteString(a.bookmarkForm.NameInput.View())
		content.WriteString("\n\n")
		content.WriteString(a.fieldLabel("URL:", a.bookmarkForm.Focus == fieldURL))
		content.WriteString(a.bookmarkForm.URLInput.View())
		content.WriteString("\n\n")
		content.WriteString(a.fieldLabel("Category:", a.bookmarkForm.Focus == fieldCategory))
		content.WriteString(a.renderCategorySelector())

	case ModeCategoryForm:
		title.WriteString("Add Category\n\n")
		content.WriteString(a.fieldLabel("Name:", a.categoryForm.Focus == 0))
		content.WriteString(a.categoryForm.NameInput.View())
		content.WriteString("\n\n")
		content.WriteString(a.fieldLabel("Color:", a.categoryForm.Focus == 1))
		content.WriteString(a.categoryForm.ColorInput.View())
		if color := a.categoryForm.ColorInput.Value(); color != "" {
			content.WriteString("  " + a.styles.Badge("preview", color))
		}

	case ModeRename:
		title.WriteString("Rename Category\n\n")
		content.WriteString("Name:\n")
		content.WriteString(a.prompt.Input.View())

	case ModeRecolor:
		title.WriteString("Change Color\n\n")
		content.WriteString("Hex color:\n")
		content.WriteString(a.prompt.Input.View())

	case ModeImport:
		title.WriteString("Import\n\n")
		content.WriteString("Backup (.json) or browser bookmarks (.html):\n")
		content.WriteString(a.prompt.Input.View())

	case ModeExport:
		title.WriteString("Export\n\n")
		content.WriteString("Path (.json or .html):\n")
		content.WriteString(a.prompt.Input.View())

	case ModeConfirmDelete:
		if a.confirm.CategoryID != "" {
			title.WriteString("Delete category?\n\n")
			content.WriteString(fmt.Sprintf("%q will be deleted.\n", a.confirm.Label))
			content.WriteString(a.styles.Help.Render("Its bookmarks move to General.") + "\n\n")
		} else {
			title.WriteString("Delete bookmark?\n\n")
			content.WriteString(fmt.Sprintf("%q will be deleted.\n", a.confirm.Label))
			content.WriteString(a.styles.Help.Render("This action cannot be undone.") + "\n\n")
		}
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "y/Enter", Desc: "delete"},
			{Key: "n/Esc", Desc: "cancel"},
		}))
	}

	if a.mode != ModeConfirmDelete {
		content.WriteString("\n\n")
		content.WriteString(a.renderHints(a.getContextualHints()))
	}
	if a.messageText != "" {
		content.WriteString("\n\n" + a.renderMessageLine())
	}

	modal := modalStyle.Render(a.styles.Title.Render(title.String()) + content.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

func (a App) fieldLabel(label string, focused bool) string {
	if focused {
		return a.styles.Title.Render(label) + "\n"
	}
	return label + "\n"
}

// renderCategorySelector renders the scrollable category list of the
// bookmark form.
func (a App) renderCategorySelector() string {
	options := a.dash.View().CategoryOptions
	if len(options) == 0 {
		return a.styles.Empty.Render("no categories")
	}

	idx := a.bookmarkForm.CategoryIdx
	start, end := layout.CalculateVisibleListItems(a.layoutConfig.Modal.SelectorMaxVisible, idx, len(options))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == idx {
			lines = append(lines, a.styles.ItemSelected.Render("▸ "+options[i].Name))
		} else {
			lines = append(lines, a.styles.Item.Render("  "+options[i].Name))
		}
	}
	return strings.Join(lines, "\n")
}

// renderHelpBar renders the message line and keybind hints at the bottom.
func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: Local (contextual) keyboard hints
	if localHints := a.renderHints(a.getContextualHints()); localHints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Local  ")+localHints)
	}

	// Line 3: Global keyboard hints (only in normal mode)
	if a.mode == ModeNormal {
		lines = append(lines, a.styles.HintLabel.Render("Global ")+a.renderHintSlice(a.getGlobalHints()))
	}

	return strings.Join(lines, "\n")
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderHelpOverlay renders the full key reference.
func (a App) renderHelpOverlay() string {
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("bookmarks") + "\n")
	left.WriteString("j/k      move\n")
	left.WriteString("g/G      top/bottom\n")
	left.WriteString("[ ]      filter\n")
	left.WriteString("/        search\n")
	left.WriteString("esc      clear search\n")
	left.WriteString("o/Enter  open url\n")
	left.WriteString("Y        yank url\n")
	left.WriteString("a        add\n")
	left.WriteString("e        edit\n")
	left.WriteString("d        delete\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("form") + "\n")
	left.WriteString("tab      next field\n")
	left.WriteString("C-n/C-p  category\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("categories") + "\n")
	right.WriteString("a        add\n")
	right.WriteString("r        rename\n")
	right.WriteString("c        color\n")
	right.WriteString("d        delete\n")
	right.WriteString("K/J      reorder\n")
	right.WriteString("Enter    show bookmarks\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("data") + "\n")
	right.WriteString("i        import\n")
	right.WriteString("x        export\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("app") + "\n")
	right.WriteString("tab      switch tab\n")
	right.WriteString("?        help\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/q/esc] close"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
