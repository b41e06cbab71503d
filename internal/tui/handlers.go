package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmdash/internal/config"
	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/exporter"
	"github.com/nikbrunner/bmdash/internal/importer"
	"github.com/nikbrunner/bmdash/internal/logger"
	"github.com/nikbrunner/bmdash/internal/model"
)

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeHelp:
		if key.Matches(msg, a.keys.Help, a.keys.Quit, a.keys.Cancel) {
			a.mode = ModeNormal
		}
		return a, nil
	case ModeConfirmDelete:
		return a.handleConfirmDelete(msg)
	case ModeSearch:
		return a.handleSearch(msg)
	case ModeBookmarkForm:
		return a.handleBookmarkForm(msg)
	case ModeCategoryForm:
		return a.handleCategoryForm(msg)
	case ModeRename, ModeRecolor, ModeImport, ModeExport:
		return a.handlePrompt(msg)
	}
	return a.handleNormal(msg)
}

func (a App) handleNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
		return a, nil

	case key.Matches(msg, a.keys.NextTab):
		if a.tab == TabBookmarks {
			a.tab = TabCategories
		} else {
			a.tab = TabBookmarks
		}
		a.clampCursor()
		return a, nil

	case key.Matches(msg, a.keys.Import):
		a.prompt.Open("path/to/backup.json", "", "")
		a.mode = ModeImport
		return a, nil

	case key.Matches(msg, a.keys.Export):
		a.prompt.Open("export path", exporter.DefaultExportPath(a.exportDir, exporter.FormatJSON, a.now()), "")
		a.mode = ModeExport
		return a, nil

	case key.Matches(msg, a.keys.Down):
		if a.cursors[a.tab] < len(a.Items())-1 {
			a.cursors[a.tab]++
		}
		return a, nil

	case key.Matches(msg, a.keys.Up):
		if a.cursors[a.tab] > 0 {
			a.cursors[a.tab]--
		}
		return a, nil

	case key.Matches(msg, a.keys.Top):
		a.cursors[a.tab] = 0
		return a, nil

	case key.Matches(msg, a.keys.Bottom):
		a.cursors[a.tab] = len(a.Items()) - 1
		a.clampCursor()
		return a, nil
	}

	if a.tab == TabCategories {
		return a.handleCategoryTab(msg)
	}
	return a.handleBookmarkTab(msg)
}

func (a App) handleBookmarkTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		if a.dash.State().Query != "" {
			a.dash.ClearSearch()
			a.search.Input.Reset()
			a.clampCursor()
		}
		return a, nil

	case key.Matches(msg, a.keys.Search):
		a.search.Input.SetValue(a.dash.State().Query)
		a.search.Input.CursorEnd()
		a.mode = ModeSearch
		cmd := a.search.Input.Focus()
		return a, cmd

	case key.Matches(msg, a.keys.PrevFilter):
		cmd := a.cycleFilter(-1)
		return a, cmd

	case key.Matches(msg, a.keys.NextFilter):
		cmd := a.cycleFilter(1)
		return a, cmd

	case key.Matches(msg, a.keys.Add):
		a.openBookmarkForm(nil)
		return a, nil
	}

	item, ok := a.selected()
	if !ok {
		return a, nil
	}
	b := item.Bookmark

	switch {
	case key.Matches(msg, a.keys.Edit):
		if _, err := a.dash.BeginEdit(b.ID); err != nil {
			cmd := a.setError(err)
			return a, cmd
		}
		a.openBookmarkForm(&b.Bookmark)
		return a, nil

	case key.Matches(msg, a.keys.Delete):
		return a.askDelete(ConfirmState{BookmarkID: b.ID, Label: b.Name})

	case key.Matches(msg, a.keys.Open):
		if a.openURL == nil {
			return a, nil
		}
		open, url := a.openURL, b.URL
		return a, func() tea.Msg {
			return openDoneMsg{url: url, err: open(url)}
		}

	case key.Matches(msg, a.keys.YankURL):
		if err := a.copyText(b.URL); err != nil {
			a.log.Warn("clipboard write failed", logger.Error(err))
			cmd := a.setMessage(MessageError, "Could not copy URL!")
			return a, cmd
		}
		cmd := a.setMessage(MessageSuccess, "URL copied to clipboard!")
		return a, cmd
	}

	return a, nil
}

func (a App) handleCategoryTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Add) {
		a.categoryForm.Reset(model.DefaultColor)
		a.mode = ModeCategoryForm
		return a, nil
	}

	item, ok := a.selected()
	if !ok {
		return a, nil
	}
	c := item.Category
	cursor := a.cursors[TabCategories]
	categories := a.dash.State().Categories

	switch {
	case key.Matches(msg, a.keys.Open):
		// Show the category's bookmarks.
		if err := a.dash.SetFilter(c.ID); err != nil {
			cmd := a.setError(err)
			return a, cmd
		}
		a.tab = TabBookmarks
		a.cursors[TabBookmarks] = 0
		return a, nil

	case key.Matches(msg, a.keys.Rename):
		a.prompt.Open("Category name", c.Name, c.ID)
		a.mode = ModeRename
		return a, nil

	case key.Matches(msg, a.keys.Recolor):
		a.prompt.Open("#RRGGBB", c.Color, c.ID)
		a.mode = ModeRecolor
		return a, nil

	case key.Matches(msg, a.keys.Delete):
		if c.IsDefault {
			cmd := a.setError(model.ErrDefaultCategory)
			return a, cmd
		}
		return a.askDelete(ConfirmState{CategoryID: c.ID, Label: c.Name})

	case key.Matches(msg, a.keys.MoveUp):
		if cursor == 0 {
			return a, nil
		}
		if err := a.dash.MoveCategory(a.ctx, c.ID, categories[cursor-1].ID); err != nil {
			cmd := a.setError(err)
			return a, cmd
		}
		a.cursors[TabCategories]--
		cmd := a.setMessage(MessageSuccess, dashboard.MsgCategoryMoved)
		return a, cmd

	case key.Matches(msg, a.keys.MoveDown):
		if cursor >= len(categories)-1 {
			return a, nil
		}
		if err := a.dash.MoveCategory(a.ctx, c.ID, categories[cursor+1].ID); err != nil {
			cmd := a.setError(err)
			return a, cmd
		}
		a.cursors[TabCategories]++
		cmd := a.setMessage(MessageSuccess, dashboard.MsgCategoryMoved)
		return a, cmd
	}

	return a, nil
}

// cycleFilter moves the active filter delta steps through "all" and the
// categories, wrapping at both ends.
func (a *App) cycleFilter(delta int) tea.Cmd {
	filters := a.dash.View().Filters
	active := 0
	for i, f := range filters {
		if f.Active {
			active = i
			break
		}
	}
	next := (active + delta + len(filters)) % len(filters)
	if err := a.dash.SetFilter(filters[next].ID); err != nil {
		return a.setError(err)
	}
	a.cursors[TabBookmarks] = 0
	return nil
}

func (a App) handleSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.dash.ClearSearch()
		a.search.Input.Reset()
		a.search.Input.Blur()
		a.mode = ModeNormal
		a.clampCursor()
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		a.search.Input.Blur()
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	a.dash.SetSearch(a.search.Input.Value())
	a.cursors[TabBookmarks] = 0
	return a, cmd
}

// openBookmarkForm opens the add form, or the edit form when editing is
// set. The selector starts at the category the dashboard preselects.
func (a *App) openBookmarkForm(editing *model.Bookmark) {
	a.bookmarkForm.Reset()
	if editing != nil {
		a.bookmarkForm.Editing = true
		a.bookmarkForm.NameInput.SetValue(editing.Name)
		a.bookmarkForm.URLInput.SetValue(editing.URL)
	}
	for i, opt := range a.dash.View().CategoryOptions {
		if opt.Selected {
			a.bookmarkForm.CategoryIdx = i
			break
		}
	}
	a.mode = ModeBookmarkForm
}

func (a App) handleBookmarkForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.bookmarkForm
	options := a.dash.View().CategoryOptions

	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		if f.Editing {
			a.dash.CancelEdit()
			cmd := a.setMessage(MessageInfo, dashboard.MsgEditCancelled)
			return a, cmd
		}
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		return a.submitBookmarkForm()

	case key.Matches(msg, a.keys.NextCategory):
		if len(options) > 0 {
			f.CategoryIdx = (f.CategoryIdx + 1) % len(options)
		}
		return a, nil

	case key.Matches(msg, a.keys.PrevCategory):
		if len(options) > 0 {
			f.CategoryIdx = (f.CategoryIdx - 1 + len(options)) % len(options)
		}
		return a, nil

	case key.Matches(msg, a.keys.NextField):
		f.focus((f.Focus + 1) % bookmarkFieldCount)
		return a, nil

	case key.Matches(msg, a.keys.PrevField):
		f.focus((f.Focus - 1 + bookmarkFieldCount) % bookmarkFieldCount)
		return a, nil
	}

	var cmd tea.Cmd
	switch f.Focus {
	case fieldName:
		f.NameInput, cmd = f.NameInput.Update(msg)
	case fieldURL:
		f.URLInput, cmd = f.URLInput.Update(msg)
	case fieldCategory:
		// h/l also cycle the selector while it has focus.
		switch msg.String() {
		case "l", "right":
			if len(options) > 0 {
				f.CategoryIdx = (f.CategoryIdx + 1) % len(options)
			}
		case "h", "left":
			if len(options) > 0 {
				f.CategoryIdx = (f.CategoryIdx - 1 + len(options)) % len(options)
			}
		}
	}
	return a, cmd
}

func (a App) submitBookmarkForm() (tea.Model, tea.Cmd) {
	f := &a.bookmarkForm
	in := model.BookmarkInput{
		Name: f.NameInput.Value(),
		URL:  f.URLInput.Value(),
	}
	if options := a.dash.View().CategoryOptions; f.CategoryIdx < len(options) {
		in.Category = options[f.CategoryIdx].ID
	}

	var err error
	success := dashboard.MsgBookmarkAdded
	if f.Editing {
		_, err = a.dash.SaveEdit(a.ctx, in)
		success = dashboard.MsgBookmarkUpdated
	} else {
		_, err = a.dash.AddBookmark(a.ctx, in)
	}

	if err != nil {
		// A failed save still applied the change in memory.
		if errors.Is(err, dashboard.ErrPersist) {
			a.mode = ModeNormal
		}
		cmd := a.setError(err)
		return a, cmd
	}

	a.mode = ModeNormal
	if !f.Editing {
		a.cursors[TabBookmarks] = 0
	}
	a.clampCursor()
	cmd := a.setMessage(MessageSuccess, success)
	return a, cmd
}

func (a App) handleCategoryForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.categoryForm

	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		_, err := a.dash.AddCategory(a.ctx, model.CategoryInput{
			Name:  f.NameInput.Value(),
			Color: f.ColorInput.Value(),
		})
		if err != nil {
			if errors.Is(err, dashboard.ErrPersist) {
				a.mode = ModeNormal
			}
			cmd := a.setError(err)
			return a, cmd
		}
		a.mode = ModeNormal
		a.cursors[TabCategories] = len(a.dash.State().Categories) - 1
		cmd := a.setMessage(MessageSuccess, dashboard.MsgCategoryAdded)
		return a, cmd

	case key.Matches(msg, a.keys.NextField), key.Matches(msg, a.keys.PrevField):
		f.focus(1 - f.Focus)
		return a, nil
	}

	var cmd tea.Cmd
	if f.Focus == 0 {
		f.NameInput, cmd = f.NameInput.Update(msg)
	} else {
		f.ColorInput, cmd = f.ColorInput.Update(msg)
	}
	return a, cmd
}

func (a App) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.prompt.Input.Blur()
		a.mode = ModeNormal
		return a, nil
	case key.Matches(msg, a.keys.Confirm):
		return a.submitPrompt()
	}

	var cmd tea.Cmd
	a.prompt.Input, cmd = a.prompt.Input.Update(msg)
	return a, cmd
}

func (a App) submitPrompt() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(a.prompt.Input.Value())
	id := a.prompt.TargetID

	switch a.mode {
	case ModeRename:
		changed, err := a.dash.RenameCategory(a.ctx, id, value)
		if err != nil {
			if errors.Is(err, dashboard.ErrPersist) {
				a.mode = ModeNormal
			}
			cmd := a.setError(err)
			return a, cmd
		}
		a.mode = ModeNormal
		if !changed {
			return a, nil
		}
		cmd := a.setMessage(MessageSuccess, dashboard.MsgCategoryRenamed)
		return a, cmd

	case ModeRecolor:
		if err := a.dash.RecolorCategory(a.ctx, id, value); err != nil {
			if errors.Is(err, dashboard.ErrPersist) {
				a.mode = ModeNormal
			}
			cmd := a.setError(err)
			return a, cmd
		}
		a.mode = ModeNormal
		cmd := a.setMessage(MessageSuccess, dashboard.MsgCategoryRecolor)
		return a, cmd

	case ModeImport:
		if value == "" {
			cmd := a.setMessage(MessageError, dashboard.MsgSelectFileFirst)
			return a, cmd
		}
		a.mode = ModeNormal
		path := config.ExpandHome(value)
		cmd := a.setMessage(MessageInfo, "Importing "+filepath.Base(path)+"...")
		return a, tea.Batch(cmd, readImport(path))

	case ModeExport:
		a.mode = ModeNormal
		doc, err := a.dash.Export()
		if err != nil {
			cmd := a.setError(err)
			return a, cmd
		}
		path := value
		if path == "" {
			path = exporter.DefaultExportPath(a.exportDir, exporter.FormatJSON, a.now())
		}
		path = config.ExpandHome(path)
		format := exporter.FormatJSON
		if ext := strings.ToLower(filepath.Ext(path)); ext == ".html" || ext == ".htm" {
			format = exporter.FormatHTML
		}
		return a, func() tea.Msg {
			return exportDoneMsg{path: path, err: exporter.WriteFile(path, format, doc)}
		}
	}

	a.mode = ModeNormal
	return a, nil
}

// readImport parses the file off the update loop.
func readImport(path string) tea.Cmd {
	return func() tea.Msg {
		payload, err := importer.ParseFile(path)
		return importDoneMsg{path: path, payload: payload, err: err}
	}
}

func (a *App) finishImport(msg importDoneMsg) tea.Cmd {
	if msg.err != nil {
		a.log.Warn("import failed", logger.String("path", msg.path), logger.Error(msg.err))
		if errors.Is(msg.err, model.ErrInvalidImport) {
			return a.setError(msg.err)
		}
		return a.setMessage(MessageError, dashboard.MsgImportReadFailed)
	}

	res, err := a.dash.Import(a.ctx, msg.payload)
	if err != nil {
		return a.setError(err)
	}
	a.clampCursor()

	text := dashboard.ImportMessage(res)
	if msg.payload.Skipped > 0 {
		text += fmt.Sprintf(" (%d invalid links skipped)", msg.payload.Skipped)
	}
	return a.setMessage(MessageSuccess, text)
}

// askDelete deletes right away unless deletes need confirmation.
func (a App) askDelete(target ConfirmState) (tea.Model, tea.Cmd) {
	if !a.confirmDelete {
		cmd := a.performDelete(target)
		return a, cmd
	}
	a.confirm = target
	a.mode = ModeConfirmDelete
	return a, nil
}

func (a App) handleConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		a.mode = ModeNormal
		cmd := a.performDelete(a.confirm)
		return a, cmd
	case "n", "N", "esc", "q":
		a.mode = ModeNormal
		a.confirm = ConfirmState{}
	}
	return a, nil
}

func (a *App) performDelete(target ConfirmState) tea.Cmd {
	defer a.clampCursor()

	if target.CategoryID != "" {
		if _, err := a.dash.DeleteCategory(a.ctx, target.CategoryID); err != nil {
			return a.setError(err)
		}
		return a.setMessage(MessageSuccess, dashboard.MsgCategoryDeleted)
	}

	if _, err := a.dash.DeleteBookmark(a.ctx, target.BookmarkID); err != nil {
		return a.setError(err)
	}
	return a.setMessage(MessageSuccess, dashboard.MsgBookmarkDeleted)
}
