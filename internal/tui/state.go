package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/bmdash/internal/tui/layout"
)

// Tab is one of the two top-level views.
type Tab int

const (
	TabBookmarks Tab = iota
	TabCategories
)

func (t Tab) String() string {
	if t == TabCategories {
		return "Categories"
	}
	return "Bookmarks"
}

// Mode is the interaction mode of the App.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeBookmarkForm
	ModeCategoryForm
	ModeRename
	ModeRecolor
	ModeConfirmDelete
	ModeImport
	ModeExport
	ModeHelp
)

// MessageType styles the transient message line.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// Bookmark form fields, in focus order.
const (
	fieldName = iota
	fieldURL
	fieldCategory
	bookmarkFieldCount
)

// BookmarkFormState holds the add/edit bookmark form.
type BookmarkFormState struct {
	NameInput   textinput.Model
	URLInput    textinput.Model
	CategoryIdx int // index into the category selector
	Focus       int
	Editing     bool
}

// NewBookmarkFormState creates a BookmarkFormState with initialized inputs.
func NewBookmarkFormState(cfg layout.LayoutConfig) BookmarkFormState {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = cfg.Input.NameCharLimit
	name.Width = cfg.Input.StandardWidth

	url := textinput.New()
	url.Placeholder = "https://..."
	url.CharLimit = cfg.Input.URLCharLimit
	url.Width = cfg.Input.StandardWidth

	return BookmarkFormState{NameInput: name, URLInput: url}
}

// Reset clears the form for a new session.
func (f *BookmarkFormState) Reset() {
	f.NameInput.Reset()
	f.URLInput.Reset()
	f.CategoryIdx = 0
	f.Editing = false
	f.focus(fieldName)
}

func (f *BookmarkFormState) focus(field int) {
	f.Focus = field
	f.NameInput.Blur()
	f.URLInput.Blur()
	switch field {
	case fieldName:
		f.NameInput.Focus()
	case fieldURL:
		f.URLInput.Focus()
	}
}

// CategoryFormState holds the add category form.
type CategoryFormState struct {
	NameInput  textinput.Model
	ColorInput textinput.Model
	Focus      int // 0 = name, 1 = color
}

// NewCategoryFormState creates a CategoryFormState with initialized inputs.
func NewCategoryFormState(cfg layout.LayoutConfig) CategoryFormState {
	name := textinput.New()
	name.Placeholder = "Category name"
	name.CharLimit = cfg.Input.NameCharLimit
	name.Width = cfg.Input.StandardWidth

	color := textinput.New()
	color.Placeholder = "#8B5CF6"
	color.CharLimit = cfg.Input.ColorCharLimit
	color.Width = cfg.Input.StandardWidth

	return CategoryFormState{NameInput: name, ColorInput: color}
}

// Reset clears the form and prefills the color.
func (f *CategoryFormState) Reset(color string) {
	f.NameInput.Reset()
	f.ColorInput.SetValue(color)
	f.focus(0)
}

func (f *CategoryFormState) focus(field int) {
	f.Focus = field
	if field == 0 {
		f.ColorInput.Blur()
		f.NameInput.Focus()
		return
	}
	f.NameInput.Blur()
	f.ColorInput.Focus()
}

// PromptState is a single-line prompt used for rename, recolor, import
// and export.
type PromptState struct {
	Input    textinput.Model
	TargetID string // category being renamed or recolored
}

// NewPromptState creates a PromptState with an initialized input.
func NewPromptState(cfg layout.LayoutConfig) PromptState {
	input := textinput.New()
	input.CharLimit = cfg.Input.PathCharLimit
	input.Width = cfg.Input.StandardWidth
	return PromptState{Input: input}
}

// Open resets the prompt with a placeholder and initial value and focuses it.
func (p *PromptState) Open(placeholder, value, targetID string) {
	p.Input.Reset()
	p.Input.Placeholder = placeholder
	p.Input.SetValue(value)
	p.Input.CursorEnd()
	p.Input.Focus()
	p.TargetID = targetID
}

// ConfirmState describes what a pending delete will remove.
type ConfirmState struct {
	BookmarkID string
	CategoryID string
	Label      string
}

// SearchState holds the live search input.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search bookmarks..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	return SearchState{Input: input}
}
