package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/importer"
	"github.com/nikbrunner/bmdash/internal/logger"
	"github.com/nikbrunner/bmdash/internal/tui/layout"
)

// messageDuration is how long a transient message stays on screen.
const messageDuration = 3 * time.Second

type clearMessageMsg struct{ seq int }

type importDoneMsg struct {
	path    string
	payload importer.Payload
	err     error
}

type exportDoneMsg struct {
	path string
	err  error
}

type openDoneMsg struct {
	url string
	err error
}

// App is the main bubbletea model for the bookmark dashboard.
type App struct {
	ctx          context.Context
	dash         *dashboard.Dashboard
	log          logger.Logger
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	tab     Tab
	mode    Mode
	cursors [2]int // per tab

	bookmarkForm BookmarkFormState
	categoryForm CategoryFormState
	prompt       PromptState
	search       SearchState
	confirm      ConfirmState

	confirmDelete bool
	exportDir     string
	openURL       func(url string) error
	copyText      func(text string) error
	now           func() time.Time

	messageText string
	messageType MessageType
	messageSeq  int

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Context       context.Context // optional, defaults to context.Background
	Dashboard     *dashboard.Dashboard
	Logger        logger.Logger        // optional
	Keys          *KeyMap              // optional, uses default if nil
	Styles        *Styles              // optional, uses default if nil
	LayoutConfig  *layout.LayoutConfig // optional, uses default if nil
	ConfirmDelete bool
	ExportDir     string
	OpenURL       func(url string) error  // optional, opening is a no-op if nil
	Clipboard     func(text string) error // optional, defaults to the system clipboard
	Now           func() time.Time        // optional
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	app := App{
		ctx:           params.Context,
		dash:          params.Dashboard,
		log:           params.Logger,
		keys:          keys,
		styles:        styles,
		layoutConfig:  layoutCfg,
		bookmarkForm:  NewBookmarkFormState(layoutCfg),
		categoryForm:  NewCategoryFormState(layoutCfg),
		prompt:        NewPromptState(layoutCfg),
		search:        NewSearchState(layoutCfg),
		confirmDelete: params.ConfirmDelete,
		exportDir:     params.ExportDir,
		openURL:       params.OpenURL,
		copyText:      params.Clipboard,
		now:           params.Now,
		width:         80,
		height:        24,
	}
	if app.ctx == nil {
		app.ctx = context.Background()
	}
	if app.log == nil {
		app.log = logger.Nop()
	}
	if app.copyText == nil {
		app.copyText = clipboard.WriteAll
	}
	if app.now == nil {
		app.now = time.Now
	}

	if warnings := app.dash.Warnings(); len(warnings) > 0 {
		app.messageText = strings.Join(warnings, " ")
		app.messageType = MessageWarning
		app.messageSeq = 1
	}

	return app
}

// WithDimensions returns a copy of the App sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the cursor position in the active tab.
func (a App) Cursor() int {
	return a.cursors[a.tab]
}

// Tab returns the active tab.
func (a App) Tab() Tab {
	return a.tab
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Message returns the transient message and its type; empty when none.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// Items returns the rows of the active tab.
func (a App) Items() []Item {
	return itemsFor(a.tab, a.dash.View())
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.messageText == "" {
		return nil
	}
	return clearMessageAfter(a.messageSeq)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case clearMessageMsg:
		if msg.seq == a.messageSeq {
			a.messageText = ""
		}
		return a, nil

	case importDoneMsg:
		cmd := a.finishImport(msg)
		return a, cmd

	case exportDoneMsg:
		if msg.err != nil {
			a.log.Error("export failed", logger.String("path", msg.path), logger.Error(msg.err))
			cmd := a.setMessage(MessageError, "Export failed: "+msg.err.Error())
			return a, cmd
		}
		cmd := a.setMessage(MessageSuccess, dashboard.MsgExported+" ("+msg.path+")")
		return a, cmd

	case openDoneMsg:
		if msg.err != nil {
			a.log.Warn("open url failed", logger.String("url", msg.url), logger.Error(msg.err))
			cmd := a.setMessage(MessageError, "Could not open "+msg.url)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.updateFocusedInput(msg)
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// setMessage shows text until messageDuration passes or another message
// replaces it.
func (a *App) setMessage(kind MessageType, text string) tea.Cmd {
	a.messageSeq++
	a.messageText = text
	a.messageType = kind
	return clearMessageAfter(a.messageSeq)
}

// setError shows the user-facing sentence for err.
func (a *App) setError(err error) tea.Cmd {
	return a.setMessage(MessageError, dashboard.ErrorMessage(err))
}

func clearMessageAfter(seq int) tea.Cmd {
	return tea.Tick(messageDuration, func(time.Time) tea.Msg {
		return clearMessageMsg{seq: seq}
	})
}

// clampCursor keeps the cursor of the active tab inside its rows.
func (a *App) clampCursor() {
	n := len(a.Items())
	c := &a.cursors[a.tab]
	if *c >= n {
		*c = n - 1
	}
	if *c < 0 {
		*c = 0
	}
}

// selected returns the row under the cursor.
func (a App) selected() (Item, bool) {
	items := a.Items()
	c := a.cursors[a.tab]
	if c < 0 || c >= len(items) {
		return Item{}, false
	}
	return items[c], true
}

// updateFocusedInput forwards non-key messages (cursor blink) to the input
// that has focus in the current mode.
func (a App) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.mode {
	case ModeSearch:
		a.search.Input, cmd = a.search.Input.Update(msg)
	case ModeBookmarkForm:
		switch a.bookmarkForm.Focus {
		case fieldName:
			a.bookmarkForm.NameInput, cmd = a.bookmarkForm.NameInput.Update(msg)
		case fieldURL:
			a.bookmarkForm.URLInput, cmd = a.bookmarkForm.URLInput.Update(msg)
		}
	case ModeCategoryForm:
		if a.categoryForm.Focus == 0 {
			a.categoryForm.NameInput, cmd = a.categoryForm.NameInput.Update(msg)
		} else {
			a.categoryForm.ColorInput, cmd = a.categoryForm.ColorInput.Update(msg)
		}
	case ModeRename, ModeRecolor, ModeImport, ModeExport:
		a.prompt.Input, cmd = a.prompt.Input.Update(msg)
	}
	return a, cmd
}
