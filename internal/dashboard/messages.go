package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nikbrunner/bmdash/internal/importer"
	"github.com/nikbrunner/bmdash/internal/model"
)

// Success messages shown after an action.
const (
	MsgBookmarkAdded    = "Bookmark added successfully!"
	MsgBookmarkUpdated  = "Bookmark updated successfully!"
	MsgBookmarkDeleted  = "Bookmark deleted!"
	MsgCategoryAdded    = "Category added successfully!"
	MsgCategoryRenamed  = "Category renamed!"
	MsgCategoryRecolor  = "Category color changed!"
	MsgCategoryDeleted  = "Category deleted and bookmarks moved!"
	MsgCategoryMoved    = "Category order updated!"
	MsgExported         = "Complete dashboard backup exported successfully!"
	MsgEditCancelled    = "Editing cancelled."
	MsgSelectFileFirst  = "Please select a file first!"
	MsgImportReadFailed = "Error importing! Please check the file."
)

var sentinelMessages = []struct {
	err error
	msg string
}{
	{ErrPersist, "Error saving!"},
	{model.ErrDuplicateCategory, "A category with this name already exists!"},
	{model.ErrDefaultCategory, "Default categories cannot be deleted!"},
	{model.ErrEditInProgress, "Please finish editing first or cancel it!"},
	{model.ErrNotEditing, "No bookmark is being edited!"},
	{model.ErrBookmarkNotFound, "Bookmark not found!"},
	{model.ErrCategoryNotFound, "Category not found!"},
	{model.ErrUnknownCategory, "Please select a valid category!"},
	{model.ErrInvalidImport, "Invalid file! Please select a valid backup file."},
	{model.ErrNothingToExport, "No data available for export!"},
}

// ErrorMessage turns an error from a Dashboard operation into the short
// sentence shown to the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		keys := make([]string, 0, len(fieldErrs))
		for k := range fieldErrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return ErrorMessage(fieldErrs[keys[0]])
	}

	var verr validation.Error
	if errors.As(err, &verr) {
		return sentence(verr.Message())
	}

	return sentence(err.Error())
}

// ImportMessage summarizes an import the way the user sees it.
func ImportMessage(res ImportResult) string {
	switch res.Format {
	case importer.FormatLegacy:
		return fmt.Sprintf("%d bookmarks imported successfully! (Legacy format)", res.BookmarksAdded)
	default:
		return fmt.Sprintf("Backup imported successfully! %d bookmarks, %d categories added.",
			res.BookmarksAdded, res.CategoriesAdded)
	}
}

// sentence capitalizes s and ends it with "!".
func sentence(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), ".!")
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:] + "!"
}
