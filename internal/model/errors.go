package model

import "errors"

var (
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrUnknownCategory   = errors.New("bookmark references an unknown category")
	ErrDuplicateCategory = errors.New("a category with this name already exists")
	ErrDefaultCategory   = errors.New("default categories cannot be deleted")
	ErrEditInProgress    = errors.New("finish or cancel the current edit first")
	ErrNotEditing        = errors.New("no bookmark is being edited")
	ErrInvalidImport     = errors.New("invalid import file")
	ErrNothingToExport   = errors.New("no data available for export")
)
