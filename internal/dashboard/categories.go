package dashboard

import (
	"context"
	"strings"

	"github.com/nikbrunner/bmdash/internal/logger"
	"github.com/nikbrunner/bmdash/internal/model"
)

// AddCategory creates a category. Names are unique ignoring case and the
// ID is derived from the name.
func (d *Dashboard) AddCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Category{}, err
	}
	if in.Color == "" {
		in.Color = model.DefaultColor
	}

	id := model.CategoryIDFromName(in.Name)
	if d.data.HasCategoryName(in.Name, "") || d.data.GetCategoryByID(id) != nil {
		return model.Category{}, model.ErrDuplicateCategory
	}

	c := model.Category{ID: id, Name: in.Name, Color: in.Color}
	d.data.Categories = append(d.data.Categories, c)
	d.log.Info("category added", logger.String("id", id))

	return c, d.saveCategories(ctx)
}

// RenameCategory changes a category's display name; its ID stays the same.
// Renaming to the current name is a no-op and reports false.
func (d *Dashboard) RenameCategory(ctx context.Context, id, name string) (bool, error) {
	c := d.data.GetCategoryByID(id)
	if c == nil {
		return false, model.ErrCategoryNotFound
	}

	name = strings.TrimSpace(name)
	if err := model.ValidateCategoryName(name); err != nil {
		return false, err
	}
	if name == c.Name {
		return false, nil
	}
	if d.data.HasCategoryName(name, id) {
		return false, model.ErrDuplicateCategory
	}

	c.Name = name
	d.log.Info("category renamed", logger.String("id", id))
	return true, d.saveCategories(ctx)
}

// RecolorCategory sets a category's color. color must be #RRGGBB; it is
// stored uppercase.
func (d *Dashboard) RecolorCategory(ctx context.Context, id, color string) error {
	c := d.data.GetCategoryByID(id)
	if c == nil {
		return model.ErrCategoryNotFound
	}

	color = model.NormalizeColor(color)
	if err := model.ValidateColor(color); err != nil {
		return err
	}

	c.Color = color
	d.log.Info("category recolored", logger.String("id", id), logger.String("color", color))
	return d.saveCategories(ctx)
}

// DeleteCategory moves the category's bookmarks to general and removes it.
// Default categories cannot be deleted. Returns the number of bookmarks
// moved.
func (d *Dashboard) DeleteCategory(ctx context.Context, id string) (int, error) {
	c := d.data.GetCategoryByID(id)
	if c == nil {
		return 0, model.ErrCategoryNotFound
	}
	if c.IsDefault || c.ID == model.GeneralCategoryID {
		return 0, model.ErrDefaultCategory
	}

	moved := d.data.ReassignCategory(id, model.GeneralCategoryID)
	d.data.RemoveCategory(id)
	if d.filter == id {
		d.filter = model.FilterAll
	}

	d.log.Info("category deleted", logger.String("id", id), logger.Int("moved", moved))
	return moved, d.saveAll(ctx)
}

// MoveCategory moves the dragged category to the target's position.
func (d *Dashboard) MoveCategory(ctx context.Context, draggedID, targetID string) error {
	if err := d.data.MoveCategory(draggedID, targetID); err != nil {
		return err
	}
	if draggedID == targetID {
		return nil
	}

	d.log.Info("category moved", logger.String("id", draggedID), logger.String("target", targetID))
	return d.saveCategories(ctx)
}
