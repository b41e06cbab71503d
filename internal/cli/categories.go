package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/model"
)

func newCategoryCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
		Long:    `List, create, rename, recolor, reorder and delete categories.`,
	}

	cmd.AddCommand(
		newCategoryLsCmd(s),
		newCategoryAddCmd(s),
		newCategoryRenameCmd(s),
		newCategoryColorCmd(s),
		newCategoryRmCmd(s),
		newCategoryMoveCmd(s),
	)
	return cmd
}

func newCategoryLsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List categories in display order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				t := newTable().Headers("#", "ID", "NAME", "COLOR", "BOOKMARKS", "")
				for i, c := range d.View().Categories {
					def := ""
					if c.IsDefault {
						def = "default"
					}
					t.Row(strconv.Itoa(i+1), c.ID, badge(c.Name, c.Color), c.Color, c.CountLabel, def)
				}
				fmt.Fprintln(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}
}

func newCategoryAddCmd(s *session) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a category",
		Long: `Create a category. Its ID is the lowercased name with spaces replaced by "-".

Examples:
  bmdash category add "Side Projects"
  bmdash category add Reading --color "#10B981"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				c, err := d.AddCategory(cmd.Context(), model.CategoryInput{Name: args[0], Color: color})
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", dashboard.MsgCategoryAdded, c.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", model.DefaultColor, "Hex color (#RRGGBB)")
	return cmd
}

func newCategoryRenameCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rename [id] [name]",
		Short: "Rename a category (its ID stays the same)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				changed, err := d.RenameCategory(cmd.Context(), args[0], args[1])
				if err != nil {
					return userError(err)
				}
				if !changed {
					fmt.Fprintln(cmd.OutOrStdout(), "Name unchanged.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), dashboard.MsgCategoryRenamed)
				return nil
			})
		},
	}
}

func newCategoryColorCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "color [id] [#RRGGBB]",
		Short: "Change a category's color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				if err := d.RecolorCategory(cmd.Context(), args[0], args[1]); err != nil {
					return userError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dashboard.MsgCategoryRecolor)
				return nil
			})
		},
	}
}

func newCategoryRmCmd(s *session) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Delete a category and move its bookmarks to General",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				c, ok := d.Category(args[0])
				if !ok {
					return userError(model.ErrCategoryNotFound)
				}
				if c.IsDefault {
					return userError(model.ErrDefaultCategory)
				}

				if s.cfg.ConfirmDelete && !yes {
					prompt := fmt.Sprintf("About to delete category %q. Its bookmarks move to General.\nAre you sure? [y/N]: ", c.Name)
					if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
				}

				moved, err := d.DeleteCategory(cmd.Context(), c.ID)
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", dashboard.MsgCategoryDeleted, dashboard.CountLabel(moved))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newCategoryMoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "move [id] [target-id]",
		Short: "Move a category to another category's position",
		Long: `Move a category to the position of another one; the categories in
between shift by one.

Examples:
  bmdash category move tools general`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				if err := d.MoveCategory(cmd.Context(), args[0], args[1]); err != nil {
					return userError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dashboard.MsgCategoryMoved)
				return nil
			})
		},
	}
}
