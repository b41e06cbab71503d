package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/model"
	"github.com/nikbrunner/bmdash/internal/picker"
	"github.com/nikbrunner/bmdash/internal/search"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// badge renders "● name" in the category color.
func badge(name, color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("● " + name)
}

func newAddCmd(s *session) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add [name] [url]",
		Short: "Add a bookmark",
		Long: `Add a bookmark. Without --category it goes to the first category.

Examples:
  bmdash add GitHub https://github.com
  bmdash add "Go docs" https://go.dev/doc --category work`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				b, err := d.AddBookmark(cmd.Context(), model.BookmarkInput{
					Name:     args[0],
					URL:      args[1],
					Category: category,
				})
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", dashboard.MsgBookmarkAdded, b.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category ID")
	return cmd
}

func newEditCmd(s *session) *cobra.Command {
	var name, url, category string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a bookmark",
		Long: `Change the name, URL or category of a bookmark.

Examples:
  bmdash edit 0195d1a2-... --name "GitHub Enterprise"
  bmdash edit 0195d1a2-... --category work`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("url") && !flags.Changed("category") {
				return errors.New("nothing to change: use --name, --url or --category")
			}

			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				b, err := d.BeginEdit(args[0])
				if err != nil {
					return userError(err)
				}

				in := model.BookmarkInput{Name: b.Name, URL: b.URL, Category: b.Category}
				if flags.Changed("name") {
					in.Name = name
				}
				if flags.Changed("url") {
					in.URL = url
				}
				if flags.Changed("category") {
					in.Category = category
				}

				if _, err := d.SaveEdit(cmd.Context(), in); err != nil {
					return userError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dashboard.MsgBookmarkUpdated)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&url, "url", "", "New URL")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category ID")
	return cmd
}

func newRmCmd(s *session) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Delete a bookmark",
		Long: `Delete a bookmark by its ID. Asks first when confirm_delete is set.

Examples:
  bmdash rm 0195d1a2-...
  bmdash rm 0195d1a2-... -y`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				b, ok := d.Bookmark(args[0])
				if !ok {
					return userError(model.ErrBookmarkNotFound)
				}

				if s.cfg.ConfirmDelete && !yes {
					prompt := fmt.Sprintf("About to delete: %q (%s)\nAre you sure? [y/N]: ", b.Name, b.URL)
					if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
				}

				if _, err := d.DeleteBookmark(cmd.Context(), b.ID); err != nil {
					return userError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dashboard.MsgBookmarkDeleted)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// confirm prints prompt and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func newLsCmd(s *session) *cobra.Command {
	var category, query string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List bookmarks",
		Long: `List bookmarks, newest first, optionally filtered by category and search text.

Examples:
  bmdash ls
  bmdash ls --category work
  bmdash ls -q github`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				if category != "" {
					if err := d.SetFilter(category); err != nil {
						return userError(err)
					}
				}
				d.SetSearch(query)

				out := cmd.OutOrStdout()
				v := d.View()
				if v.Empty {
					if v.Total == 0 {
						fmt.Fprintln(out, "No bookmarks yet. Add one with: bmdash add <name> <url>")
					} else {
						fmt.Fprintln(out, "No bookmarks match.")
					}
					return nil
				}

				t := newTable().Headers("ID", "NAME", "CATEGORY", "URL")
				for _, b := range v.Bookmarks {
					t.Row(b.ID, b.Name, badge(b.CategoryName, b.CategoryColor), b.URL)
				}
				fmt.Fprintln(out, t)
				fmt.Fprintf(out, "%s of %d\n", dashboard.CountLabel(len(v.Bookmarks)), v.Total)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category ID")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only bookmarks whose name or URL contains this text")
	return cmd
}

func newOpenCmd(s *session) *cobra.Command {
	var first bool

	cmd := &cobra.Command{
		Use:   "open [query...]",
		Short: "Fuzzy search bookmarks and open one",
		Long: `Fuzzy search bookmark names and open the match in the browser.
With several matches a picker is shown unless --first is given.

Examples:
  bmdash open git
  bmdash open --first go docs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				state := d.State()
				results := search.FuzzySearchBookmarks(state.Bookmarks, query)
				if len(results) == 0 {
					fmt.Fprintf(out, "No bookmarks found for '%s'\n", query)
					return nil
				}

				selected := results[0].Bookmark
				if len(results) > 1 && !first {
					p := picker.New(results, query, state.Categories)
					program := tea.NewProgram(p,
						tea.WithInput(cmd.InOrStdin()),
						tea.WithOutput(out),
						tea.WithContext(cmd.Context()))
					final, err := program.Run()
					if err != nil {
						return fmt.Errorf("run picker: %w", err)
					}

					chosen := final.(picker.Picker)
					if chosen.Cancelled() {
						return nil
					}
					selected = chosen.SelectedBookmark()
				}
				if selected == nil {
					return nil
				}

				fmt.Fprintf(out, "Opening: %s\n", selected.Name)
				if err := s.openURL(selected.URL); err != nil {
					return fmt.Errorf("open %s: %w", selected.URL, err)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&first, "first", false, "Open the best match without asking")
	return cmd
}
