package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmdash/internal/culler"
	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/logger"
)

var (
	deadStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6666")).Bold(true)
	unreachableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
)

func newCheckCmd(s *session) *cobra.Command {
	var (
		concurrency int
		timeout     time.Duration
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Find dead and unreachable links",
		Long: `Request every bookmark URL and list the ones that are gone (404/410)
or could not be reached, grouped by category. Nothing is deleted.

Examples:
  bmdash check
  bmdash check --concurrency 20 --timeout 5s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := culler.Options{
				Concurrency:    s.cfg.Check.Concurrency,
				Timeout:        s.cfg.Check.Timeout,
				ExcludeDomains: s.cfg.Check.ExcludeDomains,
			}
			if cmd.Flags().Changed("concurrency") {
				opts.Concurrency = concurrency
			}
			if cmd.Flags().Changed("timeout") {
				opts.Timeout = timeout
			}
			if !quiet {
				errOut := cmd.ErrOrStderr()
				opts.OnProgress = func(completed, total int) {
					fmt.Fprintf(errOut, "\rChecking links... %d/%d", completed, total)
					if completed == total {
						fmt.Fprintln(errOut)
					}
				}
			}

			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				state := d.State()
				out := cmd.OutOrStdout()
				if len(state.Bookmarks) == 0 {
					fmt.Fprintln(out, "No bookmarks to check.")
					return nil
				}

				start := s.now()
				results := culler.CheckURLs(cmd.Context(), state.Bookmarks, opts)

				var dead, unreachable, skipped int
				for _, r := range results {
					switch r.Status {
					case culler.Dead:
						dead++
					case culler.Unreachable:
						unreachable++
					case culler.Skipped:
						skipped++
					}
				}
				s.log.Info("links checked",
					logger.Int("total", len(results)),
					logger.Int("dead", dead),
					logger.Int("unreachable", unreachable),
					logger.Int("skipped", skipped),
					logger.Duration("took", s.now().Sub(start)))

				groups := culler.GroupByCategory(results)
				for _, c := range d.View().Categories {
					group := groups[c.ID]
					if len(group) == 0 {
						continue
					}
					fmt.Fprintf(out, "\n%s\n", badge(c.Name, c.Color))
					for _, r := range group {
						fmt.Fprintf(out, "  %s %s  %s\n", statusLabel(r), r.Bookmark.Name, r.Bookmark.URL)
					}
				}

				checked := len(results) - skipped
				fmt.Fprintf(out, "\nChecked %d links: %d healthy, %d dead, %d unreachable\n",
					checked, checked-dead-unreachable, dead, unreachable)
				if skipped > 0 {
					fmt.Fprintf(out, "Skipped %d non-web links\n", skipped)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Requests in flight (default from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-request timeout (default from config)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print progress")
	return cmd
}

func statusLabel(r culler.Result) string {
	if r.Status == culler.Dead {
		return deadStyle.Render(fmt.Sprintf("✗ dead (%d)", r.StatusCode))
	}
	return unreachableStyle.Render("? " + r.Error)
}
