package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmdash/internal/config"
	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/exporter"
	"github.com/nikbrunner/bmdash/internal/importer"
	"github.com/nikbrunner/bmdash/internal/logger"
	"github.com/nikbrunner/bmdash/internal/model"
)

func newExportCmd(s *session) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export all bookmarks and categories",
		Long: `Write a backup of the whole dashboard. The format comes from --format,
else from the file extension (.html for browser bookmarks), else JSON.
Without a path the file goes to export_dir as dashboard-backup-YYYY-MM-DD.json.

Examples:
  bmdash export
  bmdash export ~/backup.json
  bmdash export --format html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = config.ExpandHome(args[0])
			}

			f, err := exportFormat(format, path)
			if err != nil {
				return err
			}
			if path == "" {
				path = exporter.DefaultExportPath(s.cfg.ExportDir, f, s.now())
			}

			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				doc, err := d.Export()
				if err != nil {
					return userError(err)
				}
				if err := exporter.WriteFile(path, f, doc); err != nil {
					s.log.Error("export failed", logger.String("path", path), logger.Error(err))
					return fmt.Errorf("export failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", dashboard.MsgExported, path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or html")
	return cmd
}

// exportFormat picks the flag value, else the format the path's extension
// names, else JSON.
func exportFormat(flag, path string) (exporter.Format, error) {
	if flag != "" {
		return exporter.ParseFormat(strings.ToLower(flag))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return exporter.FormatHTML, nil
	}
	return exporter.FormatJSON, nil
}

func newImportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import a backup or browser bookmarks",
		Long: `Merge a file into the dashboard: a JSON backup, a legacy JSON bookmark
list, or a browser bookmarks HTML export. New categories are added and every
bookmark is appended.

Examples:
  bmdash import dashboard-backup-2025-06-01.json
  bmdash import ~/Downloads/bookmarks.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandHome(args[0])

			payload, err := importer.ParseFile(path)
			if err != nil {
				s.log.Warn("import failed", logger.String("path", path), logger.Error(err))
				if errors.Is(err, model.ErrInvalidImport) {
					return userError(err)
				}
				return fmt.Errorf("%s (%w)", dashboard.MsgImportReadFailed, err)
			}

			return s.withDashboard(cmd, func(d *dashboard.Dashboard) error {
				res, err := d.Import(cmd.Context(), payload)
				if err != nil {
					return userError(err)
				}

				msg := dashboard.ImportMessage(res)
				if payload.Skipped > 0 {
					msg += fmt.Sprintf(" (%d invalid links skipped)", payload.Skipped)
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	}
}
