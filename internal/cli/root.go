package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmdash/internal/config"
	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/logger"
	"github.com/nikbrunner/bmdash/internal/storage"
	"github.com/nikbrunner/bmdash/internal/tui"
)

// Options replaces side effects of the commands. Zero values use the real
// browser and clock.
type Options struct {
	OpenURL func(url string) error
	Now     func() time.Time
}

// session carries what every command needs once flags are parsed.
type session struct {
	configPath string
	logLevel   string

	openURL func(url string) error
	now     func() time.Time

	cfg *config.Config
	log logger.Logger
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd(Options{}).Execute()
}

// NewRootCmd builds the bmdash command tree.
func NewRootCmd(opts Options) *cobra.Command {
	s := &session{
		openURL: opts.OpenURL,
		now:     opts.Now,
		log:     logger.Nop(),
	}
	if s.openURL == nil {
		s.openURL = OpenURL
	}
	if s.now == nil {
		s.now = time.Now
	}

	root := &cobra.Command{
		Use:   "bmdash",
		Short: "bmdash - bookmark dashboard for the terminal",
		Long: `bmdash keeps bookmarks in colored categories.

Run 'bmdash' without arguments to launch the interactive dashboard.`,
		SilenceUsage:      true,
		PersistentPreRunE: s.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.log.Debug("command finished", logger.String("command", cmd.Name()))
			_ = s.log.Sync()
		},
		RunE: s.runTUI,
	}

	root.PersistentFlags().StringVar(&s.configPath, "config", "", "Path to config file (default ~/.config/bmdash/config.yaml)")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newAddCmd(s),
		newEditCmd(s),
		newRmCmd(s),
		newLsCmd(s),
		newOpenCmd(s),
		newCategoryCmd(s),
		newExportCmd(s),
		newImportCmd(s),
		newCheckCmd(s),
	)
	return root
}

// setup loads the config and builds the logger.
func (s *session) setup(cmd *cobra.Command, args []string) error {
	path := s.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return fmt.Errorf("locate config: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		if !logger.ValidLevel(s.logLevel) {
			return fmt.Errorf("invalid log level %q (want debug, info, warn or error)", s.logLevel)
		}
		cfg.Log.Level = s.logLevel
	}

	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	s.cfg = cfg
	s.log = log
	s.log.Debug("command started",
		logger.String("command", cmd.Name()),
		logger.String("config", path),
		logger.String("backend", cfg.Storage.Backend))
	return nil
}

// openDashboard opens storage and loads the dashboard. The returned func
// closes the storage.
func (s *session) openDashboard(ctx context.Context) (*dashboard.Dashboard, func(), error) {
	repo, err := storage.Open(ctx, s.cfg.StorageOptions(), s.log)
	if err != nil {
		return nil, nil, err
	}
	closeRepo := func() {
		if err := repo.Close(); err != nil {
			s.log.Warn("close storage", logger.Error(err))
		}
	}

	d, err := dashboard.Open(ctx, dashboard.Params{
		Store:       repo,
		Logger:      s.log,
		Now:         s.now,
		SeedSamples: s.cfg.SeedSamples,
	})
	if err != nil {
		closeRepo()
		return nil, nil, fmt.Errorf("load dashboard: %w", err)
	}
	return d, closeRepo, nil
}

// withDashboard runs fn against a freshly loaded dashboard and reports
// load warnings on stderr.
func (s *session) withDashboard(cmd *cobra.Command, fn func(d *dashboard.Dashboard) error) error {
	d, done, err := s.openDashboard(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	for _, w := range d.Warnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	return fn(d)
}

func (s *session) runTUI(cmd *cobra.Command, args []string) error {
	d, done, err := s.openDashboard(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	s.log.Info("launching tui")
	app := tui.NewApp(tui.AppParams{
		Context:       cmd.Context(),
		Dashboard:     d,
		Logger:        s.log,
		ConfirmDelete: s.cfg.ConfirmDelete,
		ExportDir:     s.cfg.ExportDir,
		OpenURL:       s.openURL,
		Now:           s.now,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		s.log.Error("tui error", logger.Error(err))
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// userError replaces err with the sentence the dashboard shows for it. A
// failed save keeps its cause.
func userError(err error) error {
	if err == nil {
		return nil
	}
	msg := dashboard.ErrorMessage(err)
	if errors.Is(err, dashboard.ErrPersist) {
		return fmt.Errorf("%s %w", msg, err)
	}
	return errors.New(msg)
}
