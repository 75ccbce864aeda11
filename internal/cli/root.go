// Package cli wires the kanban command tree. Running kanban without a
// subcommand opens the board TUI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/riordanpawley/kanban/internal/app"
	"github.com/riordanpawley/kanban/internal/config"
	"github.com/riordanpawley/kanban/internal/logging"
)

// runner holds the global flags and the interactive hooks
type runner struct {
	configPath string
	logLevel   string

	// confirm asks a yes/no question on the terminal
	confirm func(title string) (bool, error)
	// runTUI blocks until the board UI exits
	runTUI func(deps *Dependencies) error
}

// NewRootCommand returns the kanban command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(&runner{
		confirm: promptConfirm,
		runTUI:  runTUI,
	})
}

// Execute runs the command tree against os.Args
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func newRootCommand(r *runner) *cobra.Command {
	root := &cobra.Command{
		Use:           "kanban",
		Short:         "Quadro kanban no terminal",
		Long:          "Quadro kanban com colunas fixas, salvo em um documento JSON.\nSem subcomando, abre a interface interativa.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := r.open(cmd, true)
			if err != nil {
				return err
			}
			defer deps.Close()
			return r.runTUI(deps)
		},
	}

	root.PersistentFlags().StringVar(&r.configPath, "config", "", "arquivo de configuração (padrão ./"+config.FileName+")")
	root.PersistentFlags().StringVar(&r.logLevel, "log-level", "", "nível de log: debug, info, warn ou error")

	root.AddCommand(
		r.newListCommand(),
		r.newAddCommand(),
		r.newMoveCommand(),
		r.newEditCommand(),
		r.newDeleteCommand(),
		r.newExportCommand(),
		r.newResetCommand(),
		r.newStatsCommand(),
		r.newImportCommand(),
		r.newServeCommand(),
		r.newConfigCommand(),
	)
	return root
}

// loadConfig reads --config when given, else the file in the working
// directory
func (r *runner) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if r.configPath != "" {
		cfg, err = config.LoadFile(r.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if r.logLevel != "" {
		cfg.Log.Level = r.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// open builds the dependencies for one command. The TUI owns the screen,
// so it only logs to the configured file.
func (r *runner) open(cmd *cobra.Command, tui bool) (*Dependencies, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}

	var fallback io.Writer = cmd.ErrOrStderr()
	if tui {
		fallback = io.Discard
	}
	logger, closeLog, err := logging.Setup(cfg.Log, fallback)
	if err != nil {
		return nil, err
	}

	deps, err := NewDependencies(cfg, logger)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	deps.closeLog = closeLog
	return deps, nil
}

// withDeps runs fn with freshly opened dependencies and closes them after
func (r *runner) withDeps(cmd *cobra.Command, fn func(ctx context.Context, d *Dependencies) error) error {
	deps, err := r.open(cmd, false)
	if err != nil {
		return err
	}
	defer deps.Close()
	return fn(cmd.Context(), deps)
}

func runTUI(deps *Dependencies) error {
	var opts []tea.ProgramOption
	if deps.Config.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(app.New(deps.Config, deps.Tasks, deps.Logger), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run tui: %w", err)
	}
	return nil
}

// errNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal
var errNotInteractive = errors.New("confirmação necessária: use --yes fora de um terminal")

func promptConfirm(title string) (bool, error) {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false, errNotInteractive
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Sim").
		Negative("Não").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
