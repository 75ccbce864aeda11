package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/riordanpawley/kanban/internal/config"
	"github.com/riordanpawley/kanban/internal/server"
)

func (r *runner) newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve o quadro por uma API HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withDeps(cmd, func(ctx context.Context, d *Dependencies) error {
				if addr != "" {
					d.Config.Server.Addr = addr
				}
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				return server.New(d.Config, d.Tasks, d.Logger).Start(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "endereço de escuta (padrão: server.addr)")
	return cmd
}

func (r *runner) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Gerencia o arquivo de configuração",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Escreve a configuração padrão",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := r.configPath
			if path == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get current directory: %w", err)
				}
				path = filepath.Join(cwd, config.FileName)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s já existe, use --force para sobrescrever", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuração escrita em %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "sobrescreve um arquivo existente")

	cmd.AddCommand(initCmd)
	return cmd
}
