package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/riordanpawley/kanban/internal/config"
	"github.com/riordanpawley/kanban/internal/domain"
	"github.com/riordanpawley/kanban/internal/services/tasks"
	"github.com/riordanpawley/kanban/internal/store"
)

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config *config.Config
	Store  store.Store
	Tasks  *tasks.Service
	Logger *slog.Logger

	closeLog func() error
}

// NewDependencies opens the configured store and the task service on it
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	codec, err := store.NewCodec(cfg.Board.ColumnDefs())
	if err != nil {
		return nil, fmt.Errorf("failed to build codec: %w", err)
	}

	st, err := store.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &Dependencies{
		Config: cfg,
		Store:  st,
		Tasks:  tasks.NewService(st, codec, logger),
		Logger: logger,
	}, nil
}

// Close releases the store and the log file
func (d *Dependencies) Close() error {
	err := d.Store.Close()
	if d.closeLog != nil {
		err = errors.Join(err, d.closeLog())
	}
	return err
}

func (r *runner) newListCommand() *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista as tarefas do quadro",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withDeps(cmd, func(ctx context.Context, d *Dependencies) error {
				b, err := d.Tasks.Board(ctx)
				if err != nil {
					return err
				}
				return printTasks(cmd.OutOrStdout(), b, column)
			})
		},
	}
	cmd.Flags().StringVarP(&column, "column", "c", "", "mostra apenas a coluna indicada")
	return cmd
}

// printTasks writes one row per task, in column order
func printTasks(out io.Writer, b *domain.Board, column string) error {
	columns := b.Columns
	if column != "" {
		c, ok := b.Column(column)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownColumn, column)
		}
		columns = domain.Columns{*c}
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOLUNA\tPRIORIDADE\tPRAZO\tRESPONSÁVEL\tTÍTULO")

	count := 0
	for _, c := range columns {
		for _, t := range c.Tasks {
			due := "-"
			if t.DueDate != nil {
				due = t.DueDate.Display()
			}
			assignee := t.Assignee
			if assignee == "" {
				assignee = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, c.Name, t.Priority, due, assignee, truncate(t.Title, 60))
			count++
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if count == 0 {
		fmt.Fprintln(out, "Nenhuma tarefa")
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func (r *runner) newAddCommand() *cobra.Command {
	var column, priority, description, assignee, due string

	cmd := &cobra.Command{
		Use:   "add <título>",
		Short: "Cria uma tarefa",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := domain.TaskFields{
				Title:       strings.Join(args, " "),
				Description: description,
				Assignee:    assignee,
			}
			if priority != "" {
				p, err := domain.ParsePriority(priority)
				if err != nil {
					return err
				}
				fields.Priority = p
			}
			if due != "" {
				d, err := domain.ParseDate(due)
				if err != nil {
					return err
				}
				fields.DueDate = &d
			}

			return r.withDeps(cmd, func(ctx context.Context, d *Dependencies) error {
				b, err := d.Tasks.Board(ctx)
				if err != nil {
					return err
				}
				if column == "" {
					if len(b.Columns) == 0 {
						return fmt.Errorf("%w: o quadro não tem colunas", domain.ErrUnknownColumn)
					}
					column = b.Columns[0].Key
				}
				task, err := d.Tasks.Create(ctx, column, fields)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tarefa #%d criada em %s\n", task.ID, columnName(b, task.Column))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&column, "column", "c", "", "coluna de destino (padrão: a primeira)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "prioridade: Alta, Média ou Baixa")
	cmd.Flags().StringVarP(&description, "description", "d", "", "descrição")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "responsável")
	cmd.Flags().StringVar(&due, "due", "", "prazo no formato AAAA-MM-DD")
	return cmd
}

func (r *runner) newMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <coluna>",
		Short: "Move uma tarefa para outra coluna",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withDeps(cmd, func(ctx context.Context, d *Dependencies) error {
				b, err := d.Tasks.Board(ctx)
				if err != nil {
					return err
				}
				current, ok := b.FindTask(id)
				if !ok {
					return fmt.Errorf("%w: task %d", domain.ErrNotFound, id)
				}
				task, err := d.Tasks.Move(ctx, id, current.Column, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tarefa #%d movida para %s\n", task.ID, columnName(b, task.Column))
				return nil
			})
		},
	}
}

func (r *runner) newEditCommand() *cobra.Command {
	var title, description, priority, assignee, due string
	var clearDue bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Altera os campos de uma tarefa",
		Long:  "Altera apenas os campos passados por flag.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var patch domain.TaskPatch
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("assignee") {
				patch.Assignee = &assignee
			}
			if flags.Changed("priority") {
				p, err := domain.ParsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &p
			}
			if flags.Changed("due") {
				d, err := domain.ParseDate(due)
				if err != nil {
					return err
				}
				patch.DueDate = &d
			}
			patch.ClearDueDate = clearDue
			if patch.IsEmpty() {
				return errors.New("nada para alterar: informe ao menos uma flag")
			}

			return r.withDeps(cmd, func(ctx context.Context, d *Dependencies) error {
				current, err := d.Tasks.Locate(ctx, id)
				if err != nil {
					return err
				}
				task, err := d.Tasks.Edit(ctx, id, current.Column, patch)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tarefa #%d atualizada\n", task.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "novo título")
	cmd.Flags().StringVarP(&description, "description", "d", "", "nova descrição")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "nova prioridade")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "novo responsável")
	cmd.Flags().StringVar(&due, "due", "", "novo prazo no formato AAAA-MM-DD")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove o prazo")
	return cmd
}

func (r *runner) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Exclui uma tarefa",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withDeps(cmd, func(ctx context.Context, d *Dependencies) error {
				current, err := d.Tasks.Locate(ctx, id)
				if err != nil {
					return err
				}
				if _, err := d.Tasks.Delete(ctx, id, current.Column); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tarefa #%d excluída\n", id)
				return nil
			})
		},
	}
}

func (r *runner) newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta o documento do quadro",
		Long:  "Escreve o documento salvo sem alterações na saída padrão, ou no arquivo dado por --output.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withDeps(cmd, func(ctx context.Context, d *Dependencies) error {
				data, err := d.Tasks.Export(ctx)
				if err != nil {
					return err
				}
				if output == "" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				if err := renameio.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Quadro exportado para %s\n", output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "arquivo de destino")
	return cmd
}

func (r *runner) newResetCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Apaga todas as tarefas e zera o contador",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := r.confirm("Apagar todas as tarefas?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Nada foi alterado")
					return nil
				}
			}
			return r.withDeps(cmd, func(ctx context.Context, d *Dependencies) error {
				if _, err := d.Tasks.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Quadro reiniciado")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "não pede confirmação")
	return cmd
}

func (r *runner) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Mostra o progresso do quadro",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withDeps(cmd, func(ctx context.Context, d *Dependencies) error {
				b, err := d.Tasks.Board(ctx)
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), b)
				return nil
			})
		},
	}
}

func printStats(out io.Writer, b *domain.Board) {
	s := b.Stats()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, c := range b.Columns {
		fmt.Fprintf(w, "%s\t%d\n", c.Name, s.PerColumn[c.Key])
	}
	fmt.Fprintln(w, "\t")
	fmt.Fprintf(w, "Total\t%d\n", s.Total)
	fmt.Fprintf(w, "Pendentes\t%d\n", s.Pending)
	fmt.Fprintf(w, "Em andamento\t%d\n", s.InProgress)
	fmt.Fprintf(w, "Concluídas\t%d\n", s.Done)
	fmt.Fprintf(w, "Progresso\t%.1f%%\n", s.Progress)
	w.Flush()
}

func (r *runner) newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <arquivo>",
		Short: "Substitui o quadro pelo conteúdo de um arquivo",
		Long:  "Aceita o formato atual e os formatos antigos, que são migrados.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			return r.withDeps(cmd, func(ctx context.Context, d *Dependencies) error {
				decoded, err := d.Tasks.Import(ctx, data)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%d tarefas importadas\n", decoded.Board.TaskCount())
				if decoded.Migrated() {
					fmt.Fprintf(out, "Migrado da versão %d\n", decoded.FromVersion)
				}
				for _, rep := range decoded.Repairs {
					fmt.Fprintf(out, "Corrigido #%d: %s\n", rep.TaskID, rep.Reason)
				}
				return nil
			})
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido: %q", s)
	}
	return id, nil
}

// columnName returns the display name the board stores for key
func columnName(b *domain.Board, key string) string {
	if c, ok := b.Column(key); ok {
		return c.Name
	}
	return key
}
