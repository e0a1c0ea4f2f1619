package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"envstack/internal/config"
	"envstack/internal/journal"
	"envstack/internal/logging"
	"envstack/internal/stack"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// app carries the resolved configuration for one invocation.
type app struct {
	cfg   config.Config
	log   *zap.Logger
	store *stack.Store
}

type appKey struct{}

func withApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

func appFrom(cmd *cobra.Command) (*app, error) {
	if ctx := cmd.Context(); ctx != nil {
		if a, ok := ctx.Value(appKey{}).(*app); ok {
			return a, nil
		}
	}
	return nil, errors.New("configuration not loaded")
}

// openJournal returns nil when the journal cannot be opened; the stack
// operation itself must not fail because of it.
func (a *app) openJournal() *journal.Journal {
	j, err := journal.Open(a.cfg.Dir)
	if err != nil {
		a.log.Warn("journal unavailable", zap.Error(err))
		return nil
	}
	return j
}

func (a *app) record(op journal.Op, st *stack.Stack) {
	j := a.openJournal()
	if j == nil {
		return
	}
	defer j.Close()
	if _, err := j.Record(op, st.Name, st.Keys()); err != nil {
		a.log.Warn("journal write failed", zap.String("stack", st.Name), zap.Error(err))
	}
}

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envstack",
		Short: "Save and restore named stacks of environment variables",
		Long: `envstack snapshots environment variables into named stacks stored as
plain files, so they can be printed later or popped back into a shell with
  eval "$(envstack pop <name>)"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.NewViper(), cmd.Flags())
			if err != nil {
				return err
			}
			log := logging.New(cfg.Verbose, cmd.OutOrStdout(), cmd.ErrOrStderr())
			a := &app{cfg: cfg, log: log, store: stack.New(cfg.Dir, log)}
			log.Debug("resolved configuration", zap.String("dir", cfg.Dir))
			cmd.SetContext(withApp(cmd.Context(), a))
			return nil
		},
	}
	cmd.PersistentFlags().String(config.KeyDir, "", "Directory holding stack files (default ~/.envarstacks)")
	cmd.PersistentFlags().BoolP(config.KeyVerbose, "v", false, "Log diagnostic output to stdout")

	cmd.AddCommand(
		newInitCommand(),
		newPushCommand(),
		newPopCommand(),
		newPrintCommand(),
		newListCommand(),
		newHistoryCommand(),
		newPathCommand(),
	)
	return cmd
}

func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	prefix := color.New(color.FgRed, color.Bold).Sprint("Error:")
	fmt.Fprintf(w, "%s %s\n", prefix, err)
}
