package cmd

import (
	"bytes"

	"envstack/internal/journal"
	"envstack/internal/render"
	"envstack/internal/stack"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pop <stack-name>",
		Short: "Print a stack as export statements and delete it",
		Long: `pop writes the saved variables as shell export statements and then
removes the stack. Evaluate the output to restore them:

  eval "$(envstack pop work)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			st, err := a.store.Pop(args[0], func(st *stack.Stack) error {
				var buf bytes.Buffer
				if err := render.Write(&buf, st, render.FormatExport); err != nil {
					return err
				}
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			})
			if err != nil {
				return err
			}
			a.record(journal.OpPop, st)
			a.log.Info("popped stack", zap.String("stack", st.Name))
			return nil
		},
	}
}
