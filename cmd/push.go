package cmd

import (
	"envstack/internal/journal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPushCommand() *cobra.Command {
	var envs []string
	cmd := &cobra.Command{
		Use:   "push <stack-name> [-e NAME...] [NAME...]",
		Short: "Snapshot environment variables into a new stack",
		Example: `  envstack push work -e PATH HOME
  envstack push work --envs PATH,HOME,EDITOR`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			names := append(append([]string(nil), envs...), args[1:]...)
			st, err := a.store.Push(args[0], names)
			if err != nil {
				return err
			}
			a.record(journal.OpPush, st)
			a.log.Info("pushed stack", zap.String("stack", st.Name), zap.Strings("vars", st.Keys()))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&envs, "envs", "e", nil, "Environment variables to save (repeat, comma-separate, or list after the stack name)")
	return cmd
}
