package cmd

import (
	"fmt"

	"envstack/internal/journal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyOpPush = color.New(color.FgGreen).SprintFunc()
	historyOpPop  = color.New(color.FgYellow).SprintFunc()
)

func newHistoryCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [stack-name]",
		Short: "Show recent push and pop operations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			j, err := journal.Open(a.cfg.Dir)
			if err != nil {
				return err
			}
			defer j.Close()

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			events, err := j.List(name, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No history yet — run 'envstack push' first")
				return nil
			}
			fmt.Fprintf(out, "%-6s %-20s %-5s %-16s %s\n", "ID", "CREATED", "OP", "STACK", "VARS")
			fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────")
			for _, e := range events {
				fmt.Fprintf(out, "%-6d %-20s %s %-16s %s\n",
					e.ID,
					e.CreatedAt.Local().Format("2006-01-02 15:04"),
					colorOp(e.Op),
					e.Stack,
					e.Vars,
				)
			}
			if total, err := j.Count(name); err == nil {
				fmt.Fprintf(out, "\nShowing %d of %d events\n", len(events), total)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "max number of events to show")
	return cmd
}

func colorOp(op journal.Op) string {
	padded := fmt.Sprintf("%-5s", op)
	switch op {
	case journal.OpPush:
		return historyOpPush(padded)
	case journal.OpPop:
		return historyOpPop(padded)
	}
	return padded
}
