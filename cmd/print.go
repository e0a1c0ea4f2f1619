package cmd

import (
	"fmt"
	"strings"

	"envstack/internal/config"
	"envstack/internal/render"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPrintCommand() *cobra.Command {
	var copyOut bool
	cmd := &cobra.Command{
		Use:   "print <stack-name>",
		Short: "Show the variables saved in a stack without removing it",
		Long: `print writes the saved variables without removing the stack.

The default env format writes values as-is, so a value containing a newline
spans several lines. Use -o json or -o yaml when values may hold newlines and
the output has to be parsed back.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(a.cfg.Output)
			if err != nil {
				return err
			}
			st, err := a.store.Get(args[0])
			if err != nil {
				return err
			}
			out, err := render.String(st, format)
			if err != nil {
				return err
			}

			if copyOut {
				if err := clipboard.WriteAll(out); err != nil {
					a.log.Warn("could not copy to clipboard", zap.Error(err))
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), "Stack copied to clipboard!")
					return nil
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	var formats []string
	for _, f := range render.Formats() {
		formats = append(formats, string(f))
	}
	cmd.Flags().StringP(config.KeyOutput, "o", string(render.FormatEnv), "Output format ("+strings.Join(formats, ", ")+")")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the output to the clipboard instead of printing it")
	return cmd
}
