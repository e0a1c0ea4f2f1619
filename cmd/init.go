package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"envstack/internal/journal"

	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the storage directory and history journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			dbFile := filepath.Join(a.cfg.Dir, journal.FileName)
			if _, err := os.Stat(dbFile); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Already initialized — %s exists\n", dbFile)
				return nil
			}

			j, err := journal.Open(a.cfg.Dir)
			if err != nil {
				return fmt.Errorf("init failed: %w", err)
			}
			j.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized envstack in %s\n", a.cfg.Dir)
			return nil
		},
	}
}
