package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skaufmann/sprachtutor/internal/tutor"
)

func NewTeachCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "teach",
		Short: "Generate a new batch of vocabulary words",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				count = a.cfg.BatchSize
			}
			due, err := a.tutor.ShouldGenerate()
			if err != nil {
				return err
			}
			if !due {
				fmt.Fprintln(cmd.OutOrStdout(), "The last batch is still fresh; come back in a few days.")
				return nil
			}
			results, err := a.tutor.GenerateBatch(cmd.Context(), count)
			if err != nil {
				return fmt.Errorf("teach: %w", err)
			}
			added := tutor.Added(results)
			for _, e := range added {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s - %s\n", e.Root, e.English)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d new words (%d candidates rejected).\n",
				len(added), len(results)-len(added))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "How many words to request (default from config)")
	return cmd
}
