package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewReviewCmd(a *app) *cobra.Command {
	var unknown bool

	cmd := &cobra.Command{
		Use:   "review <root>",
		Short: "Mark a vocabulary entry as known or unknown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tutor.Review(args[0], !unknown); err != nil {
				return fmt.Errorf("review: %w", err)
			}
			state := "known"
			if unknown {
				state = "unknown"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as %s.\n", args[0], state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unknown, "unknown", false, "Mark the entry as not yet known")
	return cmd
}
