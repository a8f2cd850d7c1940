package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewMemoryCmd(a *app) *cobra.Command {
	var level, notes string

	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Save a memory checkpoint for today",
		Long:  `Records the current level and free-form notes under today's date, replacing any checkpoint already saved today.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tutor.WriteMemory(map[string]any{"level": level, "notes": notes}); err != nil {
				return fmt.Errorf("memory: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Memory saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "Current proficiency level (e.g. A2)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}
