package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func NewChatCmd(a *app) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat <message...>",
		Short: "Send a chat message to the tutor",
		Long:  `Sends one message in a chat session and prints the tutor's reply. Without --session a fresh session id is minted and printed.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessionID == "" {
				sessionID = uuid.NewString()
				fmt.Fprintf(cmd.OutOrStdout(), "session: %s\n", sessionID)
			}
			reply, err := a.tutor.Interact(cmd.Context(), sessionID, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session id to continue")
	return cmd
}
