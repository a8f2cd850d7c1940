package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
)

func NewQuizCmd(a *app) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take a multiple-choice vocabulary quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				n = a.cfg.QuizQuestions
			}
			questions, err := a.tutor.ComposeQuiz(n)
			if err != nil {
				return fmt.Errorf("quiz: %w", err)
			}
			if len(questions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No vocabulary yet. Run 'sprachtutor teach' first.")
				return nil
			}
			for i, q := range questions {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. Translate: %s\n", i+1, q.Root)
				choices := append(append([]string(nil), q.Distractors...), q.Answer)
				rand.Shuffle(len(choices), func(x, y int) { choices[x], choices[y] = choices[y], choices[x] })
				for j, c := range choices {
					fmt.Fprintf(cmd.OutOrStdout(), "   %c) %s\n", 'a'+j, c)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "questions", "n", 0, "Number of questions (default from config)")
	return cmd
}
