package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skaufmann/sprachtutor/internal/config"
	"github.com/skaufmann/sprachtutor/internal/provider"
	"github.com/skaufmann/sprachtutor/internal/store"
	"github.com/skaufmann/sprachtutor/internal/token"
	"github.com/skaufmann/sprachtutor/internal/tutor"
)

type app struct {
	cfg   *config.Config
	store *store.Store
	tutor *tutor.Tutor
	log   *zap.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}

	var counter store.TokenCounter
	if tk, err := token.NewTiktoken(cfg.Provider.TokenizerModel); err == nil {
		counter = tk
	} else {
		log.Warn("tokenizer encoding unavailable, using byte estimate", zap.Error(err))
		counter = token.Estimator{}
	}

	st := store.New(cfg.DataDir, counter, cfg.MaxHistoryTokens)
	llm := provider.NewOpenAI(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.ChatModel, cfg.Provider.BatchModel)
	tut := tutor.New(st, llm, log, tutor.WithInterval(cfg.BatchIntervalDays))

	return &app{cfg: cfg, store: st, tutor: tut, log: log}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sprachtutor",
		Short:         "Personal German tutor on the command line",
		Long:          `Maintains a vocabulary store, chat history and memory checkpoints, delegating content generation to an LLM service.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.AddCommand(
		NewChatCmd(a),
		NewTeachCmd(a),
		NewQuizCmd(a),
		NewReviewCmd(a),
		NewMemoryCmd(a),
		NewSessionsCmd(a),
	)
	return rootCmd
}
