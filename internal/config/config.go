// Package config loads the tutor's configuration from YAML and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir           string         `yaml:"data_dir" mapstructure:"data_dir"`
	Provider          ProviderConfig `yaml:"provider" mapstructure:"provider"`
	MaxHistoryTokens  int            `yaml:"max_history_tokens" mapstructure:"max_history_tokens"`
	BatchIntervalDays int            `yaml:"batch_interval_days" mapstructure:"batch_interval_days"`
	BatchSize         int            `yaml:"batch_size" mapstructure:"batch_size"`
	QuizQuestions     int            `yaml:"quiz_questions" mapstructure:"quiz_questions"`
}

type ProviderConfig struct {
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	APIKey         string `yaml:"api_key" mapstructure:"api_key"`
	ChatModel      string `yaml:"chat_model" mapstructure:"chat_model"`
	BatchModel     string `yaml:"batch_model" mapstructure:"batch_model"`
	TokenizerModel string `yaml:"tokenizer_model" mapstructure:"tokenizer_model"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "sprachtutor")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "sprachtutor")
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:           dataDir(),
		MaxHistoryTokens:  600000,
		BatchIntervalDays: 3,
		BatchSize:         20,
		QuizQuestions:     5,
		Provider: ProviderConfig{
			BaseURL:        "https://api.openai.com/v1",
			APIKey:         "$OPENAI_API_KEY",
			ChatModel:      "gpt-4.1",
			BatchModel:     "o4-mini",
			TokenizerModel: "gpt-4",
		},
	}
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "sprachtutor"))
	}
	home, _ := os.UserHomeDir()
	viper.AddConfigPath(filepath.Join(home, ".config", "sprachtutor"))

	viper.SetEnvPrefix("SPRACHTUTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file; defaults apply.
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.Provider.APIKey = expandEnv(cfg.Provider.APIKey)
	cfg.Provider.BaseURL = expandEnv(cfg.Provider.BaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and restores defaults for out-of-range
// values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("config: provider.base_url is required")
	}
	if c.Provider.ChatModel == "" || c.Provider.BatchModel == "" {
		return fmt.Errorf("config: provider.chat_model and provider.batch_model are required")
	}
	if c.MaxHistoryTokens < 1 {
		c.MaxHistoryTokens = 600000
	}
	if c.BatchIntervalDays < 1 {
		c.BatchIntervalDays = 3
	}
	if c.BatchSize < 1 {
		c.BatchSize = 20
	}
	if c.QuizQuestions < 1 {
		c.QuizQuestions = 5
	}
	return nil
}
