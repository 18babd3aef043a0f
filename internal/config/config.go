// Package config resolves ToneMaster settings from, in rising priority,
// built-in defaults, an optional tonemaster.yaml, TONEMASTER_* environment
// variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/shioubi0216/ToneMasterAI/internal/llm"
	"github.com/shioubi0216/ToneMasterAI/internal/logging"
	"github.com/shioubi0216/ToneMasterAI/internal/store"
)

// EnvPrefix prefixes every environment override, e.g.
// TONEMASTER_PROGRESS_BACKEND.
const EnvPrefix = "TONEMASTER"

// Progress backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the resolved application configuration.
type Config struct {
	// DataDir holds the progress document and the SQLite database.
	DataDir string `mapstructure:"data_dir"`

	Progress ProgressConfig `mapstructure:"progress"`
	Corpus   CorpusConfig   `mapstructure:"corpus"`
	LLM      llm.Config     `mapstructure:"llm"`
	Log      logging.Config `mapstructure:"log"`
}

// ProgressConfig selects where learner progress is kept.
type ProgressConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=json sqlite"`
}

// CorpusConfig points at the optional sentence dataset.
type CorpusConfig struct {
	// SentencesPath is a TSV of (id, lang, text). Empty uses the built-in
	// sentences.
	SentencesPath string `mapstructure:"sentences_path"`

	// TranslationsPath is a TSV of (sourceId, targetId, text).
	TranslationsPath string `mapstructure:"translations_path"`

	MaxRows   int    `mapstructure:"max_rows" validate:"gte=0"`
	Segmenter string `mapstructure:"segmenter" validate:"oneof=whitespace kagome"`
}

// Options carries the command-line overrides.
type Options struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string

	// DataDir overrides every other data directory source.
	DataDir string
}

// Default returns the built-in configuration. DataDir is left empty and
// resolved by Load.
func Default() Config {
	return Config{
		Progress: ProgressConfig{Backend: BackendJSON},
		Corpus:   CorpusConfig{MaxRows: 5000, Segmenter: "whitespace"},
		LLM:      llm.DefaultConfig(),
		Log:      logging.DefaultConfig(),
	}
}

// Load resolves the configuration.
func Load(opts Options) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("tonemaster")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	switch {
	case opts.DataDir != "":
		cfg.DataDir = opts.DataDir
	case cfg.DataDir == "":
		dir, err := store.DefaultDataDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve data directory: %w", err)
		}
		cfg.DataDir = dir
	}

	llm.Discover(&cfg.LLM)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and the LLM provider settings.
func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ProgressPath is the JSON progress document location.
func (c Config) ProgressPath() string {
	return filepath.Join(c.DataDir, "progress.json")
}

// DBPath is the SQLite database location.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "tonemaster.db")
}

// configDir returns $XDG_CONFIG_HOME/tonemaster, or ~/.config/tonemaster.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tonemaster"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tonemaster"), nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("data_dir", d.DataDir)

	v.SetDefault("progress.backend", d.Progress.Backend)

	v.SetDefault("corpus.sentences_path", d.Corpus.SentencesPath)
	v.SetDefault("corpus.translations_path", d.Corpus.TranslationsPath)
	v.SetDefault("corpus.max_rows", d.Corpus.MaxRows)
	v.SetDefault("corpus.segmenter", d.Corpus.Segmenter)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.anthropic.api_key", d.LLM.Anthropic.APIKey)
	v.SetDefault("llm.anthropic.model", d.LLM.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", d.LLM.OpenAI.APIKey)
	v.SetDefault("llm.openai.model", d.LLM.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", d.LLM.OpenAI.BaseURL)
	v.SetDefault("llm.gemini.api_key", d.LLM.Gemini.APIKey)
	v.SetDefault("llm.gemini.model", d.LLM.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", d.LLM.OpenRouter.APIKey)
	v.SetDefault("llm.openrouter.model", d.LLM.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", d.LLM.OpenRouter.BaseURL)
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)

	v.SetDefault("log.mode", d.Log.Mode)
	v.SetDefault("log.level", d.Log.Level)
}
