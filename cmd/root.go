package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shioubi0216/ToneMasterAI/internal/app"
	"github.com/shioubi0216/ToneMasterAI/internal/config"
	"github.com/shioubi0216/ToneMasterAI/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tonemaster",
	Short: "Japanese practice in the terminal",
	Long: "ToneMaster generates Japanese practice exercises from kana to dialogues,\n" +
		"tracks your progress and recommends what to practise next.",
	SilenceUsage: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for progress and the database (overrides TONEMASTER_DATA_DIR)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: ./tonemaster.yaml or $XDG_CONFIG_HOME/tonemaster/tonemaster.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration using --config and --data-dir (highest
// priority), then TONEMASTER_* env vars, then the config file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	cfg, err := config.Load(config.Options{ConfigFile: file, DataDir: dataDir})
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// session bundles what a command needs for one run.
type session struct {
	cfg config.Config
	log *zap.Logger
	app *app.App
}

// openSession loads configuration, builds the logger and opens the App.
func openSession(cmd *cobra.Command, opts ...app.Option) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	a, err := app.New(cmd.Context(), cfg, log, opts...)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("start: %w", err)
	}
	return &session{cfg: cfg, log: log, app: a}, nil
}

func (s *session) Close() {
	if err := s.app.Close(); err != nil {
		s.log.Warn("close database", zap.Error(err))
	}
	_ = s.log.Sync()
}
