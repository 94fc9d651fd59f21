// Command coachctl is the operator tool for the assessment engine: it
// seeds authored content, scores answer sets, renders coaching panels,
// inspects the rule table, and replays recorded fixtures.
package main

// #region imports
import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/soend5/coaching-engine/internal/content"
)

// #endregion

// #region globals

var (
	dbPath string
	debug  bool
	logger *zap.Logger
)

// #endregion

// #region root

var rootCmd = &cobra.Command{
	Use:           "coachctl",
	Short:         "Assessment classification and coaching-strategy tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// #endregion

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openStore() (*content.Store, error) {
	store, err := content.NewStore(dbPath, logger)
	if err != nil {
		return nil, fmt.Errorf("open content store %s: %w", dbPath, err)
	}
	return store, nil
}

// #endregion

// #region main

func main() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", envOr("COACH_DB", "coaching.db"), "path to the content database")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(seedCmd, scoreCmd, panelCmd, rulesCmd, replayCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// #endregion
