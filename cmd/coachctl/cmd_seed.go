package main

// #region imports
import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soend5/coaching-engine/internal/content"
)

// #endregion

// #region seed-command

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load an authored content file into the database",
	Long: `Validate a YAML content file (option payloads, strategy definitions,
matching rules, stage defaults) and write it into the content database.
An invalid file is rejected before anything is written.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "seed.yaml", "path to the YAML content file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := content.LoadSeed(seedFile)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ApplySeed(f); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}

	logger.Info("content seeded",
		zap.String("file", seedFile),
		zap.String("quiz", f.QuizVersion),
		zap.Int("options", len(f.Options)),
		zap.Int("strategies", len(f.Strategies)),
		zap.Int("rules", len(f.Rules)))
	fmt.Printf("seeded %d options, %d strategies, %d rules from %s\n",
		len(f.Options), len(f.Strategies), len(f.Rules), seedFile)
	return nil
}

// #endregion
