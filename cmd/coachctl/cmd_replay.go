package main

// #region imports
import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soend5/coaching-engine/internal/replay"
)

// #endregion

// #region replay-command

var replayFixture string

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded assessment fixture and check its expectations",
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&replayFixture, "fixture", "", "path to the JSON fixture file")
	_ = replayCmd.MarkFlagRequired("fixture")
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := replay.LoadFixture(replayFixture)
	if err != nil {
		return err
	}

	res, err := replay.RunFixture(f)
	if err != nil {
		return fmt.Errorf("run fixture: %w", err)
	}

	logger.Info("fixture replayed",
		zap.String("fixture", replayFixture),
		zap.Bool("passed", res.Passed),
		zap.Int("failures", len(res.Failures)))

	fmt.Printf("%s\n", res.Description)
	fmt.Printf("  archetype=%s stage=%s strategy=%s from_default=%v\n",
		res.Classification.PrimaryArchetype, res.Classification.Stage,
		res.Selected.Definition.ID, res.Selected.FromDefault)

	if res.Passed {
		fmt.Println("PASS")
		return nil
	}
	for _, failure := range res.Failures {
		fmt.Printf("  FAIL: %s\n", failure)
	}
	return fmt.Errorf("fixture failed with %d mismatch(es)", len(res.Failures))
}

// #endregion
