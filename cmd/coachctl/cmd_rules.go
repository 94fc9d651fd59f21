package main

// #region imports
import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soend5/coaching-engine/internal/assess"
)

// #endregion

// #region rules-command

var rulesStage string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active matching rules for a stage",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesStage, "stage", "initial", "stage to inspect: initial, middle, or final")
}

func runRules(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stage := assess.Stage(rulesStage)
	rows, err := store.ActiveRuleRows(stage)
	if err != nil {
		return err
	}
	stageDefault, err := store.StageDefault(stage)
	if err != nil {
		return err
	}

	fmt.Printf("stage %s: %d active rule(s)\n", stage, len(rows))
	for _, row := range rows {
		fmt.Printf("  %-24s conf=%-3d prio=%-2d -> %s (%s)\n",
			row.Rule.ID, row.Rule.Confidence, row.Definition.Priority,
			row.Definition.ID, row.Definition.Name)
		if len(row.Rule.RequiredTags) > 0 {
			fmt.Printf("    require: %s\n", strings.Join(row.Rule.RequiredTags, ", "))
		}
		if len(row.Rule.ExcludedTags) > 0 {
			fmt.Printf("    exclude: %s\n", strings.Join(row.Rule.ExcludedTags, ", "))
		}
	}
	if stageDefault != nil {
		fmt.Printf("  default: %s (%s)\n", stageDefault.ID, stageDefault.Name)
	} else {
		fmt.Println("  default: MISSING (matching will fail when no rule applies)")
	}
	return nil
}

// #endregion
