package main

// #region imports
import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soend5/coaching-engine/internal/assess"
	"github.com/soend5/coaching-engine/internal/content"
)

// #endregion

// #region panel-command

var (
	panelMode     string
	panelQuiz     string
	panelAnswers  string
	panelCustomer string
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Run the full pipeline and render a coaching panel",
	Long: `Score an answer set, match the profile against the active rule
table, and print the coaching panel a customer-detail view would show.
The classification snapshot is persisted for the customer.`,
	RunE: runPanel,
}

func init() {
	panelCmd.Flags().StringVar(&panelMode, "mode", "short", "assessment mode: short or long")
	panelCmd.Flags().StringVar(&panelQuiz, "quiz", envOr("COACH_QUIZ_VERSION", "v1"), "quiz version the answers belong to")
	panelCmd.Flags().StringVar(&panelAnswers, "answers", "", "path to the answers JSON file")
	panelCmd.Flags().StringVar(&panelCustomer, "customer", "", "customer id")
	_ = panelCmd.MarkFlagRequired("answers")
	_ = panelCmd.MarkFlagRequired("customer")
}

func runPanel(cmd *cobra.Command, args []string) error {
	answers, err := loadAnswers(panelAnswers)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	payloads, err := store.OptionPayloads(panelQuiz)
	if err != nil {
		return err
	}

	res, err := assess.Score(answers, payloads, assess.Mode(panelMode))
	if err != nil {
		return err
	}

	if _, err := store.SaveSnapshot(content.SnapshotFrom(panelCustomer, assess.Mode(panelMode), res)); err != nil {
		return err
	}

	// The rule table is read in one query so a concurrent content edit
	// cannot produce a hybrid match.
	rows, err := store.ActiveRuleRows(res.Stage)
	if err != nil {
		return err
	}
	stageDefault, err := store.StageDefault(res.Stage)
	if err != nil {
		return err
	}

	selected, err := assess.Match(res.Stage, res.Tags, rows, stageDefault)
	if errors.Is(err, assess.ErrNoApplicableStrategy) {
		logger.Error("no strategy configured", zap.String("stage", string(res.Stage)), zap.Error(err))
		fmt.Printf("no strategy configured for stage %s; fix the content before coaching this customer\n", res.Stage)
		return err
	}
	if err != nil {
		return err
	}

	coachTags, err := store.CoachTags(panelCustomer)
	if err != nil {
		return err
	}

	highlights := assess.PickHighlights(res.Tags, 2)
	panel := assess.GeneratePanel(res.Stage, res.PrimaryArchetype, highlights, selected, coachTags)

	logger.Info("panel generated",
		zap.String("customer", panelCustomer),
		zap.String("stage", string(res.Stage)),
		zap.String("strategy", selected.Definition.ID),
		zap.Bool("from_default", selected.FromDefault))

	out, err := json.MarshalIndent(struct {
		Classification assess.ClassificationResult
		Strategy       assess.SelectedStrategy
		Panel          assess.Panel
	}{res, selected, panel}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal panel: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// #endregion
