package main

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soend5/coaching-engine/internal/assess"
	"github.com/soend5/coaching-engine/internal/content"
)

// #endregion

// #region score-command

var (
	scoreMode     string
	scoreQuiz     string
	scoreAnswers  string
	scoreCustomer string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Classify an answer set into a behavioral profile",
	Long: `Read an answers file (JSON object mapping question id to chosen
option id), resolve option payloads from the content database, and print
the classification. With --customer the result is also persisted as a
snapshot.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreMode, "mode", "short", "assessment mode: short or long")
	scoreCmd.Flags().StringVar(&scoreQuiz, "quiz", envOr("COACH_QUIZ_VERSION", "v1"), "quiz version the answers belong to")
	scoreCmd.Flags().StringVar(&scoreAnswers, "answers", "", "path to the answers JSON file")
	scoreCmd.Flags().StringVar(&scoreCustomer, "customer", "", "customer id; when set the snapshot is persisted")
	_ = scoreCmd.MarkFlagRequired("answers")
}

func loadAnswers(path string) (assess.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers %s: %w", path, err)
	}
	var answers assess.AnswerSet
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	return answers, nil
}

func runScore(cmd *cobra.Command, args []string) error {
	answers, err := loadAnswers(scoreAnswers)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	payloads, err := store.OptionPayloads(scoreQuiz)
	if err != nil {
		return err
	}

	res, err := assess.Score(answers, payloads, assess.Mode(scoreMode))
	if err != nil {
		return err
	}

	logger.Info("answer set scored",
		zap.String("mode", scoreMode),
		zap.Int("answers", len(answers)),
		zap.Int("resolved", res.AnsweredCount),
		zap.String("archetype", string(res.PrimaryArchetype)),
		zap.String("stage", string(res.Stage)))

	if scoreCustomer != "" {
		snap, err := store.SaveSnapshot(content.SnapshotFrom(scoreCustomer, assess.Mode(scoreMode), res))
		if err != nil {
			return err
		}
		logger.Info("snapshot persisted", zap.String("snapshot", snap.ID), zap.String("customer", scoreCustomer))
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// #endregion
