package replay

// #region imports
import (
	"fmt"

	"github.com/soend5/coaching-engine/internal/assess"
)

// #endregion

// #region result

// Result captures one fixture run through the full pipeline:
// score → highlight → match → panel, plus every expectation miss.
type Result struct {
	Description    string
	Passed         bool
	Failures       []string
	Classification assess.ClassificationResult
	Highlights     []assess.Highlight
	Selected       assess.SelectedStrategy
	Panel          assess.Panel
}

// #endregion

// #region run

// RunFixture replays a recorded assessment entirely in memory and checks
// the pinned expectations.
func RunFixture(f *Fixture) (Result, error) {
	res := Result{Description: f.Description}

	classification, err := assess.Score(f.Answers, f.payloads(), assess.Mode(f.Mode))
	if err != nil {
		return Result{}, fmt.Errorf("score: %w", err)
	}
	res.Classification = classification

	res.Highlights = assess.PickHighlights(classification.Tags, 2)

	selected, err := assess.Match(classification.Stage, classification.Tags,
		f.ruleRows(), f.stageDefault(classification.Stage))
	if err != nil {
		return Result{}, fmt.Errorf("match: %w", err)
	}
	res.Selected = selected

	res.Panel = assess.GeneratePanel(classification.Stage, classification.PrimaryArchetype,
		res.Highlights, selected, f.CoachTags)

	res.Failures = checkExpectations(f.Expect, res)
	res.Passed = len(res.Failures) == 0
	return res, nil
}

// #endregion run

// #region expectations

func checkExpectations(want Expectation, got Result) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	if want.Archetype != "" && string(got.Classification.PrimaryArchetype) != want.Archetype {
		fail("archetype: got %s, want %s", got.Classification.PrimaryArchetype, want.Archetype)
	}
	if want.Stage != "" && string(got.Classification.Stage) != want.Stage {
		fail("stage: got %s, want %s", got.Classification.Stage, want.Stage)
	}
	if want.Stability != "" && string(got.Classification.Stability) != want.Stability {
		fail("stability: got %s, want %s", got.Classification.Stability, want.Stability)
	}
	if want.StrategyID != "" && got.Selected.Definition.ID != want.StrategyID {
		fail("strategy: got %s, want %s", got.Selected.Definition.ID, want.StrategyID)
	}
	if got.Selected.FromDefault != want.FromDefault {
		fail("from_default: got %v, want %v", got.Selected.FromDefault, want.FromDefault)
	}

	have := make(map[string]bool, len(got.Classification.Tags))
	for _, t := range got.Classification.Tags {
		have[t] = true
	}
	for _, t := range want.Tags {
		if !have[t] {
			fail("tag set missing %s (have %v)", t, got.Classification.Tags)
		}
	}

	if want.Highlights != nil {
		if len(got.Highlights) != len(want.Highlights) {
			fail("highlights: got %d, want %d", len(got.Highlights), len(want.Highlights))
		} else {
			for i, w := range want.Highlights {
				if got.Highlights[i].Tag != w {
					fail("highlight[%d]: got %s, want %s", i, got.Highlights[i].Tag, w)
				}
			}
		}
	}

	return failures
}

// #endregion expectations
