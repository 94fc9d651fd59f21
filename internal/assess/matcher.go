package assess

// #region imports
import (
	"errors"
	"fmt"
	"sort"
)

// #endregion

// #region errors

// ErrNoApplicableStrategy means no rule matched and the stage has no
// default definition. That is a content-authoring defect, surfaced loudly
// so the host can alert instead of rendering an empty panel.
var ErrNoApplicableStrategy = errors.New("no applicable strategy")

// #endregion

// #region match

// Match selects the best-fitting strategy for a profile. Candidate rules
// must be active, scoped to the stage, have all required tags present and
// no excluded tag present. The winner is chosen by a documented total
// order: confidence descending, definition priority descending, rule id
// ascending. With no candidates the stage default wins; with no default
// either, Match fails.
func Match(stage Stage, tags []string, rows []RuleRow, stageDefault *StrategyDefinition) (SelectedStrategy, error) {
	have := make(map[string]bool, len(tags))
	for _, t := range tags {
		have[t] = true
	}

	var candidates []RuleRow
	for _, row := range rows {
		if !row.Rule.Active || row.Rule.Stage != stage {
			continue
		}
		if !containsAll(have, row.Rule.RequiredTags) {
			continue
		}
		if containsAny(have, row.Rule.ExcludedTags) {
			continue
		}
		candidates = append(candidates, row)
	}

	if len(candidates) > 0 {
		sort.Slice(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if a.Rule.Confidence != b.Rule.Confidence {
				return a.Rule.Confidence > b.Rule.Confidence
			}
			if a.Definition.Priority != b.Definition.Priority {
				return a.Definition.Priority > b.Definition.Priority
			}
			return a.Rule.ID < b.Rule.ID
		})
		best := candidates[0]
		return SelectedStrategy{
			Definition: best.Definition,
			RuleID:     best.Rule.ID,
			Confidence: best.Rule.Confidence,
		}, nil
	}

	if stageDefault != nil {
		return SelectedStrategy{Definition: *stageDefault, FromDefault: true}, nil
	}

	return SelectedStrategy{}, fmt.Errorf("%w: stage %s has no matching rule and no default", ErrNoApplicableStrategy, stage)
}

// #endregion match

// #region set-helpers

// containsAll reports required ⊆ have. An empty required set always
// matches, which is how stage-only rules work.
func containsAll(have map[string]bool, required []string) bool {
	for _, t := range required {
		if !have[t] {
			return false
		}
	}
	return true
}

func containsAny(have map[string]bool, excluded []string) bool {
	for _, t := range excluded {
		if have[t] {
			return true
		}
	}
	return false
}

// #endregion
