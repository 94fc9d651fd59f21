package assess

import (
	"errors"
	"testing"
)

func def(id string, stage Stage, priority int) StrategyDefinition {
	return StrategyDefinition{ID: id, Stage: stage, Name: id, Priority: priority}
}

func row(ruleID, strategyID string, stage Stage, confidence int, def StrategyDefinition, required, excluded []string) RuleRow {
	return RuleRow{
		Rule: MatchingRule{
			ID:           ruleID,
			StrategyID:   strategyID,
			Stage:        stage,
			RequiredTags: required,
			ExcludedTags: excluded,
			Confidence:   confidence,
			Active:       true,
		},
		Definition: def,
	}
}

func TestMatchRequiredSubset(t *testing.T) {
	d := def("s1", StageInitial, 0)
	fallback := def("fallback", StageInitial, 0)
	rows := []RuleRow{
		row("r1", "s1", StageInitial, 90, d, []string{"rule:high", "risk:high"}, nil),
	}

	// Missing risk:high — the rule must not match.
	got, err := Match(StageInitial, []string{"rule:high"}, rows, &fallback)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !got.FromDefault {
		t.Errorf("partial required set matched, want default")
	}

	// Both present — matches.
	got, err = Match(StageInitial, []string{"rule:high", "risk:high", "coach:vip"}, rows, &fallback)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.FromDefault || got.Definition.ID != "s1" {
		t.Errorf("got %+v, want rule match on s1", got)
	}
	if got.RuleID != "r1" || got.Confidence != 90 {
		t.Errorf("rule id/confidence: got %s/%d, want r1/90", got.RuleID, got.Confidence)
	}
}

func TestMatchExclusion(t *testing.T) {
	d := def("s1", StageInitial, 0)
	fallback := def("fallback", StageInitial, 0)
	rows := []RuleRow{
		row("r1", "s1", StageInitial, 90, d, []string{"rule:high"}, []string{"emotion:high"}),
	}

	got, err := Match(StageInitial, []string{"rule:high", "emotion:high"}, rows, &fallback)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !got.FromDefault {
		t.Errorf("excluded tag present but rule matched")
	}
}

func TestMatchTotalOrder(t *testing.T) {
	lowPrio := def("s-low", StageMiddle, 1)
	highPrio := def("s-high", StageMiddle, 9)

	tests := []struct {
		name     string
		rows     []RuleRow
		wantRule string
	}{
		{
			"confidence-wins",
			[]RuleRow{
				row("r1", "s-low", StageMiddle, 50, lowPrio, nil, nil),
				row("r2", "s-high", StageMiddle, 80, highPrio, nil, nil),
			},
			"r2",
		},
		{
			"priority-breaks-confidence-tie",
			[]RuleRow{
				row("r1", "s-low", StageMiddle, 70, lowPrio, nil, nil),
				row("r2", "s-high", StageMiddle, 70, highPrio, nil, nil),
			},
			"r2",
		},
		{
			"rule-id-breaks-full-tie",
			[]RuleRow{
				row("r9", "s-high", StageMiddle, 70, highPrio, nil, nil),
				row("r2", "s-high", StageMiddle, 70, highPrio, nil, nil),
			},
			"r2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(StageMiddle, []string{"rule:high"}, tt.rows, nil)
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if got.RuleID != tt.wantRule {
				t.Errorf("got rule %s, want %s", got.RuleID, tt.wantRule)
			}
		})
	}
}

func TestMatchFiltersStageAndInactive(t *testing.T) {
	d := def("s1", StageFinal, 0)
	fallback := def("fallback", StageInitial, 0)

	inactive := row("r1", "s1", StageInitial, 99, d, nil, nil)
	inactive.Rule.Active = false
	wrongStage := row("r2", "s1", StageFinal, 99, d, nil, nil)

	got, err := Match(StageInitial, []string{"rule:high"}, []RuleRow{inactive, wrongStage}, &fallback)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !got.FromDefault {
		t.Errorf("inactive or wrong-stage rule matched: %+v", got)
	}
}

func TestMatchStageOnlyRule(t *testing.T) {
	// Empty required set: matches even a tag set with no behavior tags.
	d := def("s1", StageInitial, 0)
	rows := []RuleRow{row("r1", "s1", StageInitial, 10, d, nil, nil)}

	got, err := Match(StageInitial, []string{"image:rule_executor", "phase:short_completed"}, rows, nil)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.FromDefault || got.RuleID != "r1" {
		t.Errorf("stage-only rule did not match: %+v", got)
	}
}

func TestMatchFallbackAndHardFailure(t *testing.T) {
	fallback := def("fallback", StageFinal, 0)

	got, err := Match(StageFinal, []string{"rule:high"}, nil, &fallback)
	if err != nil {
		t.Fatalf("Match with default: %v", err)
	}
	if !got.FromDefault || got.Definition.ID != "fallback" {
		t.Errorf("got %+v, want stage default", got)
	}
	if got.RuleID != "" || got.Confidence != 0 {
		t.Errorf("default selection must carry no rule id or confidence: %+v", got)
	}

	_, err = Match(StageFinal, []string{"rule:high"}, nil, nil)
	if !errors.Is(err, ErrNoApplicableStrategy) {
		t.Errorf("no rules, no default: got %v, want ErrNoApplicableStrategy", err)
	}
}
