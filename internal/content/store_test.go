package content

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/soend5/coaching-engine/internal/assess"
	"github.com/soend5/coaching-engine/internal/tag"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "content.db"), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOptionPayloadRoundTrip(t *testing.T) {
	s := tempStore(t)

	in := assess.OptionPayload{
		ArchetypeVote: tag.ArchetypeRuleExecutor,
		DimensionDelta: map[assess.Dimension]int{
			assess.DimRuleDependence:     2,
			assess.DimRiskDefense:        1,
			assess.DimActionConsistency:  0,
			assess.DimEmotionInvolvement: 0,
			assess.DimOpportunityDrive:   1,
			assess.DimExperienceReliance: 0,
		},
		Tags: []string{"image:rule_executor", "rule:high"},
	}
	if err := s.PutOptionPayload("q1_a", "v1", in); err != nil {
		t.Fatalf("PutOptionPayload: %v", err)
	}

	got, err := s.OptionPayloads("v1")
	if err != nil {
		t.Fatalf("OptionPayloads: %v", err)
	}
	if diff := cmp.Diff(map[string]assess.OptionPayload{"q1_a": in}, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}

	// Other quiz versions stay invisible.
	other, err := s.OptionPayloads("v2")
	if err != nil {
		t.Fatalf("OptionPayloads v2: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("v2 payloads: got %d, want 0", len(other))
	}
}

func TestStrategyAndRuleRows(t *testing.T) {
	s := tempStore(t)

	def := assess.StrategyDefinition{
		ID:          "plan-first",
		Stage:       assess.StageInitial,
		Name:        "Plan First",
		Summary:     "Get a written rule in place.",
		CoreGoal:    "One written rule the customer follows.",
		Recommended: []string{"Surface current habits", "Write one rule"},
		Forbidden:   []string{"Suggesting positions"},
		Priority:    5,
	}
	if err := s.UpsertStrategy(def); err != nil {
		t.Fatalf("UpsertStrategy: %v", err)
	}

	rule := assess.MatchingRule{
		ID:           "r-plan-first",
		StrategyID:   "plan-first",
		Stage:        assess.StageInitial,
		RequiredTags: []string{"rule:low"},
		ExcludedTags: []string{"emotion:high"},
		Confidence:   80,
		Active:       true,
	}
	if err := s.UpsertRule(rule); err != nil {
		t.Fatalf("UpsertRule: %v", err)
	}
	inactive := rule
	inactive.ID = "r-disabled"
	inactive.Active = false
	if err := s.UpsertRule(inactive); err != nil {
		t.Fatalf("UpsertRule inactive: %v", err)
	}

	rows, err := s.ActiveRuleRows(assess.StageInitial)
	if err != nil {
		t.Fatalf("ActiveRuleRows: %v", err)
	}
	want := []assess.RuleRow{{Rule: rule, Definition: def}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rule rows mismatch (-want +got):\n%s", diff)
	}

	// Wrong stage returns nothing.
	rows, err = s.ActiveRuleRows(assess.StageFinal)
	if err != nil {
		t.Fatalf("ActiveRuleRows final: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("final rows: got %d, want 0", len(rows))
	}
}

func TestStageDefault(t *testing.T) {
	s := tempStore(t)

	got, err := s.StageDefault(assess.StageMiddle)
	if err != nil {
		t.Fatalf("StageDefault empty: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil default, got %+v", got)
	}

	def := assess.StrategyDefinition{ID: "steady", Stage: assess.StageMiddle, Name: "Steady"}
	if err := s.UpsertStrategy(def); err != nil {
		t.Fatalf("UpsertStrategy: %v", err)
	}
	if err := s.SetStageDefault(assess.StageMiddle, "steady"); err != nil {
		t.Fatalf("SetStageDefault: %v", err)
	}

	got, err = s.StageDefault(assess.StageMiddle)
	if err != nil {
		t.Fatalf("StageDefault: %v", err)
	}
	if got == nil || got.ID != "steady" {
		t.Errorf("got %+v, want steady", got)
	}
}

func TestCoachTags(t *testing.T) {
	s := tempStore(t)

	for _, tg := range []string{"coach:vip", "coach:sys_review", "coach:vip"} {
		if err := s.AddCoachTag("cust-1", tg); err != nil {
			t.Fatalf("AddCoachTag: %v", err)
		}
	}
	got, err := s.CoachTags("cust-1")
	if err != nil {
		t.Fatalf("CoachTags: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("tags: got %v, want 2 unique entries", got)
	}

	got, err = s.CoachTags("cust-2")
	if err != nil {
		t.Fatalf("CoachTags other: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("other customer tags: got %v, want none", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := tempStore(t)

	res := assess.ClassificationResult{
		PrimaryArchetype: tag.ArchetypeTrendChaser,
		Stage:            assess.StageMiddle,
		DimensionScores: map[assess.Dimension]int{
			assess.DimRuleDependence:     40,
			assess.DimRiskDefense:        55,
			assess.DimActionConsistency:  50,
			assess.DimEmotionInvolvement: 60,
			assess.DimOpportunityDrive:   70,
			assess.DimExperienceReliance: 30,
		},
		Tags: []string{"image:trend_chaser", "phase:long_completed", "opportunity:high"},
	}

	saved, err := s.SaveSnapshot(SnapshotFrom("cust-1", assess.ModeLong, res))
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if saved.ID == "" || saved.CreatedAt.IsZero() {
		t.Fatalf("snapshot missing id or timestamp: %+v", saved)
	}

	list, err := s.Snapshots("cust-1", 10)
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("snapshots: got %d, want 1", len(list))
	}
	got := list[0]
	if got.ID != saved.ID || got.Archetype != tag.ArchetypeTrendChaser || got.Stage != assess.StageMiddle {
		t.Errorf("snapshot fields mismatch: %+v", got)
	}
	if got.Stability != "" {
		t.Errorf("long-mode snapshot must have empty stability, got %q", got.Stability)
	}
	if diff := cmp.Diff(res.DimensionScores, got.DimensionScores); diff != "" {
		t.Errorf("dimension scores (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(res.Tags, got.Tags); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
}
