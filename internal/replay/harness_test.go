package replay

import (
	"errors"
	"testing"

	"github.com/soend5/coaching-engine/internal/assess"
)

func baseFixture() *Fixture {
	return &Fixture{
		Description: "inline",
		Mode:        "short",
		Answers:     map[string]string{"q1": "o1", "q2": "o2", "q3": "o3"},
		Options: map[string]FixtureOption{
			"o1": {ArchetypeVote: "risk_sheltered", Tags: []string{"image:risk_sheltered", "risk:high"}},
			"o2": {ArchetypeVote: "risk_sheltered", Tags: []string{"image:risk_sheltered", "risk:high"}},
			"o3": {ArchetypeVote: "risk_sheltered", Tags: []string{"image:risk_sheltered"}},
		},
		Strategies: []FixtureStrategy{
			{ID: "init-default", Stage: "initial", Name: "Initial Default"},
		},
		Defaults: map[string]string{"initial": "init-default"},
		Expect: Expectation{
			Archetype:   "risk_sheltered",
			Stage:       "initial",
			Stability:   "medium",
			StrategyID:  "init-default",
			FromDefault: true,
		},
	}
}

func TestRunFixtureFromFile(t *testing.T) {
	f, err := LoadFixture("testdata/short_rule_executor.json")
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	res, err := RunFixture(f)
	if err != nil {
		t.Fatalf("RunFixture: %v", err)
	}
	if !res.Passed {
		t.Fatalf("fixture failed:\n%v", res.Failures)
	}
	// The reserved coach mark must not reach the panel evidence.
	for _, m := range res.Panel.Evidence.CoachMarks {
		if m == "sys_pilot" {
			t.Errorf("reserved coach mark leaked into evidence: %v", res.Panel.Evidence.CoachMarks)
		}
	}
	// consistency:low is the first highlight, so talk-track slot 3 is the
	// overwrite sentence, not the stage base.
	if res.Panel.TalkTrack[2] == "" || res.Panel.TalkTrack[2] == res.Panel.TalkTrack[0] {
		t.Errorf("unexpected talk track: %+v", res.Panel.TalkTrack)
	}
}

func TestRunFixtureDefaultFallback(t *testing.T) {
	res, err := RunFixture(baseFixture())
	if err != nil {
		t.Fatalf("RunFixture: %v", err)
	}
	if !res.Passed {
		t.Fatalf("fixture failed:\n%v", res.Failures)
	}
	if !res.Selected.FromDefault {
		t.Errorf("expected stage default selection: %+v", res.Selected)
	}
}

func TestRunFixtureReportsMismatch(t *testing.T) {
	f := baseFixture()
	f.Expect.Archetype = "trend_chaser"
	f.Expect.Highlights = []string{"rule:high"}

	res, err := RunFixture(f)
	if err != nil {
		t.Fatalf("RunFixture: %v", err)
	}
	if res.Passed {
		t.Fatal("fixture passed with wrong expectations")
	}
	if len(res.Failures) < 2 {
		t.Errorf("failures: got %v, want archetype and highlight misses", res.Failures)
	}
}

func TestRunFixtureNoDefaultFails(t *testing.T) {
	f := baseFixture()
	f.Defaults = nil

	_, err := RunFixture(f)
	if !errors.Is(err, assess.ErrNoApplicableStrategy) {
		t.Errorf("got %v, want ErrNoApplicableStrategy", err)
	}
}

func TestLoadFixtureErrors(t *testing.T) {
	if _, err := LoadFixture("testdata/does_not_exist.json"); err == nil {
		t.Error("missing file: want error")
	}
}
