package replay

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/soend5/coaching-engine/internal/assess"
	"github.com/soend5/coaching-engine/internal/tag"
)

// #endregion

// #region fixture-types

// Fixture is the top-level JSON structure for a recorded assessment run.
// It carries everything the pipeline needs, so a fixture replays without
// a database.
type Fixture struct {
	Description string                   `json:"description"`
	Mode        string                   `json:"mode"`
	Answers     map[string]string        `json:"answers"`
	Options     map[string]FixtureOption `json:"options"`
	Strategies  []FixtureStrategy        `json:"strategies"`
	Rules       []FixtureRule            `json:"rules"`
	Defaults    map[string]string        `json:"defaults"` // stage -> strategy id
	CoachTags   []string                 `json:"coach_tags"`
	Expect      Expectation              `json:"expect"`
}

// FixtureOption mirrors assess.OptionPayload with JSON tags.
type FixtureOption struct {
	ArchetypeVote string         `json:"archetype_vote"`
	Dimensions    map[string]int `json:"dimensions"`
	Tags          []string       `json:"tags"`
}

// FixtureStrategy mirrors assess.StrategyDefinition with JSON tags.
type FixtureStrategy struct {
	ID          string   `json:"id"`
	Stage       string   `json:"stage"`
	Name        string   `json:"name"`
	Summary     string   `json:"summary"`
	CoreGoal    string   `json:"core_goal"`
	Recommended []string `json:"recommended"`
	Forbidden   []string `json:"forbidden"`
	Priority    int      `json:"priority"`
}

// FixtureRule mirrors assess.MatchingRule with JSON tags.
type FixtureRule struct {
	ID         string   `json:"id"`
	Strategy   string   `json:"strategy"`
	Stage      string   `json:"stage"`
	Require    []string `json:"require"`
	Exclude    []string `json:"exclude"`
	Confidence int      `json:"confidence"`
	Inactive   bool     `json:"inactive"`
}

// Expectation is what the recorded run is pinned to.
type Expectation struct {
	Archetype   string   `json:"archetype"`
	Stage       string   `json:"stage"`
	Stability   string   `json:"stability,omitempty"`
	StrategyID  string   `json:"strategy_id"`
	FromDefault bool     `json:"from_default"`
	Tags        []string `json:"tags,omitempty"`       // must all be present
	Highlights  []string `json:"highlights,omitempty"` // exact order
}

// #endregion fixture-types

// #region loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// #endregion loader

// #region conversions

func (f *Fixture) payloads() map[string]assess.OptionPayload {
	out := make(map[string]assess.OptionPayload, len(f.Options))
	for id, o := range f.Options {
		deltas := make(map[assess.Dimension]int, len(o.Dimensions))
		for k, v := range o.Dimensions {
			deltas[assess.Dimension(k)] = v
		}
		out[id] = assess.OptionPayload{
			ArchetypeVote:  tag.Archetype(o.ArchetypeVote),
			DimensionDelta: deltas,
			Tags:           o.Tags,
		}
	}
	return out
}

func (f *Fixture) ruleRows() []assess.RuleRow {
	defs := make(map[string]assess.StrategyDefinition, len(f.Strategies))
	for _, st := range f.Strategies {
		defs[st.ID] = st.toDefinition()
	}
	rows := make([]assess.RuleRow, 0, len(f.Rules))
	for _, r := range f.Rules {
		rows = append(rows, assess.RuleRow{
			Rule: assess.MatchingRule{
				ID:           r.ID,
				StrategyID:   r.Strategy,
				Stage:        assess.Stage(r.Stage),
				RequiredTags: r.Require,
				ExcludedTags: r.Exclude,
				Confidence:   r.Confidence,
				Active:       !r.Inactive,
			},
			Definition: defs[r.Strategy],
		})
	}
	return rows
}

func (f *Fixture) stageDefault(stage assess.Stage) *assess.StrategyDefinition {
	sid, ok := f.Defaults[string(stage)]
	if !ok {
		return nil
	}
	for _, st := range f.Strategies {
		if st.ID == sid {
			def := st.toDefinition()
			return &def
		}
	}
	return nil
}

func (st FixtureStrategy) toDefinition() assess.StrategyDefinition {
	return assess.StrategyDefinition{
		ID:          st.ID,
		Stage:       assess.Stage(st.Stage),
		Name:        st.Name,
		Summary:     st.Summary,
		CoreGoal:    st.CoreGoal,
		Recommended: st.Recommended,
		Forbidden:   st.Forbidden,
		Priority:    st.Priority,
	}
}

// #endregion conversions
