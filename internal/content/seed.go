package content

// #region imports
import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/soend5/coaching-engine/internal/assess"
	"github.com/soend5/coaching-engine/internal/tag"
)

// #endregion

// #region seed-types

// SeedFile is the YAML shape the content team authors. Validation happens
// here, once, at the authoring boundary; the scoring path trusts stored
// payloads and degrades silently on anything that still slips through.
type SeedFile struct {
	QuizVersion string            `yaml:"quiz_version"`
	Options     []SeedOption      `yaml:"options"`
	Strategies  []SeedStrategy    `yaml:"strategies"`
	Rules       []SeedRule        `yaml:"rules"`
	Defaults    map[string]string `yaml:"defaults"` // stage -> strategy id
}

// SeedOption mirrors assess.OptionPayload with YAML tags.
type SeedOption struct {
	ID            string         `yaml:"id"`
	ArchetypeVote string         `yaml:"archetype_vote"`
	Dimensions    map[string]int `yaml:"dimensions"`
	Tags          []string       `yaml:"tags"`
}

// SeedStrategy mirrors assess.StrategyDefinition with YAML tags.
type SeedStrategy struct {
	ID          string   `yaml:"id"`
	Stage       string   `yaml:"stage"`
	Name        string   `yaml:"name"`
	Summary     string   `yaml:"summary"`
	CoreGoal    string   `yaml:"core_goal"`
	Recommended []string `yaml:"recommended"`
	Forbidden   []string `yaml:"forbidden"`
	Priority    int      `yaml:"priority"`
}

// SeedRule mirrors assess.MatchingRule with YAML tags.
type SeedRule struct {
	ID         string   `yaml:"id"`
	Strategy   string   `yaml:"strategy"`
	Stage      string   `yaml:"stage"`
	Require    []string `yaml:"require"`
	Exclude    []string `yaml:"exclude"`
	Confidence int      `yaml:"confidence"`
	Active     *bool    `yaml:"active"` // nil defaults to active
}

// #endregion seed-types

// #region load

// LoadSeed reads and parses a YAML seed file.
func LoadSeed(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	return &f, nil
}

// #endregion load

// #region validate

func validStage(s string) bool {
	switch assess.Stage(s) {
	case assess.StageInitial, assess.StageMiddle, assess.StageFinal:
		return true
	}
	return false
}

// Validate checks the authoring invariants: enum fields hold known values,
// every option carries all six deltas in range and an image tag, rules
// reference existing strategies of the same stage, and every stage has
// exactly one default.
func (f *SeedFile) Validate() error {
	if f.QuizVersion == "" {
		return fmt.Errorf("seed: quiz_version is required")
	}

	for _, o := range f.Options {
		if o.ID == "" {
			return fmt.Errorf("seed: option with empty id")
		}
		if !tag.IsArchetype(o.ArchetypeVote) {
			return fmt.Errorf("seed: option %s votes unknown archetype %q", o.ID, o.ArchetypeVote)
		}
		for _, d := range assess.Dimensions {
			v, ok := o.Dimensions[string(d)]
			if !ok {
				return fmt.Errorf("seed: option %s missing dimension %s", o.ID, d)
			}
			if v < 0 || v > 2 {
				return fmt.Errorf("seed: option %s dimension %s delta %d out of range", o.ID, d, v)
			}
		}
		for k := range o.Dimensions {
			if _, ok := assess.DimensionGroup[assess.Dimension(k)]; !ok {
				return fmt.Errorf("seed: option %s has unknown dimension %q", o.ID, k)
			}
		}
		imageCount := 0
		for _, t := range o.Tags {
			p, ok := tag.Parse(t)
			if !ok {
				return fmt.Errorf("seed: option %s has malformed tag %q", o.ID, t)
			}
			if tag.Group(p.Group) == tag.GroupImage {
				imageCount++
			}
		}
		if imageCount == 0 {
			return fmt.Errorf("seed: option %s carries no image tag", o.ID)
		}
	}

	strategyStage := make(map[string]string, len(f.Strategies))
	for _, st := range f.Strategies {
		if st.ID == "" {
			return fmt.Errorf("seed: strategy with empty id")
		}
		if !validStage(st.Stage) {
			return fmt.Errorf("seed: strategy %s has unknown stage %q", st.ID, st.Stage)
		}
		if _, dup := strategyStage[st.ID]; dup {
			return fmt.Errorf("seed: duplicate strategy id %s", st.ID)
		}
		strategyStage[st.ID] = st.Stage
	}

	ruleIDs := make(map[string]bool, len(f.Rules))
	for _, r := range f.Rules {
		if r.ID == "" {
			return fmt.Errorf("seed: rule with empty id")
		}
		if ruleIDs[r.ID] {
			return fmt.Errorf("seed: duplicate rule id %s", r.ID)
		}
		ruleIDs[r.ID] = true
		stage, ok := strategyStage[r.Strategy]
		if !ok {
			return fmt.Errorf("seed: rule %s references unknown strategy %q", r.ID, r.Strategy)
		}
		if !validStage(r.Stage) {
			return fmt.Errorf("seed: rule %s has unknown stage %q", r.ID, r.Stage)
		}
		if r.Stage != stage {
			return fmt.Errorf("seed: rule %s stage %s does not match strategy %s stage %s", r.ID, r.Stage, r.Strategy, stage)
		}
		if r.Confidence < 0 || r.Confidence > 100 {
			return fmt.Errorf("seed: rule %s confidence %d out of range", r.ID, r.Confidence)
		}
	}

	for _, stage := range assess.Stages {
		sid, ok := f.Defaults[string(stage)]
		if !ok {
			return fmt.Errorf("seed: stage %s has no default strategy", stage)
		}
		defStage, ok := strategyStage[sid]
		if !ok {
			return fmt.Errorf("seed: stage %s default references unknown strategy %q", stage, sid)
		}
		if defStage != string(stage) {
			return fmt.Errorf("seed: stage %s default strategy %s belongs to stage %s", stage, sid, defStage)
		}
	}
	for stage := range f.Defaults {
		if !validStage(stage) {
			return fmt.Errorf("seed: default for unknown stage %q", stage)
		}
	}

	return nil
}

// #endregion validate

// #region apply

// ApplySeed validates and writes a seed file into the store.
func (s *Store) ApplySeed(f *SeedFile) error {
	if err := f.Validate(); err != nil {
		return err
	}

	for _, st := range f.Strategies {
		err := s.UpsertStrategy(assess.StrategyDefinition{
			ID:          st.ID,
			Stage:       assess.Stage(st.Stage),
			Name:        st.Name,
			Summary:     st.Summary,
			CoreGoal:    st.CoreGoal,
			Recommended: st.Recommended,
			Forbidden:   st.Forbidden,
			Priority:    st.Priority,
		})
		if err != nil {
			return err
		}
	}

	for _, r := range f.Rules {
		active := true
		if r.Active != nil {
			active = *r.Active
		}
		err := s.UpsertRule(assess.MatchingRule{
			ID:           r.ID,
			StrategyID:   r.Strategy,
			Stage:        assess.Stage(r.Stage),
			RequiredTags: r.Require,
			ExcludedTags: r.Exclude,
			Confidence:   r.Confidence,
			Active:       active,
		})
		if err != nil {
			return err
		}
	}

	for stage, sid := range f.Defaults {
		if err := s.SetStageDefault(assess.Stage(stage), sid); err != nil {
			return err
		}
	}

	for _, o := range f.Options {
		deltas := make(map[assess.Dimension]int, len(o.Dimensions))
		for k, v := range o.Dimensions {
			deltas[assess.Dimension(k)] = v
		}
		err := s.PutOptionPayload(o.ID, f.QuizVersion, assess.OptionPayload{
			ArchetypeVote:  tag.Archetype(o.ArchetypeVote),
			DimensionDelta: deltas,
			Tags:           o.Tags,
		})
		if err != nil {
			return err
		}
	}

	s.log.Info("seed applied",
		zap.Int("options", len(f.Options)),
		zap.Int("strategies", len(f.Strategies)),
		zap.Int("rules", len(f.Rules)))
	return nil
}

// #endregion apply
