package assess

// #region imports
import (
	"github.com/soend5/coaching-engine/internal/tag"
)

// #endregion

// #region mode

// Mode selects which questionnaire variant produced the answers.
type Mode string

const (
	ModeShort Mode = "short"
	ModeLong  Mode = "long"
)

// #endregion

// #region stage

// Stage is the coaching-progress label a profile lands in.
type Stage string

const (
	StageInitial Stage = "initial"
	StageMiddle  Stage = "middle"
	StageFinal   Stage = "final"
)

// Stages lists the three stages in progression order.
var Stages = []Stage{StageInitial, StageMiddle, StageFinal}

// #endregion

// #region dimension

// Dimension is one of the six scored behavioral axes.
type Dimension string

const (
	DimRuleDependence     Dimension = "rule_dependence"
	DimRiskDefense        Dimension = "risk_defense"
	DimActionConsistency  Dimension = "action_consistency"
	DimEmotionInvolvement Dimension = "emotion_involvement"
	DimOpportunityDrive   Dimension = "opportunity_drive"
	DimExperienceReliance Dimension = "experience_reliance"
)

// Dimensions lists the axes in their declared order.
var Dimensions = []Dimension{
	DimRuleDependence,
	DimRiskDefense,
	DimActionConsistency,
	DimEmotionInvolvement,
	DimOpportunityDrive,
	DimExperienceReliance,
}

// DimensionGroup maps a scored axis to its tag group.
var DimensionGroup = map[Dimension]tag.Group{
	DimRuleDependence:     tag.GroupRule,
	DimRiskDefense:        tag.GroupRisk,
	DimActionConsistency:  tag.GroupConsistency,
	DimEmotionInvolvement: tag.GroupEmotion,
	DimOpportunityDrive:   tag.GroupOpportunity,
	DimExperienceReliance: tag.GroupExperience,
}

// #endregion

// #region answers

// AnswerSet maps question id to the chosen option id, one answer per question.
type AnswerSet map[string]string

// OptionPayload carries the authored scoring signals of one quiz option.
type OptionPayload struct {
	ArchetypeVote  tag.Archetype
	DimensionDelta map[Dimension]int // each value in {0,1,2}
	Tags           []string
}

// #endregion

// #region classification

// ClassificationResult is the full scoring output for one answer set.
// The raw tally and totals are carried for audit, downstream steps only
// read the archetype, stage, and tag set.
type ClassificationResult struct {
	PrimaryArchetype tag.Archetype
	Stage            Stage
	Stability        tag.Level         // short mode only, empty otherwise
	DimensionScores  map[Dimension]int // long mode only, 0-100 per axis
	Tags             []string          // ordered, de-duplicated canonical tags

	VoteTally       map[tag.Archetype]int
	DimensionTotals map[Dimension]int
	AnsweredCount   int // answers whose payload resolved
}

// #endregion

// #region highlight

// Highlight is one salient behavior tag chosen for coach display.
type Highlight struct {
	Tag  string
	Desc tag.Description
}

// #endregion

// #region strategy

// StrategyDefinition is an authored coaching playbook scoped to one stage.
// Read-only to this engine; authored by the content surface.
type StrategyDefinition struct {
	ID          string
	Stage       Stage
	Name        string
	Summary     string
	CoreGoal    string
	Recommended []string
	Forbidden   []string
	Priority    int
}

// MatchingRule routes a (stage, tag set) profile to a strategy definition.
type MatchingRule struct {
	ID           string
	StrategyID   string
	Stage        Stage
	RequiredTags []string // all must be present
	ExcludedTags []string // none may be present
	Confidence   int      // 0-100
	Active       bool
}

// RuleRow is a matching rule joined with its owning definition, the shape
// the rule table query returns.
type RuleRow struct {
	Rule       MatchingRule
	Definition StrategyDefinition
}

// SelectedStrategy is the matcher output.
type SelectedStrategy struct {
	Definition  StrategyDefinition
	RuleID      string // empty when the stage default was used
	Confidence  int    // 0 when the stage default was used
	FromDefault bool
}

// #endregion

// #region panel

// Evidence is the "why this strategy" block shown beside the panel.
type Evidence struct {
	ArchetypeLabel string
	Highlights     []string
	CoachMarks     []string
}

// Panel is the final coach-facing bundle.
type Panel struct {
	Stage        Stage
	TalkTrack    [3]string
	FollowUps    [2]string
	NextAction   string
	RiskNotes    [2]string
	CoreGoal     string
	StrategyList []string // at most 3 entries
	Evidence     Evidence
}

// #endregion
