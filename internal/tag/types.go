package tag

// #region group

// Group is the namespace half of a canonical `group:value` tag.
type Group string

const (
	GroupImage     Group = "image"     // archetype tags, value is an archetype key
	GroupStability Group = "stability" // short-assessment stability level
	GroupPhase     Group = "phase"     // assessment progress marker
	GroupCoach     Group = "coach"     // free-form coach-authored marks

	// Behavior-dimension groups. Values are levels (high|medium|low).
	GroupConsistency Group = "consistency"
	GroupRisk        Group = "risk"
	GroupRule        Group = "rule"
	GroupEmotion     Group = "emotion"
	GroupOpportunity Group = "opportunity"
	GroupExperience  Group = "experience"
)

// BehaviorGroups lists the dimension groups in display priority order.
// Earlier entries win ties when picking highlights.
var BehaviorGroups = []Group{
	GroupConsistency,
	GroupRisk,
	GroupRule,
	GroupEmotion,
	GroupOpportunity,
	GroupExperience,
}

// #endregion

// #region level

// Level is the value half of a level-bearing tag (stability and dimensions).
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// #endregion

// #region archetype

// Archetype is one of the six fixed behavioral-tendency keys.
type Archetype string

const (
	ArchetypeSteadyAccumulator Archetype = "steady_accumulator"
	ArchetypeRuleExecutor      Archetype = "rule_executor"
	ArchetypeTrendChaser       Archetype = "trend_chaser"
	ArchetypeOpportunityHunter Archetype = "opportunity_hunter"
	ArchetypeRiskSheltered     Archetype = "risk_sheltered"
	ArchetypeIntuitionDriven   Archetype = "intuition_driven"
)

// Archetypes is the canonical ordering. Vote ties resolve to the earliest
// entry, so this order is part of the classification contract.
var Archetypes = []Archetype{
	ArchetypeSteadyAccumulator,
	ArchetypeRuleExecutor,
	ArchetypeTrendChaser,
	ArchetypeOpportunityHunter,
	ArchetypeRiskSheltered,
	ArchetypeIntuitionDriven,
}

// #endregion

// #region phase

// Phase values carried by phase: tags.
const (
	PhaseShortCompleted = "short_completed"
	PhaseLongCompleted  = "long_completed"
)

// #endregion

// #region kind

// Kind classifies what a described tag represents.
type Kind string

const (
	KindArchetype Kind = "archetype"
	KindStability Kind = "stability"
	KindPhase     Kind = "phase"
	KindDimension Kind = "dimension"
	KindCoachMark Kind = "coach_mark"
)

// #endregion

// #region parsed

// Parsed is the two halves of a canonical tag string.
type Parsed struct {
	Group string
	Value string
}

// Description is the display form of a resolvable tag.
type Description struct {
	Kind        Kind
	Label       string
	Explanation string
	Group       Group // set for dimension tags
	Level       Level // set for level-bearing tags
}

// #endregion
