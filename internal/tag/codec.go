package tag

// #region imports
import (
	"strings"
)

// #endregion

// #region labels

var archetypeLabels = map[Archetype][2]string{
	ArchetypeSteadyAccumulator: {"Steady Accumulator", "Builds positions gradually and values process over outcome."},
	ArchetypeRuleExecutor:      {"Rule Executor", "Follows a written plan and rarely deviates from it."},
	ArchetypeTrendChaser:       {"Trend Chaser", "Reacts quickly to momentum and recent performance."},
	ArchetypeOpportunityHunter: {"Opportunity Hunter", "Actively scans for openings and acts on asymmetry."},
	ArchetypeRiskSheltered:     {"Risk Sheltered", "Prioritizes capital protection above participation."},
	ArchetypeIntuitionDriven:   {"Intuition Driven", "Decides from feel and accumulated personal experience."},
}

var stabilityLabels = map[Level][2]string{
	LevelHigh:   {"Stable profile", "Answers converge strongly on a single tendency."},
	LevelMedium: {"Forming profile", "A leading tendency exists but is not yet settled."},
	LevelLow:    {"Mixed profile", "Answers are spread across several tendencies."},
}

var phaseLabels = map[string][2]string{
	PhaseShortCompleted: {"Short assessment completed", "Profile comes from the short questionnaire."},
	PhaseLongCompleted:  {"Full assessment completed", "Profile comes from the full questionnaire."},
}

// dimensionLabels maps behavior group -> level -> display pair.
var dimensionLabels = map[Group]map[Level][2]string{
	GroupConsistency: {
		LevelHigh:   {"High action consistency", "Executes decisions the same way across sessions."},
		LevelMedium: {"Moderate action consistency", "Execution is mostly, not fully, repeatable."},
		LevelLow:    {"Low action consistency", "Execution varies from one decision to the next."},
	},
	GroupRisk: {
		LevelHigh:   {"Strong risk defense", "Cuts exposure early when conditions degrade."},
		LevelMedium: {"Moderate risk defense", "Manages downside but tolerates some drift."},
		LevelLow:    {"Weak risk defense", "Lets losing positions run without a plan."},
	},
	GroupRule: {
		LevelHigh:   {"High rule dependence", "Leans on explicit rules before acting."},
		LevelMedium: {"Moderate rule dependence", "Uses rules as guidance, not as law."},
		LevelLow:    {"Low rule dependence", "Acts without consulting a written plan."},
	},
	GroupEmotion: {
		LevelHigh:   {"High emotional involvement", "Market swings carry strong personal weight."},
		LevelMedium: {"Moderate emotional involvement", "Feels pressure but usually contains it."},
		LevelLow:    {"Low emotional involvement", "Keeps distance between mood and decisions."},
	},
	GroupOpportunity: {
		LevelHigh:   {"High opportunity drive", "Seeks out new setups aggressively."},
		LevelMedium: {"Moderate opportunity drive", "Takes opportunities that arrive, rarely hunts."},
		LevelLow:    {"Low opportunity drive", "Prefers the familiar over the new."},
	},
	GroupExperience: {
		LevelHigh:   {"High experience reliance", "Trusts lessons from past market cycles."},
		LevelMedium: {"Moderate experience reliance", "Mixes past experience with fresh input."},
		LevelLow:    {"Low experience reliance", "Little personal history to draw on yet."},
	},
}

// #endregion labels

// #region parse

// Parse splits a canonical tag on its first colon.
// Returns ok=false when either half is empty.
func Parse(s string) (Parsed, bool) {
	idx := strings.Index(s, ":")
	if idx <= 0 || idx == len(s)-1 {
		return Parsed{}, false
	}
	return Parsed{Group: s[:idx], Value: s[idx+1:]}, true
}

// Make builds a canonical tag string from its halves.
func Make(group Group, value string) string {
	return string(group) + ":" + value
}

// #endregion

// #region level-check

// IsLevel reports whether value is a known level enum.
func IsLevel(value string) bool {
	switch Level(value) {
	case LevelHigh, LevelMedium, LevelLow:
		return true
	}
	return false
}

// #endregion

// #region group-helpers

// IsBehaviorGroup reports whether g is one of the six dimension groups.
func IsBehaviorGroup(g Group) bool {
	for _, bg := range BehaviorGroups {
		if bg == g {
			return true
		}
	}
	return false
}

// BehaviorPriority returns the display priority index of a behavior group,
// lower meaning more salient. Unknown groups sort last.
func BehaviorPriority(g Group) int {
	for i, bg := range BehaviorGroups {
		if bg == g {
			return i
		}
	}
	return len(BehaviorGroups)
}

// IsArchetype reports whether key is one of the six fixed archetypes.
func IsArchetype(key string) bool {
	_, ok := archetypeLabels[Archetype(key)]
	return ok
}

// #endregion

// #region describe

// Describe resolves a canonical tag against the fixed vocabulary.
// Unknown groups or values return ok=false; callers treat that as
// "not displayable", never as a processing error.
func Describe(s string) (Description, bool) {
	p, ok := Parse(s)
	if !ok {
		return Description{}, false
	}

	switch Group(p.Group) {
	case GroupImage:
		pair, ok := archetypeLabels[Archetype(p.Value)]
		if !ok {
			return Description{}, false
		}
		return Description{Kind: KindArchetype, Label: pair[0], Explanation: pair[1]}, true

	case GroupStability:
		if !IsLevel(p.Value) {
			return Description{}, false
		}
		pair := stabilityLabels[Level(p.Value)]
		return Description{Kind: KindStability, Label: pair[0], Explanation: pair[1], Level: Level(p.Value)}, true

	case GroupPhase:
		pair, ok := phaseLabels[p.Value]
		if !ok {
			return Description{}, false
		}
		return Description{Kind: KindPhase, Label: pair[0], Explanation: pair[1]}, true

	case GroupCoach:
		return Description{Kind: KindCoachMark, Label: p.Value, Explanation: "Mark added by the coach."}, true
	}

	if levels, ok := dimensionLabels[Group(p.Group)]; ok {
		if !IsLevel(p.Value) {
			return Description{}, false
		}
		pair := levels[Level(p.Value)]
		return Description{
			Kind:        KindDimension,
			Label:       pair[0],
			Explanation: pair[1],
			Group:       Group(p.Group),
			Level:       Level(p.Value),
		}, true
	}

	return Description{}, false
}

// #endregion
