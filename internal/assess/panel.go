package assess

// #region imports
import (
	"strings"

	"github.com/soend5/coaching-engine/internal/tag"
)

// #endregion

// #region stage-tables

var stageTalkTracks = map[Stage][3]string{
	StageInitial: {
		"Start by asking how they currently decide when to act, and listen for a plan.",
		"Walk through one recent decision together and name what drove it.",
		"Agree on one small written rule to follow until the next session.",
	},
	StageMiddle: {
		"Review how the written rules held up since the last conversation.",
		"Pick the one situation where they deviated and unpack it without judgment.",
		"Extend the plan with one scenario they have not covered yet.",
	},
	StageFinal: {
		"Have them state their own process back to you in their words.",
		"Stress-test the process against a scenario they have not lived through.",
		"Shift the conversation toward maintaining the process without you.",
	},
}

var stageFollowUps = map[Stage][2]string{
	StageInitial: {
		"What was the last decision you made without any plan at all?",
		"If tomorrow went against you, what would you do first?",
	},
	StageMiddle: {
		"Which of your rules do you trust the least, and why?",
		"When did you last break your own plan, and what happened next?",
	},
	StageFinal: {
		"What would make you abandon your process entirely?",
		"How will you notice that your process has stopped fitting you?",
	},
}

var stageNextActions = map[Stage]string{
	StageInitial: "Schedule a short session this week to write down one concrete rule together.",
	StageMiddle:  "Send a check-in before the next session asking how the plan held up.",
	StageFinal:   "Move to a monthly cadence and let them run the next review themselves.",
}

var stageCautions = map[Stage]string{
	StageInitial: "Early-stage customers over-weight anything a coach says; keep suggestions reversible.",
	StageMiddle:  "Avoid validating individual outcomes; reinforce process quality only.",
	StageFinal:   "Do not introduce new frameworks this late; consolidate what already works.",
}

// complianceNote always opens the risk block, before any stage caution.
const complianceNote = "No trade or investment advice, no return guarantees; coaching covers behavior and process only."

// stageDefaultSummaries back-fill the strategy block when the matched
// definition was authored without one.
var stageDefaultSummaries = map[Stage]struct {
	coreGoal string
	list     [3]string
}{
	StageInitial: {
		coreGoal: "Establish a first written decision rule the customer actually follows.",
		list: [3]string{
			"Surface how decisions are made today.",
			"Write one rule together, in their words.",
			"Agree on how you will both check it next time.",
		},
	},
	StageMiddle: {
		coreGoal: "Turn scattered rules into a process the customer defends on their own.",
		list: [3]string{
			"Audit which rules survived contact with real decisions.",
			"Repair or retire the rules that did not.",
			"Add one scenario the current plan does not cover.",
		},
	},
	StageFinal: {
		coreGoal: "Make the process self-sustaining without coach involvement.",
		list: [3]string{
			"Have the customer narrate their own process end to end.",
			"Stress-test it against an unfamiliar scenario.",
			"Plan the hand-off to self-review.",
		},
	},
}

// #endregion stage-tables

// #region overwrites

// Talk-track overwrites driven by the first highlight only. The second
// highlight, if present, is display evidence and never changes the script.
const (
	consistencyLowTalk = "Close by naming the gap between their stated plan and what they actually did, and pick one repeatable behavior to lock in."
	riskHighTalk       = "Acknowledge their defensive instinct explicitly, then explore where protection is costing them participation."
	emotionHighTalk    = "Open with how the recent swings felt before touching any numbers; let the emotion land first."
)

// #endregion

// #region generate

// GeneratePanel expands the matched strategy into the coach-facing bundle.
// Pure function of its inputs: same inputs, byte-identical panel.
func GeneratePanel(stage Stage, archetype tag.Archetype, highlights []Highlight, selected SelectedStrategy, coachTags []string) Panel {
	p := Panel{
		Stage:      stage,
		TalkTrack:  stageTalkTracks[stage],
		FollowUps:  stageFollowUps[stage],
		NextAction: stageNextActions[stage],
		RiskNotes:  [2]string{complianceNote, stageCautions[stage]},
	}

	if len(highlights) > 0 {
		first := highlights[0].Desc
		switch {
		case first.Group == tag.GroupConsistency && first.Level == tag.LevelLow:
			p.TalkTrack[2] = consistencyLowTalk
		case first.Group == tag.GroupRisk && first.Level == tag.LevelHigh:
			p.TalkTrack[1] = riskHighTalk
		case first.Group == tag.GroupEmotion && first.Level == tag.LevelHigh:
			p.TalkTrack[0] = emotionHighTalk
		}
	}

	p.CoreGoal, p.StrategyList = strategySummary(stage, selected.Definition)
	p.Evidence = buildEvidence(archetype, highlights, coachTags)
	return p
}

// #endregion generate

// #region strategy-summary

func strategySummary(stage Stage, def StrategyDefinition) (string, []string) {
	defaults := stageDefaultSummaries[stage]

	goal := def.CoreGoal
	if goal == "" {
		goal = defaults.coreGoal
	}

	list := make([]string, 0, 3)
	for _, entry := range def.Recommended {
		if entry == "" {
			continue
		}
		list = append(list, entry)
		if len(list) == 3 {
			break
		}
	}
	if len(list) == 0 {
		list = append(list, defaults.list[0], defaults.list[1], defaults.list[2])
	}
	return goal, list
}

// #endregion

// #region evidence

// reservedCoachPrefix marks internal coach marks never shown as evidence.
const reservedCoachPrefix = "sys_"

func buildEvidence(archetype tag.Archetype, highlights []Highlight, coachTags []string) Evidence {
	ev := Evidence{}

	if desc, ok := tag.Describe(tag.Make(tag.GroupImage, string(archetype))); ok {
		ev.ArchetypeLabel = desc.Label
	}

	for i, h := range highlights {
		if i == 2 {
			break
		}
		ev.Highlights = append(ev.Highlights, h.Desc.Label)
	}

	for _, ct := range coachTags {
		if p, ok := tag.Parse(ct); ok &&
			tag.Group(p.Group) == tag.GroupCoach && strings.HasPrefix(p.Value, reservedCoachPrefix) {
			continue
		}
		if desc, ok := tag.Describe(ct); ok {
			ev.CoachMarks = append(ev.CoachMarks, desc.Label)
		} else {
			ev.CoachMarks = append(ev.CoachMarks, ct) // unresolvable renders raw
		}
	}

	return ev
}

// #endregion
