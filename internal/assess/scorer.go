package assess

// #region imports
import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/soend5/coaching-engine/internal/tag"
)

// #endregion

// #region errors

// ErrInvalidInput marks caller-contract violations: an empty answer set or
// an unknown mode. Data-quality problems inside individual payloads never
// produce this error, they degrade to skipped signals.
var ErrInvalidInput = errors.New("invalid scoring input")

// #endregion

// #region thresholds

// Threshold constants are behavioral contract: changing any of them silently
// reclassifies every existing customer. Tests pin them.
const (
	stabilityHighVotes   = 5 // winning archetype votes for stability:high
	stabilityMediumVotes = 3 // winning archetype votes for stability:medium

	stageHighCut = 60 // dimension score at or above reads as "high"
	stageLowCut  = 45 // dimension score at or below reads as "low"

	maxDeltaPerAnswer = 2 // largest authored per-answer dimension delta
)

// #endregion

// #region score

// Score aggregates answered options into a classification. Answers whose
// option payload is missing or malformed are skipped, modeling tolerance
// for questions edited or removed after the customer answered.
func Score(answers AnswerSet, payloads map[string]OptionPayload, mode Mode) (ClassificationResult, error) {
	if len(answers) == 0 {
		return ClassificationResult{}, fmt.Errorf("%w: empty answer set", ErrInvalidInput)
	}
	if mode != ModeShort && mode != ModeLong {
		return ClassificationResult{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, mode)
	}

	res := ClassificationResult{
		VoteTally:       make(map[tag.Archetype]int),
		DimensionTotals: make(map[Dimension]int),
	}
	for _, d := range Dimensions {
		res.DimensionTotals[d] = 0
	}

	// Map iteration order is random; sort question ids so the collected
	// tag order, and therefore the final tag set, is reproducible.
	questionIDs := make([]string, 0, len(answers))
	for qid := range answers {
		questionIDs = append(questionIDs, qid)
	}
	sort.Strings(questionIDs)

	var collected []string
	for _, qid := range questionIDs {
		payload, ok := payloads[answers[qid]]
		if !ok || !tag.IsArchetype(string(payload.ArchetypeVote)) {
			continue // no signal
		}
		res.AnsweredCount++
		res.VoteTally[payload.ArchetypeVote]++
		for _, d := range Dimensions {
			res.DimensionTotals[d] += clampDelta(payload.DimensionDelta[d])
		}
		collected = append(collected, payload.Tags...)
	}

	res.PrimaryArchetype = winningArchetype(res.VoteTally)

	switch mode {
	case ModeShort:
		res.Stage = StageInitial // the short assessment never places mid/late
		res.Stability = stabilityLevel(res.VoteTally[res.PrimaryArchetype])
		res.Tags = buildTagSet(collected,
			tag.Make(tag.GroupImage, string(res.PrimaryArchetype)),
			tag.Make(tag.GroupStability, string(res.Stability)),
			tag.Make(tag.GroupPhase, tag.PhaseShortCompleted),
		)
	case ModeLong:
		res.DimensionScores = normalizeScores(res.DimensionTotals, res.AnsweredCount)
		res.Stage = stageFromScores(res.DimensionScores)
		res.Tags = buildTagSet(collected,
			tag.Make(tag.GroupImage, string(res.PrimaryArchetype)),
			tag.Make(tag.GroupPhase, tag.PhaseLongCompleted),
		)
	}

	return res, nil
}

// #endregion score

// #region winner

// winningArchetype picks the highest vote count, ties resolving to the
// earliest entry of the canonical ordering.
func winningArchetype(tally map[tag.Archetype]int) tag.Archetype {
	winner := tag.Archetypes[0]
	best := tally[winner]
	for _, a := range tag.Archetypes[1:] {
		if tally[a] > best {
			winner, best = a, tally[a]
		}
	}
	return winner
}

// #endregion

// #region stability

func stabilityLevel(winningVotes int) tag.Level {
	switch {
	case winningVotes >= stabilityHighVotes:
		return tag.LevelHigh
	case winningVotes >= stabilityMediumVotes:
		return tag.LevelMedium
	default:
		return tag.LevelLow
	}
}

// #endregion

// #region normalize

// normalizeScores scales raw totals to 0-100 against the maximum
// attainable total for the resolved answer count.
func normalizeScores(totals map[Dimension]int, answered int) map[Dimension]int {
	denom := answered * maxDeltaPerAnswer
	if denom < 1 {
		denom = 1
	}
	scores := make(map[Dimension]int, len(Dimensions))
	for _, d := range Dimensions {
		s := int(math.Round(float64(totals[d]) * 100 / float64(denom)))
		if s < 0 {
			s = 0
		}
		if s > 100 {
			s = 100
		}
		scores[d] = s
	}
	return scores
}

// stageFromScores applies the fixed structural rules in priority order.
func stageFromScores(scores map[Dimension]int) Stage {
	if scores[DimRuleDependence] >= stageHighCut &&
		scores[DimRiskDefense] >= stageHighCut &&
		scores[DimActionConsistency] <= stageLowCut {
		return StageInitial
	}
	if scores[DimActionConsistency] >= stageHighCut &&
		scores[DimEmotionInvolvement] <= stageLowCut {
		return StageFinal
	}
	return StageMiddle
}

// #endregion

// #region tag-set

// buildTagSet prepends the synthesized head tags, drops collected image:*
// tags (the head already carries the winning archetype), and de-duplicates
// keeping first occurrences.
func buildTagSet(collected []string, head ...string) []string {
	out := make([]string, 0, len(head)+len(collected))
	seen := make(map[string]bool, len(head)+len(collected))
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, h := range head {
		add(h)
	}
	imagePrefix := string(tag.GroupImage) + ":"
	for _, c := range collected {
		if strings.HasPrefix(c, imagePrefix) {
			continue
		}
		add(c)
	}
	return out
}

func clampDelta(d int) int {
	if d < 0 {
		return 0
	}
	if d > maxDeltaPerAnswer {
		return maxDeltaPerAnswer
	}
	return d
}

// #endregion
