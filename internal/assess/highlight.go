package assess

// #region imports
import (
	"sort"
	"strings"

	"github.com/soend5/coaching-engine/internal/tag"
)

// #endregion

// #region weights

// Level weights for highlight ranking. Both extremes are equally salient
// to a coach; "medium" carries little signal.
var levelWeight = map[tag.Level]int{
	tag.LevelHigh:   3,
	tag.LevelLow:    3,
	tag.LevelMedium: 1,
}

// #endregion

// #region pick

// PickHighlights selects the most salient behavior tags for display.
// max is clamped to [0,2]. Order is fully deterministic: level weight
// descending, then behavior-group priority, then the raw tag string.
// At most one highlight per group survives. When the tag set carries no
// behavior tags at all, the archetype tag stands in, if resolvable.
func PickHighlights(tags []string, max int) []Highlight {
	if max > 2 {
		max = 2
	}
	if max <= 0 {
		return nil
	}

	type candidate struct {
		tag   string
		group tag.Group
		level tag.Level
	}
	var cands []candidate
	for _, s := range tags {
		p, ok := tag.Parse(s)
		if !ok {
			continue
		}
		g := tag.Group(p.Group)
		if !tag.IsBehaviorGroup(g) || !tag.IsLevel(p.Value) {
			continue
		}
		cands = append(cands, candidate{tag: s, group: g, level: tag.Level(p.Value)})
	}

	if len(cands) == 0 {
		return archetypeFallback(tags)
	}

	sort.Slice(cands, func(i, j int) bool {
		wi, wj := levelWeight[cands[i].level], levelWeight[cands[j].level]
		if wi != wj {
			return wi > wj
		}
		pi, pj := tag.BehaviorPriority(cands[i].group), tag.BehaviorPriority(cands[j].group)
		if pi != pj {
			return pi < pj
		}
		return cands[i].tag < cands[j].tag
	})

	var out []Highlight
	taken := make(map[tag.Group]bool)
	for _, c := range cands {
		if len(out) == max {
			break
		}
		if taken[c.group] {
			continue
		}
		taken[c.group] = true
		desc, ok := tag.Describe(c.tag)
		if !ok {
			continue
		}
		out = append(out, Highlight{Tag: c.tag, Desc: desc})
	}
	return out
}

// #endregion pick

// #region fallback

func archetypeFallback(tags []string) []Highlight {
	imagePrefix := string(tag.GroupImage) + ":"
	for _, s := range tags {
		if !strings.HasPrefix(s, imagePrefix) {
			continue
		}
		if desc, ok := tag.Describe(s); ok {
			return []Highlight{{Tag: s, Desc: desc}}
		}
	}
	return nil
}

// #endregion
