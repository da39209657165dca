package query

import (
	"sort"
	"strings"

	"github.com/choragraph/chora/graph"
)

// Pattern names accepted by MatchPattern.
const (
	PatternMorningRoutine = "morning_routine"
	PatternAvoidance      = "avoidance"
	PatternExploration    = "exploration"
)

// FindPracticesLike returns practices scoring at least minSimilarity
// against the template, most similar first.
func FindPracticesLike(g *graph.Graph, template *graph.Practice, minSimilarity float64) []*graph.Practice {
	type scored struct {
		practice *graph.Practice
		score    float64
	}
	var matches []scored
	for _, node := range g.NodesByType(graph.NodeTypePractice) {
		practice, ok := node.(*graph.Practice)
		if !ok {
			continue
		}
		if score := PracticeSimilarity(template, practice); score >= minSimilarity {
			matches = append(matches, scored{practice, score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].practice.ID() < matches[j].practice.ID()
	})

	practices := make([]*graph.Practice, len(matches))
	for i, m := range matches {
		practices[i] = m.practice
	}
	return practices
}

// MatchPattern finds practices matching a named behavioural pattern.
// Unknown pattern names match nothing.
func MatchPattern(g *graph.Graph, patternType string) []*graph.Practice {
	switch patternType {
	case PatternMorningRoutine:
		return matchPractices(g, func(p *graph.Practice) bool {
			return p.PracticeType == graph.PracticeRoutine &&
				strings.Contains(strings.ToLower(p.TypicalTime), "morning")
		})
	case PatternAvoidance:
		return matchPractices(g, func(p *graph.Practice) bool {
			return p.PracticeType == graph.PracticeAvoidance
		})
	case PatternExploration:
		return matchPractices(g, func(p *graph.Practice) bool {
			return p.PracticeType == graph.PracticeExploration
		})
	}
	return nil
}

func matchPractices(g *graph.Graph, accept func(*graph.Practice) bool) []*graph.Practice {
	var practices []*graph.Practice
	for _, node := range g.NodesByType(graph.NodeTypePractice) {
		if practice, ok := node.(*graph.Practice); ok && accept(practice) {
			practices = append(practices, practice)
		}
	}
	sort.Slice(practices, func(i, j int) bool { return practices[i].ID() < practices[j].ID() })
	return practices
}
