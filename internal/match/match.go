// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match implements the matcher (spec.md §4.4): scoring a candidate
// entry against the local entry it might complete, with a DOI short-circuit,
// weighted field combination, and a title+author promotion rule.
package match

import (
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/score"
)

// fieldWeights are the fixed contribution weights spec.md §4.4 step 4
// assigns the comparison set.
var fieldWeights = map[string]float64{
	"title":  4,
	"author": 2,
	"year":   1,
}

// comparisonFields is the fixed comparison set; order is insignificant,
// iteration is over this slice for determinism.
var comparisonFields = []string{"title", "author", "year"}

// Match scores candidate c against local entry l. It is symmetric:
// Match(l, c) == Match(c, l).
func Match(l, c *entry.Entry) score.Score {
	if s, ok := doiShortCircuit(l, c); ok {
		return s
	}

	fieldScores := make(map[string]score.Score, len(comparisonFields))
	comparable := make(map[string]bool, len(comparisonFields))
	for _, name := range comparisonFields {
		lf, cf := l.Get(name), c.Get(name)
		if lf == nil || cf == nil {
			continue
		}
		s, ok := lf.Matches(cf)
		if !ok {
			continue
		}
		fieldScores[name] = s
		comparable[name] = true
	}

	titleScore, titleComparable := fieldScores["title"], comparable["title"]
	if titleComparable && titleScore == score.NoMatch {
		return score.NoMatch
	}

	if titleComparable && len(comparable) == 1 {
		// Only title was comparable: cap at partial, never certain alone.
		if titleScore.Certain() {
			return score.Score(score.CertainMatch - 1)
		}
		return titleScore
	}

	combined := weightedCombine(fieldScores, comparable)

	if titleComparable && titleScore.Certain() {
		if authorScore, ok := comparable["author"]; ok && authorScore && fieldScores["author"].Accepted() {
			return score.CertainMatch
		}
	}

	return combined
}

func doiShortCircuit(l, c *entry.Entry) (score.Score, bool) {
	lf, cf := l.Get("doi"), c.Get("doi")
	if !lf.Present() || !cf.Present() {
		return score.NoMatch, false
	}
	s, ok := lf.Matches(cf)
	if !ok {
		return score.NoMatch, false
	}
	return s, true
}

// weightedCombine sums fieldWeights-weighted comparable scores and scales
// the result back into the open accept range.
func weightedCombine(fieldScores map[string]score.Score, comparable map[string]bool) score.Score {
	var weightedSum, totalWeight float64
	for _, name := range comparisonFields {
		if !comparable[name] {
			continue
		}
		w := fieldWeights[name]
		totalWeight += w
		fraction := float64(fieldScores[name]) / float64(score.CertainMatch)
		weightedSum += w * fraction
	}
	if totalWeight == 0 {
		return score.NoMatch
	}
	return score.Scale(weightedSum / totalWeight)
}
