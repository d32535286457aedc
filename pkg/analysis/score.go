package analysis

import (
	"math"

	"github.com/huynhanx03/codelens/pkg/utils"
)

const (
	baseScore          = 100
	maxComplexityCost  = 25
	complexityCostRate = 1.5
)

var (
	suggestionCost = map[Severity]float64{SeverityHigh: 8, SeverityMedium: 5, SeverityLow: 3}
	issueCost      = map[Severity]float64{SeverityHigh: 15, SeverityMedium: 10, SeverityLow: 5}
)

// ComputeScore folds metrics and findings into a 0-100 score. It depends on
// nothing but its arguments.
func ComputeScore(m Metrics, suggestions []Suggestion, issues []Issue) int {
	score := float64(baseScore)
	score -= math.Min(complexityCostRate*float64(m.Complexity), maxComplexityCost)

	for _, s := range suggestions {
		score -= suggestionCost[s.Severity]
	}
	for _, is := range issues {
		score -= issueCost[is.Severity]
	}

	if m.MaintainabilityIndex > 80 {
		score += 5
	}
	if m.MaintainabilityIndex > 90 {
		score += 5
	}
	if m.Functions > 0 && float64(m.LinesOfCode)/float64(m.Functions) < 20 {
		score += 5
	}

	return utils.Clamp(utils.RoundHalfUp(score), 0, baseScore)
}

// Evaluate runs metrics, rules and scoring over one file's content.
func Evaluate(content string, lang Language) Report {
	m := ComputeMetrics(content)
	suggestions := GenerateSuggestions(content, lang, m)
	issues := DetectIssues(content, lang, m)

	return Report{
		Metrics:     m,
		Suggestions: suggestions,
		Issues:      issues,
		Score:       ComputeScore(m, suggestions, issues),
	}
}
