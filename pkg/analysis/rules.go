package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	complexityThreshold      = 10
	highComplexityThreshold  = 20
	largeFileThreshold       = 300
	untypedFileThreshold     = 50
	duplicationThreshold     = 5
	highDuplicationThreshold = 15
)

var (
	unsafeSinkPattern = regexp.MustCompile(`eval\(|innerHTML`)
	varPattern        = regexp.MustCompile(`var `)
)

// GenerateSuggestions applies the advisory rules in a fixed order. The result
// order is the rule order.
func GenerateSuggestions(content string, lang Language, m Metrics) []Suggestion {
	out := []Suggestion{}

	if m.Complexity > complexityThreshold {
		sev := SeverityMedium
		if m.Complexity > highComplexityThreshold {
			sev = SeverityHigh
		}
		out = append(out, Suggestion{
			Type:     SuggestionRefactor,
			Severity: sev,
			Message: fmt.Sprintf("High cyclomatic complexity (%d). Consider breaking down complex functions "+
				"into smaller, more manageable pieces.", m.Complexity),
			Example: "Extract complex logic into separate functions with single responsibilities.",
		})
	}

	if m.LinesOfCode > largeFileThreshold {
		out = append(out, Suggestion{
			Type:     SuggestionRefactor,
			Severity: SeverityMedium,
			Message: fmt.Sprintf("Large file detected (%d lines). Consider splitting into multiple modules "+
				"for better maintainability.", m.LinesOfCode),
			Example: "Separate concerns into different files (e.g., utils.ts, types.ts, main.ts)",
		})
	}

	if lang == JavaScript && !strings.Contains(content, "strict") {
		out = append(out, Suggestion{
			Type:       SuggestionImprovement,
			Severity:   SeverityMedium,
			Message:    "Consider enabling strict mode for better error handling and performance.",
			LineNumber: 1,
			Example:    `"use strict"; at the top of your file`,
		})
	}

	if lang == TypeScript &&
		!strings.Contains(content, "interface") &&
		!strings.Contains(content, "type") &&
		m.LinesOfCode > untypedFileThreshold {
		out = append(out, Suggestion{
			Type:     SuggestionImprovement,
			Severity: SeverityLow,
			Message:  "Consider adding TypeScript interfaces or types for better type safety.",
			Example:  "interface User { id: string; name: string; email: string; }",
		})
	}

	if m.DuplicateLines > duplicationThreshold {
		out = append(out, Suggestion{
			Type:     SuggestionRefactor,
			Severity: SeverityMedium,
			Message: fmt.Sprintf("Code duplication detected (%d duplicate lines). Consider extracting common "+
				"code into reusable functions.", m.DuplicateLines),
			Example: "Create utility functions for repeated logic patterns.",
		})
	}

	if strings.Contains(content, "console.log") && lang != Python {
		out = append(out, Suggestion{
			Type:     SuggestionPerformance,
			Severity: SeverityLow,
			Message:  "Remove console.log statements in production code for better performance.",
			Example:  "Use a logging library or conditional logging for development.",
		})
	}

	return out
}

// DetectIssues applies the problem rules in a fixed order.
func DetectIssues(content string, lang Language, m Metrics) []Issue {
	out := []Issue{}

	if strings.Contains(content, "eval(") || strings.Contains(content, "innerHTML") {
		out = append(out, Issue{
			Type:       IssueSecurity,
			Severity:   SeverityHigh,
			Message:    "Potential security vulnerability detected. Avoid using eval() or innerHTML with user input.",
			LineNumber: findLine(content, unsafeSinkPattern),
		})
	}

	if m.Complexity > highComplexityThreshold {
		out = append(out, Issue{
			Type:       IssueComplexity,
			Severity:   SeverityHigh,
			Message:    "Extremely high complexity detected - immediate refactoring recommended.",
			LineNumber: 1,
		})
	}

	if m.DuplicateLines > highDuplicationThreshold {
		out = append(out, Issue{
			Type:     IssueStyle,
			Severity: SeverityMedium,
			Message:  "Significant code duplication detected - refactoring needed.",
		})
	}

	if lang == JavaScript && strings.Contains(content, "var ") {
		out = append(out, Issue{
			Type:       IssueStyle,
			Severity:   SeverityLow,
			Message:    "Use let or const instead of var for better scoping.",
			LineNumber: findLine(content, varPattern),
		})
	}

	return out
}

// findLine returns the 1-based number of the first line matching re, or 0.
func findLine(content string, re *regexp.Regexp) int {
	for i, line := range strings.Split(content, "\n") {
		if re.MatchString(line) {
			return i + 1
		}
	}
	return 0
}
