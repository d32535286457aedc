package analysis

import (
	"math"
	"regexp"
	"strings"

	"github.com/huynhanx03/codelens/pkg/utils"
)

// These are textual approximations, not a parser. Keywords are matched
// anywhere, including inside identifiers, strings and comments.
var (
	complexityPattern = regexp.MustCompile(`if|else|while|for|switch|case|catch|&&|\|\||\?`)
	functionPattern   = regexp.MustCompile(`function|const.*=.*=>|class.*\{|def |func `)
)

const maxMaintainability = 171

// ComputeMetrics derives Metrics from raw source text. Empty input is valid.
func ComputeMetrics(content string) Metrics {
	lines := strings.Split(content, "\n")

	loc := countCodeLines(lines)
	complexity := len(complexityPattern.FindAllStringIndex(content, -1)) + 1
	functions := len(functionPattern.FindAllStringIndex(content, -1))

	return Metrics{
		LinesOfCode:          loc,
		Complexity:           complexity,
		MaintainabilityIndex: maintainability(loc, complexity, functions),
		Functions:            functions,
		DuplicateLines:       countDuplicateLines(lines),
	}
}

func countCodeLines(lines []string) int {
	n := 0
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "//") || strings.HasPrefix(t, "/*") || strings.HasPrefix(t, "*") {
			continue
		}
		n++
	}
	return n
}

// maintainability is an adapted Microsoft index. volume is floored at 1 so
// ln(volume) stays finite when there are no lines or no functions.
func maintainability(loc, complexity, functions int) int {
	volume := math.Max(float64(loc)*math.Log2(float64(functions+1)), 1)
	mi := maxMaintainability -
		5.2*math.Log(volume) -
		0.23*float64(complexity) -
		16.2*math.Log(float64(max(functions, 1)))

	return utils.Clamp(utils.RoundHalfUp(math.Max(0, mi)), 0, maxMaintainability)
}

// countDuplicateLines sums count-1 over every trimmed line seen more than
// once. Blank lines and // comments are ignored; block comment lines are not.
func countDuplicateLines(lines []string) int {
	seen := make(map[string]int, len(lines))
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "//") {
			continue
		}
		seen[t]++
	}

	dup := 0
	for _, n := range seen {
		if n > 1 {
			dup += n - 1
		}
	}
	return dup
}
