package analysis

import (
	"encoding/json"
	"slices"
	"time"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type SuggestionType string

const (
	SuggestionImprovement SuggestionType = "improvement"
	SuggestionRefactor    SuggestionType = "refactor"
	SuggestionSecurity    SuggestionType = "security"
	SuggestionPerformance SuggestionType = "performance"
)

type IssueType string

const (
	IssueSyntax     IssueType = "syntax"
	IssueComplexity IssueType = "complexity"
	IssueStyle      IssueType = "style"
	IssueSecurity   IssueType = "security"
)

// Metrics are textual heuristics over one source file. MaintainabilityIndex
// is in [0, 171]; use DisplayMaintainability for a percentage.
type Metrics struct {
	LinesOfCode          int `json:"linesOfCode"`
	Complexity           int `json:"complexity"`
	MaintainabilityIndex int `json:"maintainabilityIndex"`
	Functions            int `json:"functions"`
	DuplicateLines       int `json:"duplicateLines"`
}

// DisplayMaintainability clamps the index to 0-100.
func (m Metrics) DisplayMaintainability() int {
	return min(max(m.MaintainabilityIndex, 0), 100)
}

// MarshalJSON adds maintainabilityDisplay, the 0-100 form of the index.
func (m Metrics) MarshalJSON() ([]byte, error) {
	type plain Metrics
	return json.Marshal(struct {
		plain
		MaintainabilityDisplay int `json:"maintainabilityDisplay"`
	}{plain(m), m.DisplayMaintainability()})
}

// Suggestion is an advisory finding. LineNumber is 1-based, 0 when unknown.
type Suggestion struct {
	Type       SuggestionType `json:"type"`
	Severity   Severity       `json:"severity"`
	Message    string         `json:"message"`
	LineNumber int            `json:"lineNumber,omitempty"`
	Example    string         `json:"example,omitempty"`
}

// Issue is a problem finding. LineNumber is 1-based, 0 when unknown.
type Issue struct {
	Type       IssueType `json:"type"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	LineNumber int       `json:"lineNumber,omitempty"`
}

// Report is everything the engine derives from content and language.
// Two calls with the same input produce equal reports.
type Report struct {
	Metrics     Metrics      `json:"metrics"`
	Suggestions []Suggestion `json:"suggestions"`
	Issues      []Issue      `json:"issues"`
	Score       int          `json:"score"`
}

// Clone returns a copy that shares no slices with r.
func (r Report) Clone() Report {
	r.Suggestions = slices.Clone(r.Suggestions)
	r.Issues = slices.Clone(r.Issues)
	return r
}

// CodeFile is one file submitted for analysis.
type CodeFile struct {
	Name     string   `json:"name"`
	Content  string   `json:"content"`
	Language Language `json:"language"`
}

// Result is a Report stamped with identity and time.
type Result struct {
	ID       string   `json:"id"`
	FileName string   `json:"fileName"`
	Language Language `json:"language"`
	Report
	CreatedAt time.Time `json:"createdAt"`
}

func (r Result) Clone() Result {
	r.Report = r.Report.Clone()
	return r
}
