package analysis

import (
	"github.com/huynhanx03/codelens/pkg/timer"
)

// IDGenerator issues analysis ids.
type IDGenerator interface {
	Next() string
}

// Analyzer stamps engine reports with an id and creation time.
type Analyzer struct {
	ids   IDGenerator
	clock timer.Timer
}

func NewAnalyzer(ids IDGenerator, clock timer.Timer) *Analyzer {
	if clock == nil {
		clock = timer.System()
	}
	return &Analyzer{ids: ids, clock: clock}
}

// Analyze evaluates file. An empty Language is detected from the file name.
func (a *Analyzer) Analyze(file CodeFile) Result {
	lang := file.Language
	if lang == "" {
		lang = DetectLanguage(file.Name)
	}
	return a.Stamp(file.Name, lang, Evaluate(file.Content, lang))
}

// Stamp wraps an existing report, typically one served from a cache.
func (a *Analyzer) Stamp(fileName string, lang Language, r Report) Result {
	return Result{
		ID:        a.ids.Next(),
		FileName:  fileName,
		Language:  lang,
		Report:    r,
		CreatedAt: a.clock.Now(),
	}
}
