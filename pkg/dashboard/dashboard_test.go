package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/codelens/pkg/analysis"
	"github.com/huynhanx03/codelens/pkg/repository"
)

var now = time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)

func rec(project string, lang analysis.Language, score int, age time.Duration) repository.Record {
	return repository.Record{ProjectName: project, Language: lang, Score: score, CreatedAt: now.Add(-age)}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, now)

	assert.Equal(t, 0, s.TotalAnalyses)
	assert.Equal(t, 0, s.AverageScore)
	assert.Equal(t, 0, s.RecentActivity)
	assert.NotNil(t, s.LanguageBreakdown)
	assert.Empty(t, s.LanguageBreakdown)
	assert.Nil(t, s.TopProject)
	assert.Equal(t, now, s.LastUpdated)
}

func TestCompute(t *testing.T) {
	records := []repository.Record{
		rec("web", analysis.TypeScript, 80, time.Hour),
		rec("api", analysis.Go, 91, 8*24*time.Hour),
		rec("api", analysis.Go, 70, 2*24*time.Hour),
		rec("web", analysis.JavaScript, 60, 30*24*time.Hour),
		rec("cli", analysis.Rust, 100, RecentWindow),
	}

	s := Compute(records, now)

	assert.Equal(t, 5, s.TotalAnalyses)
	// 401 / 5 = 80.2
	assert.Equal(t, 80, s.AverageScore)
	assert.Equal(t, 3, s.RecentActivity)
	assert.Equal(t, map[string]int{"typescript": 1, "go": 2, "javascript": 1, "rust": 1}, s.LanguageBreakdown)
	require.NotNil(t, s.TopProject)
	assert.Equal(t, ProjectCount{Name: "web", Count: 2}, *s.TopProject)
}

func TestCompute_AverageRoundsHalfUp(t *testing.T) {
	s := Compute([]repository.Record{
		rec("p", analysis.Go, 80, 0),
		rec("p", analysis.Go, 85, 0),
	}, now)

	assert.Equal(t, 83, s.AverageScore)
}

func TestCompute_TopProjectClearWinner(t *testing.T) {
	s := Compute([]repository.Record{
		rec("a", analysis.Go, 1, 0),
		rec("b", analysis.Go, 1, 0),
		rec("b", analysis.Go, 1, 0),
	}, now)

	require.NotNil(t, s.TopProject)
	assert.Equal(t, "b", s.TopProject.Name)
}

func TestCompute_OldRecordsNotRecent(t *testing.T) {
	s := Compute([]repository.Record{rec("p", analysis.Go, 50, RecentWindow+time.Second)}, now)
	assert.Equal(t, 0, s.RecentActivity)
}
