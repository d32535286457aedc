package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "user_analyses:7:1", UserAnalysesKey(7, 0))
	assert.Equal(t, "user_analyses:7:3", UserAnalysesKey(7, 3))
	assert.Equal(t, "dashboard:7", DashboardKey(7))
	assert.Equal(t, "analysis_report:go:00ff", AnalysisReportKey("go", "00ff"))
}

func TestUserAnalysesQueryKey(t *testing.T) {
	assert.Equal(t, "user_analyses:7:1:all:all:20:0", UserAnalysesQueryKey(7, 0, "", 20, 0))
	assert.Equal(t, "user_analyses:7:1:12:python:10:30", UserAnalysesQueryKey(7, 12, "python", 10, 30))
}

func TestUserAnalysesPrefix(t *testing.T) {
	prefix := UserAnalysesPrefix(7)
	assert.True(t, strings.HasPrefix(UserAnalysesQueryKey(7, 1, "go", 20, 0), prefix))
	assert.True(t, strings.HasPrefix(UserAnalysesKey(7, 2), prefix))
	// user 70 must not be swept by user 7's prefix
	assert.False(t, strings.HasPrefix(UserAnalysesKey(70, 1), prefix))
}

func TestUserKeys(t *testing.T) {
	assert.ElementsMatch(t, []string{"dashboard:7"}, UserKeys(7))
}
