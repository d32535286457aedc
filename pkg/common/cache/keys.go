package cache

import (
	"fmt"
	"strconv"
)

// Keys follow {entity}:{ownerId}[:{qualifier}...].
const (
	prefixUserAnalyses   = "user_analyses"
	prefixDashboard      = "dashboard"
	prefixAnalysisReport = "analysis_report"
)

// UserAnalysesKey is the unfiltered listing key for one page.
func UserAnalysesKey(userID int64, page int) string {
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("%s:%d:%d", prefixUserAnalyses, userID, page)
}

// UserAnalysesPrefix matches every listing key of a user, filtered or not.
func UserAnalysesPrefix(userID int64) string {
	return fmt.Sprintf("%s:%d:", prefixUserAnalyses, userID)
}

// UserAnalysesQueryKey extends the page-1 listing key with the listing filters.
// Zero values render as "all".
func UserAnalysesQueryKey(userID, projectID int64, language string, limit, offset int) string {
	project := "all"
	if projectID != 0 {
		project = strconv.FormatInt(projectID, 10)
	}
	if language == "" {
		language = "all"
	}
	return fmt.Sprintf("%s:%s:%s:%d:%d", UserAnalysesKey(userID, 1), project, language, limit, offset)
}

func DashboardKey(userID int64) string {
	return fmt.Sprintf("%s:%d", prefixDashboard, userID)
}

// AnalysisReportKey addresses a report by language and content fingerprint.
// Reports are pure functions of both, so the key is not user scoped.
func AnalysisReportKey(language, contentHash string) string {
	return fmt.Sprintf("%s:%s:%s", prefixAnalysisReport, language, contentHash)
}

// UserKeys lists the single-value keys owned by a user. Listing keys are
// covered by UserAnalysesPrefix.
func UserKeys(userID int64) []string {
	return []string{DashboardKey(userID)}
}
