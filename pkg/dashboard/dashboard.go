// Package dashboard aggregates a user's stored analyses into summary stats.
package dashboard

import (
	"maps"
	"time"

	"github.com/huynhanx03/codelens/pkg/repository"
	"github.com/huynhanx03/codelens/pkg/utils"
)

// RecentWindow is how far back RecentActivity counts.
const RecentWindow = 7 * 24 * time.Hour

type ProjectCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalAnalyses     int            `json:"totalAnalyses"`
	AverageScore      int            `json:"averageScore"`
	RecentActivity    int            `json:"recentActivity"`
	LanguageBreakdown map[string]int `json:"languageBreakdown"`
	TopProject        *ProjectCount  `json:"topProject"`
	LastUpdated       time.Time      `json:"lastUpdated"`
}

// Clone returns a copy that shares no map or pointer with s.
func (s Stats) Clone() Stats {
	s.LanguageBreakdown = maps.Clone(s.LanguageBreakdown)
	if s.TopProject != nil {
		top := *s.TopProject
		s.TopProject = &top
	}
	return s
}

// Compute derives Stats from records as of now. The top project is the one
// with the most records; on a tie the one seen first in records wins.
func Compute(records []repository.Record, now time.Time) Stats {
	s := Stats{
		TotalAnalyses:     len(records),
		LanguageBreakdown: make(map[string]int),
		LastUpdated:       now,
	}
	if len(records) == 0 {
		return s
	}

	since := now.Add(-RecentWindow)
	sum := 0
	projects := make(map[string]int)
	var order []string

	for _, r := range records {
		sum += r.Score
		if !r.CreatedAt.Before(since) {
			s.RecentActivity++
		}
		s.LanguageBreakdown[string(r.Language)]++

		if _, ok := projects[r.ProjectName]; !ok {
			order = append(order, r.ProjectName)
		}
		projects[r.ProjectName]++
	}

	s.AverageScore = utils.RoundHalfUp(float64(sum) / float64(len(records)))

	top := order[0]
	for _, name := range order[1:] {
		if projects[name] > projects[top] {
			top = name
		}
	}
	s.TopProject = &ProjectCount{Name: top, Count: projects[top]}

	return s
}
