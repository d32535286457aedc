package repository

import (
	"time"

	"github.com/huynhanx03/codelens/pkg/analysis"
)

// Record is a stored analysis owned by one user.
type Record struct {
	ID          string            `json:"id"`
	UserID      int64             `json:"userId"`
	ProjectID   int64             `json:"projectId"`
	ProjectName string            `json:"projectName"`
	Filename    string            `json:"filename"`
	Language    analysis.Language `json:"language"`
	Score       int               `json:"score"`
	Result      *analysis.Result  `json:"analysisData,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Clone returns a copy with its own Result.
func (r Record) Clone() Record {
	if r.Result != nil {
		res := r.Result.Clone()
		r.Result = &res
	}
	return r
}

// Filter selects a user's records. Zero ProjectID or empty Language match all.
type Filter struct {
	UserID    int64
	ProjectID int64
	Language  string
	Limit     int
	Offset    int
}

func (f Filter) matches(r *Record) bool {
	if r.UserID != f.UserID {
		return false
	}
	if f.ProjectID != 0 && r.ProjectID != f.ProjectID {
		return false
	}
	if f.Language != "" && string(r.Language) != f.Language {
		return false
	}
	return true
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// Page is one slice of a listing, newest first.
type Page struct {
	Analyses   []Record   `json:"analyses"`
	Pagination Pagination `json:"pagination"`
}

func (p Page) Clone() Page {
	if p.Analyses != nil {
		out := make([]Record, len(p.Analyses))
		for i, r := range p.Analyses {
			out[i] = r.Clone()
		}
		p.Analyses = out
	}
	return p
}

// paginate sorts matches newest first and cuts the requested window.
func paginate(matches []Record, f Filter) *Page {
	sortNewestFirst(matches)

	total := len(matches)
	start, end, hasMore := window(total, f.Offset, f.Limit)

	out := make([]Record, end-start)
	copy(out, matches[start:end])

	return &Page{
		Analyses: out,
		Pagination: Pagination{
			Total:   total,
			Limit:   f.Limit,
			Offset:  f.Offset,
			HasMore: hasMore,
		},
	}
}

// window bounds a page of limit items starting at offset within total items.
// hasMore reports whether items remain after end. No sum of offset and limit
// is formed, so values near math.MaxInt are safe.
func window(total, offset, limit int) (start, end int, hasMore bool) {
	start = min(max(offset, 0), total)
	end = start + min(max(limit, 0), total-start)
	return start, end, end < total
}
