// Package events publishes analysis lifecycle events.
package events

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrPublishFailed = errors.New("publish event failed")

type Type string

const (
	AnalysisSaved   Type = "analysis.saved"
	AnalysisDeleted Type = "analysis.deleted"
	ProjectDeleted  Type = "project.deleted"
)

type Event struct {
	Type       Type      `json:"type"`
	UserID     int64     `json:"userId"`
	AnalysisID string    `json:"analysisId,omitempty"`
	ProjectID  int64     `json:"projectId,omitempty"`
	Language   string    `json:"language,omitempty"`
	Score      int       `json:"score,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NoopPublisher drops every event. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }
