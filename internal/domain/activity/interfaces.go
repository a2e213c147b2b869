package activity

import (
	"context"
	"time"
)

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	ProjectID string
	Phase     string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// Repository provides persistence for activity log entries.
type Repository interface {
	Log(ctx context.Context, entry *ActivityEntry) error
	List(ctx context.Context, opts ListOptions) ([]ActivityEntry, error)
}
