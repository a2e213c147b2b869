package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogActivity validates and persists an activity entry, stamping the
// current time if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil {
		return ErrInvalidInput
	}
	if strings.TrimSpace(entry.ProjectID) == "" || strings.TrimSpace(entry.Phase) == "" {
		return ErrInvalidInput
	}
	if entry.Progress < 0 || entry.Progress > 100 {
		return ErrInvalidInput
	}
	if entry.Type == "" {
		entry.Type = TypeProgress
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// GetRecentActivity lists activity entries with filtering.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListOptions) ([]ActivityEntry, error) {
	return s.repo.List(ctx, opts)
}
