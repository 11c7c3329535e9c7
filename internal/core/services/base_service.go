package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/middleware"
	"github.com/animal-wellness/aw_backend/internal/utils"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Tracker utils.EventTracker
	// Now is overridable in tests.
	Now func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// track sends an analytics event when a tracker is configured.
func (s *BaseService) track(distinctID, event string, props map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Enqueue(distinctID, event, props)
}

func newAudit(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

func touch(a *domain.AuditFields, userID string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
}
