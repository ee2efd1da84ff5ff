package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/cache"
	"github.com/SscSPs/bizbooks_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Reports is the owner-scoped report cache. Nil disables caching.
	Reports *cache.Reports
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
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
	return time.Now()
}

// invalidateReports drops every cached report of the owner. A failure only
// costs stale reports until the entries expire, so it is logged, not returned.
func (s *BaseService) invalidateReports(ctx context.Context, ownerID string) {
	if err := s.Reports.Invalidate(ctx, ownerID); err != nil {
		s.LogError(ctx, err, "Failed to invalidate report cache", slog.String("owner_id", ownerID))
	}
}
