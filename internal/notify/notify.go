package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is a transient, non-blocking message surfaced to the user.
// Failures are never fatal: a notification is all the recovery the flows do
// beyond returning to their previous interactive state.
type Notification struct {
	ID        uuid.UUID
	Severity  Severity
	Title     string
	Message   string
	CreatedAt time.Time
}

// Notifier receives notifications emitted by the flows.
type Notifier interface {
	Notify(severity Severity, title, message string)
}

// Feed is a bounded in-memory notification feed with structured logging.
// The most recent entries win; older ones are dropped.
type Feed struct {
	logger *zap.Logger
	limit  int

	mu      sync.Mutex
	entries []Notification
}

// NewFeed creates a feed retaining at most limit notifications.
func NewFeed(limit int, logger *zap.Logger) *Feed {
	if limit <= 0 {
		limit = 50
	}
	return &Feed{logger: logger, limit: limit}
}

func (f *Feed) Notify(severity Severity, title, message string) {
	entry := Notification{
		ID:        uuid.New(),
		Severity:  severity,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}

	f.mu.Lock()
	f.entries = append(f.entries, entry)
	if len(f.entries) > f.limit {
		f.entries = f.entries[len(f.entries)-f.limit:]
	}
	f.mu.Unlock()

	fields := []zap.Field{
		zap.String("notification_id", entry.ID.String()),
		zap.String("title", title),
		zap.String("message", message),
	}
	switch severity {
	case SeverityError:
		f.logger.Error("notification", fields...)
	case SeverityWarning:
		f.logger.Warn("notification", fields...)
	default:
		f.logger.Info("notification", fields...)
	}
}

// Recent returns the retained notifications, oldest first.
func (f *Feed) Recent() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.entries))
	copy(out, f.entries)
	return out
}
