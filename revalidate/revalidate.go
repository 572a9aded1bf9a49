// Package revalidate tells cached read views that a write changed them.
package revalidate

import (
	"context"
	"log/slog"
)

// Notifier receives the paths of read views affected by a successful write.
// Implementations log their own failures; a failed notice never fails the
// write that caused it.
type Notifier interface {
	Invalidate(ctx context.Context, paths ...string)
}

// Paths of the public read views.
const (
	PathHome          = "/"
	PathEvents        = "/events"
	PathGarages       = "/garages"
	PathCommunity     = "/community"
	PathAdminEvents   = "/admin/events"
	PathAdminGarages  = "/admin/garages"
	PathAdminSettings = "/admin/settings"
)

// LogNotifier records invalidations in the log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Invalidate(ctx context.Context, paths ...string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "revalidate", "paths", paths)
}

// Multi fans an invalidation out to every notifier in order.
type Multi []Notifier

func (m Multi) Invalidate(ctx context.Context, paths ...string) {
	for _, n := range m {
		n.Invalidate(ctx, paths...)
	}
}

// Nop discards invalidations.
type Nop struct{}

func (Nop) Invalidate(context.Context, ...string) {}
