package dispatch

import (
	"context"
	"log/slog"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// RoleReceives reports whether a member role is in the event's audience.
// Client-facing channels are opted in only when the emitter explicitly set
// a client or both audience.
func RoleReceives(v domain.Visibility, role domain.Role) bool {
	if v.Audience == domain.AudienceClient {
		return false // client channel only, no member notifications
	}
	if len(v.RolesAllowed) == 0 {
		return true
	}
	for _, r := range v.RolesAllowed {
		if r == role {
			return true
		}
	}
	return false
}

// LogNotifier writes deliveries to the log. It stands in for a real
// notification channel in development and tests.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("component", "log_notifier")}
}

// Deliver logs the event instead of sending it anywhere.
func (n *LogNotifier) Deliver(ctx context.Context, ev *domain.DomainEvent, rec domain.OutboxRecord) error {
	n.log.InfoContext(ctx, "notification",
		slog.String("outbox_id", rec.ID),
		slog.String("event_id", ev.ID.String()),
		slog.String("org_id", ev.OrganizationID.String()),
		slog.String("event_type", ev.EventType),
		slog.String("audience", ev.Visibility.Audience.String()),
	)
	return nil
}
