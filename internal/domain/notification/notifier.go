package notification

import (
	"context"

	"github.com/google/uuid"
)

type MatchNotification struct {
	RecipientID  uuid.UUID
	MatchedID    uuid.UUID
	Score        int
	CommonSkills []string
}

// Notifier is the outbound port for match alerts. Implementations are
// fire-and-forget: a delivery failure must never reach match discovery.
type Notifier interface {
	SendMatchNotification(ctx context.Context, n MatchNotification) error
}

// Noop discards notifications. Used when no delivery channel is wired.
type Noop struct{}

func (Noop) SendMatchNotification(context.Context, MatchNotification) error { return nil }
