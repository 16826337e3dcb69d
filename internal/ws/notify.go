package ws

import (
	"context"
	"encoding/json"
	"time"

	"loomconnect/internal/domain/notification"

	"github.com/google/uuid"
)

type matchFoundEvent struct {
	Type         string    `json:"type"`
	ProfileID    uuid.UUID `json:"profile_id"`
	Score        int       `json:"score"`
	CommonSkills []string  `json:"common_skills"`
	Timestamp    string    `json:"timestamp"`
}

// MatchNotifier delivers match alerts over the hub. Delivery is best effort:
// offline recipients miss the event and discover the match on next poll.
type MatchNotifier struct {
	hub *Hub
	now func() time.Time
}

func NewMatchNotifier(hub *Hub) *MatchNotifier {
	return &MatchNotifier{hub: hub, now: time.Now}
}

func (n *MatchNotifier) SendMatchNotification(_ context.Context, m notification.MatchNotification) error {
	if n == nil || n.hub == nil {
		return nil
	}
	if m.RecipientID == uuid.Nil {
		return nil
	}

	evt := matchFoundEvent{
		Type:         "match_found",
		ProfileID:    m.MatchedID,
		Score:        m.Score,
		CommonSkills: m.CommonSkills,
		Timestamp:    n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	n.hub.SendToProfile(m.RecipientID, b)
	return nil
}
