package dto

import (
	"time"

	"loomconnect/internal/domain/profile"

	"github.com/google/uuid"
)

type ConnectionResponse struct {
	ID          uuid.UUID  `json:"id"`
	RequesterID uuid.UUID  `json:"requester_id"`
	AddresseeID uuid.UUID  `json:"addressee_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

func NewConnectionResponse(c profile.Connection) ConnectionResponse {
	return ConnectionResponse{
		ID:          c.ID,
		RequesterID: c.RequesterID,
		AddresseeID: c.AddresseeID,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		RespondedAt: c.RespondedAt,
	}
}

func NewConnectionResponses(conns []profile.Connection) []ConnectionResponse {
	out := make([]ConnectionResponse, 0, len(conns))
	for _, c := range conns {
		out = append(out, NewConnectionResponse(c))
	}
	return out
}
