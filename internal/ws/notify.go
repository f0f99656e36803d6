package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventProfileUpdated = "profile_updated"

type ProfileUpdatedEvent struct {
	Type      string    `json:"type"`
	UserID    uuid.UUID `json:"user_id"`
	Timestamp string    `json:"timestamp"`
}

// NotifyProfileUpdated tells connected clients that a user's skills changed, so any
// score they show against that user is stale.
func (h *Hub) NotifyProfileUpdated(userID uuid.UUID) {
	if h == nil || userID == uuid.Nil {
		return
	}

	b, err := json.Marshal(ProfileUpdatedEvent{
		Type:      EventProfileUpdated,
		UserID:    userID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}
