package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"nearchat/backend/internal/apperr"
)

// Room is an ephemeral two-party chat session created by the matcher.
// Rooms are closed, never deleted.
type Room struct {
	RoomID string `gorm:"primaryKey" json:"roomId"`
	// UserIDs holds exactly two distinct participant identities.
	UserIDs  pq.StringArray `gorm:"type:text[];not null" json:"users"`
	IsActive bool           `json:"isActive"`
	// Distance between the participants at match time, km, 2 decimals.
	Distance  float64    `json:"distance"`
	CreatedAt time.Time  `json:"createdAt"`
	EndedAt   *time.Time `json:"endedAt"`
}

// BeforeSave enforces the two-distinct-participants invariant.
func (r *Room) BeforeSave(tx *gorm.DB) error {
	if len(r.UserIDs) != 2 || r.UserIDs[0] == r.UserIDs[1] {
		return fmt.Errorf("%w: a room must have exactly two distinct users", apperr.ErrValidation)
	}
	if r.RoomID == "" {
		r.RoomID = uuid.New().String()
	}
	return nil
}

// HasParticipant reports whether userID is one of the room's two users.
func (r *Room) HasParticipant(userID string) bool {
	for _, id := range r.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// PartnerID returns the other participant's identity, or "" when userID
// is not a participant.
func (r *Room) PartnerID(userID string) string {
	for _, id := range r.UserIDs {
		if id != userID {
			return id
		}
	}
	return ""
}
