package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Friend request statuses. Accepted and declined are terminal.
const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestDeclined = "declined"
)

// FriendRequest is the transient handshake proposing a friendship.
// The direction is preserved (requester vs receiver); duplicates are
// prevented per room and direction.
type FriendRequest struct {
	RequestID         string     `gorm:"primaryKey" json:"requestId"`
	RequesterID       string     `gorm:"not null;uniqueIndex:idx_room_request" json:"requesterUserId"`
	ReceiverID        string     `gorm:"not null;uniqueIndex:idx_room_request" json:"receiverUserId"`
	RequesterNickname string     `gorm:"size:20;not null" json:"requesterNickname"`
	ReceiverNickname  string     `gorm:"size:20;not null" json:"receiverNickname"`
	Status            string     `gorm:"not null;default:pending" json:"status"`
	RoomID            string     `gorm:"not null;uniqueIndex:idx_room_request" json:"roomId"`
	CreatedAt         time.Time  `json:"createdAt"`
	RespondedAt       *time.Time `json:"respondedAt,omitempty"`
}

func (r *FriendRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.RequestID == "" {
		r.RequestID = uuid.New().String()
	}
	return
}

// IsPending reports whether the request can still be resolved.
func (r *FriendRequest) IsPending() bool {
	return r.Status == FriendRequestPending
}
