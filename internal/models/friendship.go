package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Friendship is a durable, unordered relationship between two identities.
// The pair is stored normalized (UserAID < UserBID) so uniqueness and
// lookups do not depend on who sent the original request.
type Friendship struct {
	FriendshipID string `gorm:"primaryKey" json:"friendshipId"`
	UserAID      string `gorm:"not null;uniqueIndex:idx_friend_pair" json:"userAId"`
	UserBID      string `gorm:"not null;uniqueIndex:idx_friend_pair" json:"userBId"`
	NicknameA    string `gorm:"size:20;not null" json:"nicknameA"`
	NicknameB    string `gorm:"size:20;not null" json:"nicknameB"`
	// RoomID references the most recent room shared by the pair.
	RoomID        string    `gorm:"not null" json:"roomId"`
	LastMessage   string    `gorm:"default:''" json:"lastMessage"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NormalizePair orders two identities so that the smaller one comes first.
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// NewFriendship builds a friendship from a directional request, storing
// the pair in normalized order.
func NewFriendship(requesterID, receiverID, requesterNick, receiverNick, roomID string) *Friendship {
	f := &Friendship{
		UserAID:       requesterID,
		UserBID:       receiverID,
		NicknameA:     requesterNick,
		NicknameB:     receiverNick,
		RoomID:        roomID,
		IsActive:      true,
		LastMessageAt: time.Now(),
	}
	if f.UserBID < f.UserAID {
		f.UserAID, f.UserBID = f.UserBID, f.UserAID
		f.NicknameA, f.NicknameB = f.NicknameB, f.NicknameA
	}
	return f
}

// BeforeSave keeps the pair normalized regardless of how the record was
// assembled, and generates the ID when missing.
func (f *Friendship) BeforeSave(tx *gorm.DB) error {
	if f.UserBID < f.UserAID {
		f.UserAID, f.UserBID = f.UserBID, f.UserAID
		f.NicknameA, f.NicknameB = f.NicknameB, f.NicknameA
	}
	if f.FriendshipID == "" {
		f.FriendshipID = uuid.New().String()
	}
	return nil
}

// PartnerOf returns the identity and nickname of userID's counterpart.
func (f *Friendship) PartnerOf(userID string) (string, string) {
	if userID == f.UserAID {
		return f.UserBID, f.NicknameB
	}
	return f.UserAID, f.NicknameA
}

// NicknameOf returns the stored nickname for one side of the pair.
func (f *Friendship) NicknameOf(userID string) string {
	if userID == f.UserAID {
		return f.NicknameA
	}
	return f.NicknameB
}
