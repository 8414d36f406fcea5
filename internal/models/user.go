package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // needed for pq.StringArray columns
	"gorm.io/gorm"
)

// User statuses.
const (
	UserStatusIdle     = "idle"
	UserStatusMatching = "matching"
	UserStatusChatting = "chatting"
)

// User represents a registered device and its anonymous identity.
// Profile fields are managed by the external profile API; the coordinator
// only reads them and flips the presence fields.
type User struct {
	// UserID is the anonymous identity, generated on first save.
	UserID string `gorm:"primaryKey" json:"userId"`
	// DeviceID identifies the installing device. One identity per device.
	DeviceID string `gorm:"uniqueIndex;not null" json:"deviceId"`
	Nickname string `gorm:"size:20;not null" json:"nickname"`

	// Last reported location, used for match distance.
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	// CurrentStatus is one of idle, matching, chatting.
	CurrentStatus string  `gorm:"default:idle" json:"currentStatus"`
	CurrentRoomID *string `json:"currentRoomId"`
	IsOnline      bool    `json:"isOnline"`
	// ConnID is the live connection handle, nil while offline.
	ConnID *string `gorm:"index" json:"-"`

	ProfileImage     *string        `json:"profileImage"`
	ProfileImages    pq.StringArray `gorm:"type:text[]" json:"profileImages"`
	Bio              string         `gorm:"size:200" json:"bio"`
	MBTI             string         `gorm:"size:4" json:"mbti"`
	Hobbies          pq.StringArray `gorm:"type:text[]" json:"hobbies"`
	PreferredType    string         `gorm:"size:150" json:"preferredType"`
	ProfileUpdatedAt *time.Time     `json:"profileUpdatedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate generates the anonymous UserID when it is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.UserID == "" {
		u.UserID = uuid.New().String()
	}
	return
}
