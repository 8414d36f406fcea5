package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message types.
const (
	MessageTypeText   = "text"
	MessageTypeSystem = "system"
	MessageTypeImage  = "image"
	MessageTypeVideo  = "video"
)

// MaxMessageBodyLength bounds the text body of a chat message.
const MaxMessageBodyLength = 1000

// Message is a persisted chat message. Immutable once created.
type Message struct {
	MessageID string `gorm:"primaryKey" json:"messageId"`
	RoomID    string `gorm:"not null;index:idx_room_msg" json:"roomId"`
	SenderID  string `gorm:"not null;index:idx_room_msg" json:"senderId"`
	// Type is one of text, system, image, video.
	Type string `gorm:"not null;default:text" json:"messageType"`
	// Body carries the text for text/system messages.
	Body string `gorm:"size:1000" json:"message,omitempty"`
	// MediaURL and MediaSize are set for image/video messages,
	// MediaDuration additionally for video (seconds).
	MediaURL      string    `json:"mediaUrl,omitempty"`
	MediaSize     *int64    `json:"mediaSize,omitempty"`
	MediaDuration *int      `json:"mediaDuration,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.MessageID == "" {
		m.MessageID = uuid.New().String()
	}
	return
}

// IsMedia reports whether the message carries a media reference.
func (m *Message) IsMedia() bool {
	return m.Type == MessageTypeImage || m.Type == MessageTypeVideo
}
