package models

import "time"

// ServerEvent is the outbound wire envelope pushed to a client.
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// MessagePayload is the canonical wire form of a persisted message.
// The same payload is broadcast to the room (with SenderID) and echoed
// back to the sender as the ack (with SenderID cleared).
type MessagePayload struct {
	MessageID     string    `json:"messageId"`
	MessageType   string    `json:"messageType"`
	SenderID      string    `json:"senderId,omitempty"`
	Message       string    `json:"message,omitempty"`
	MediaURL      string    `json:"mediaUrl,omitempty"`
	MediaSize     *int64    `json:"mediaSize,omitempty"`
	MediaDuration *int      `json:"mediaDuration,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewMessagePayload builds the canonical payload from a stored message.
func NewMessagePayload(m *Message) MessagePayload {
	p := MessagePayload{
		MessageID:   m.MessageID,
		MessageType: m.Type,
		SenderID:    m.SenderID,
		CreatedAt:   m.CreatedAt,
	}
	switch m.Type {
	case MessageTypeText, MessageTypeSystem:
		p.Message = m.Body
	case MessageTypeImage, MessageTypeVideo:
		p.MediaURL = m.MediaURL
		p.MediaSize = m.MediaSize
		if m.Type == MessageTypeVideo {
			p.MediaDuration = m.MediaDuration
		}
	}
	return p
}

// Ack returns the sender-facing copy of the payload. The sender must
// never see itself as a broadcast recipient, so the ack travels on a
// separate event without the sender field.
func (p MessagePayload) Ack() MessagePayload {
	p.SenderID = ""
	return p
}

// RelayedMessage is the Pub/Sub envelope carrying a canonical payload to
// every hub instance subscribed to the room channels.
type RelayedMessage struct {
	RoomID  string         `json:"roomId"`
	Message MessagePayload `json:"message"`
}

// MatchSuccess notifies one side of a fresh pairing.
type MatchSuccess struct {
	RoomID          string  `json:"roomId"`
	PartnerNickname string  `json:"partnerNickname"`
	PartnerUserID   string  `json:"partnerUserId"`
	PartnerDeviceID string  `json:"partnerDeviceId"`
	Distance        float64 `json:"distance"`
	Message         string  `json:"message"`
}

// RoomClosed notifies the remaining participant that the session ended.
type RoomClosed struct {
	Message string `json:"message"`
}

// FriendRequestReceived notifies the receiver of a pending request.
type FriendRequestReceived struct {
	RequestID         string `json:"requestId"`
	RequesterNickname string `json:"requesterNickname"`
	RequesterDeviceID string `json:"requesterDeviceId"`
	RoomID            string `json:"roomId"`
}

// FriendRequestSent confirms delivery back to the requester.
type FriendRequestSent struct {
	RequestID        string `json:"requestId"`
	Status           string `json:"status"`
	ReceiverNickname string `json:"receiverNickname"`
}

// NewFriend is the per-side view of a freshly accepted friendship.
type NewFriend struct {
	FriendshipID   string    `json:"friendshipId"`
	FriendUserID   string    `json:"friendUserId"`
	FriendNickname string    `json:"friendNickname"`
	MyNickname     string    `json:"myNickname"`
	RoomID         string    `json:"roomId"`
	LastMessage    string    `json:"lastMessage"`
	LastMessageAt  time.Time `json:"lastMessageAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FriendRequestAcceptedEvent notifies both sides of an accepted request.
type FriendRequestAcceptedEvent struct {
	Friendship      *Friendship `json:"friendship"`
	PartnerNickname string      `json:"partnerNickname"`
	NewFriend       NewFriend   `json:"newFriend"`
}

// FriendListUpdated carries a friend-list delta.
type FriendListUpdated struct {
	Action string    `json:"action"`
	Friend NewFriend `json:"friend"`
}

// FriendRequestDeclinedEvent notifies the requester of a declined
// request.
type FriendRequestDeclinedEvent struct {
	PartnerNickname string `json:"partnerNickname"`
}

// ErrorPayload is the uniform outbound error event.
type ErrorPayload struct {
	Message string `json:"message"`
}

// PartnerSnapshot is the partner view returned by the room status query.
type PartnerSnapshot struct {
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
	IsOnline bool   `json:"isOnline"`
}

// RoomStatus is the response of the room status query. Missing rooms and
// non-participant requesters both produce the bare inactive form so room
// existence does not leak.
type RoomStatus struct {
	IsActive     bool             `json:"isActive"`
	Participants []string         `json:"participants,omitempty"`
	Partner      *PartnerSnapshot `json:"partner,omitempty"`
	Distance     float64          `json:"distance,omitempty"`
	CreatedAt    *time.Time       `json:"createdAt,omitempty"`
}
