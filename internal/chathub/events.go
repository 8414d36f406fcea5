package chathub

import (
	"encoding/json"
	"fmt"

	"nearchat/backend/internal/apperr"
	"nearchat/backend/internal/models"
)

// Inbound event names.
const (
	EventUserOnline           = "user_online"
	EventJoinQueue            = "join_queue"
	EventLeaveQueue           = "leave_queue"
	EventSendMessage          = "send_message"
	EventLeaveRoom            = "leave_room"
	EventSendFriendRequest    = "send_friend_request"
	EventAcceptFriendRequest  = "accept_friend_request"
	EventDeclineFriendRequest = "decline_friend_request"
)

// Outbound event names.
const (
	EventMatchSuccess          = "match_success"
	EventReceiveMessage        = "receive_message"
	EventMessageSent           = "message_sent"
	EventRoomClosed            = "room_closed"
	EventFriendRequestReceived = "friend_request_received"
	EventFriendRequestSent     = "friend_request_sent"
	EventFriendRequestAccepted = "friend_request_accepted"
	EventFriendListUpdated     = "friend_list_updated"
	EventFriendRequestDeclined = "friend_request_declined"
	EventError                 = "error"
)

// Envelope is the inbound wire format. Every client frame carries an
// event name and a payload object validated before any handler runs.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// InboundEvent couples a decoded envelope with its origin connection.
type InboundEvent struct {
	Client   Client
	Envelope Envelope
}

// UserOnlinePayload binds a connection to an identity.
type UserOnlinePayload struct {
	DeviceID string `json:"deviceId"`
	UserID   string `json:"userId"`
}

func (p *UserOnlinePayload) Validate() error {
	if p.DeviceID == "" && p.UserID == "" {
		return fmt.Errorf("%w: user_online requires deviceId or userId", apperr.ErrValidation)
	}
	return nil
}

// JoinQueuePayload enters the matching queue. PreventFriendMatching
// defaults to true when omitted.
type JoinQueuePayload struct {
	DeviceID              string `json:"deviceId"`
	UserID                string `json:"userId"`
	PreventFriendMatching *bool  `json:"preventFriendMatching"`
}

func (p *JoinQueuePayload) Validate() error {
	if p.DeviceID == "" && p.UserID == "" {
		return fmt.Errorf("%w: join_queue requires deviceId or userId", apperr.ErrValidation)
	}
	return nil
}

// AvoidFriends resolves the friend-avoidance flag with its default.
func (p *JoinQueuePayload) AvoidFriends() bool {
	if p.PreventFriendMatching == nil {
		return true
	}
	return *p.PreventFriendMatching
}

type LeaveQueuePayload struct {
	DeviceID string `json:"deviceId"`
}

func (p *LeaveQueuePayload) Validate() error {
	if p.DeviceID == "" {
		return fmt.Errorf("%w: leave_queue requires deviceId", apperr.ErrValidation)
	}
	return nil
}

// SendMessagePayload submits a chat message to a room.
type SendMessagePayload struct {
	RoomID        string `json:"roomId"`
	SenderID      string `json:"senderId"`
	Message       string `json:"message"`
	MessageType   string `json:"messageType"`
	MediaURL      string `json:"mediaUrl"`
	MediaSize     *int64 `json:"mediaSize"`
	MediaDuration *int   `json:"mediaDuration"`
}

// Type resolves the message type with its default.
func (p *SendMessagePayload) Type() string {
	if p.MessageType == "" {
		return models.MessageTypeText
	}
	return p.MessageType
}

func (p *SendMessagePayload) Validate() error {
	if p.RoomID == "" || p.SenderID == "" {
		return fmt.Errorf("%w: send_message requires roomId and senderId", apperr.ErrValidation)
	}
	switch p.Type() {
	case models.MessageTypeText, models.MessageTypeSystem:
		if p.Message == "" {
			return fmt.Errorf("%w: %s message requires a body", apperr.ErrValidation, p.Type())
		}
		if len(p.Message) > models.MaxMessageBodyLength {
			return fmt.Errorf("%w: message body exceeds %d characters", apperr.ErrValidation, models.MaxMessageBodyLength)
		}
	case models.MessageTypeImage, models.MessageTypeVideo:
		if p.MediaURL == "" || p.MediaSize == nil {
			return fmt.Errorf("%w: %s message requires mediaUrl and mediaSize", apperr.ErrValidation, p.Type())
		}
	default:
		return fmt.Errorf("%w: unknown message type %q", apperr.ErrValidation, p.MessageType)
	}
	return nil
}

type LeaveRoomPayload struct {
	RoomID   string `json:"roomId"`
	DeviceID string `json:"deviceId"`
}

func (p *LeaveRoomPayload) Validate() error {
	if p.RoomID == "" || p.DeviceID == "" {
		return fmt.Errorf("%w: leave_room requires roomId and deviceId", apperr.ErrValidation)
	}
	return nil
}

// SendFriendRequestPayload proposes a friendship from the current room.
// The mobile client sends user identities in the device fields.
type SendFriendRequestPayload struct {
	RoomID            string `json:"roomId"`
	RequesterID       string `json:"requesterDeviceId"`
	ReceiverID        string `json:"receiverDeviceId"`
	RequesterNickname string `json:"requesterNickname"`
	ReceiverNickname  string `json:"receiverNickname"`
}

func (p *SendFriendRequestPayload) Validate() error {
	if p.RoomID == "" || p.RequesterID == "" || p.ReceiverID == "" ||
		p.RequesterNickname == "" || p.ReceiverNickname == "" {
		return fmt.Errorf("%w: send_friend_request requires all fields", apperr.ErrValidation)
	}
	if p.RequesterID == p.ReceiverID {
		return fmt.Errorf("%w: cannot send a friend request to yourself", apperr.ErrValidation)
	}
	return nil
}

type AcceptFriendRequestPayload struct {
	RequestID string `json:"requestId"`
}

func (p *AcceptFriendRequestPayload) Validate() error {
	if p.RequestID == "" {
		return fmt.Errorf("%w: accept_friend_request requires requestId", apperr.ErrValidation)
	}
	return nil
}

type DeclineFriendRequestPayload struct {
	RequestID string `json:"requestId"`
}

func (p *DeclineFriendRequestPayload) Validate() error {
	if p.RequestID == "" {
		return fmt.Errorf("%w: decline_friend_request requires requestId", apperr.ErrValidation)
	}
	return nil
}
