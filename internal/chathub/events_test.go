package chathub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"nearchat/backend/internal/apperr"
	"nearchat/backend/internal/models"
)

func TestUserOnlinePayload_RequiresSomeIdentity(t *testing.T) {
	p := &UserOnlinePayload{}
	assert.ErrorIs(t, p.Validate(), apperr.ErrValidation)

	assert.NoError(t, (&UserOnlinePayload{DeviceID: "dev-1"}).Validate())
	assert.NoError(t, (&UserOnlinePayload{UserID: "u1"}).Validate())
}

func TestJoinQueuePayload_FriendAvoidanceDefaultsOn(t *testing.T) {
	p := &JoinQueuePayload{DeviceID: "dev-1"}
	assert.True(t, p.AvoidFriends())

	off := false
	p.PreventFriendMatching = &off
	assert.False(t, p.AvoidFriends())
}

func TestSendMessagePayload_Validation(t *testing.T) {
	assert.ErrorIs(t,
		(&SendMessagePayload{SenderID: "u1", Message: "hi"}).Validate(),
		apperr.ErrValidation, "missing roomId")

	assert.ErrorIs(t,
		(&SendMessagePayload{RoomID: "r1", SenderID: "u1"}).Validate(),
		apperr.ErrValidation, "text message without body")

	long := strings.Repeat("a", models.MaxMessageBodyLength+1)
	assert.ErrorIs(t,
		(&SendMessagePayload{RoomID: "r1", SenderID: "u1", Message: long}).Validate(),
		apperr.ErrValidation, "body over limit")

	assert.ErrorIs(t,
		(&SendMessagePayload{RoomID: "r1", SenderID: "u1", MessageType: "sticker"}).Validate(),
		apperr.ErrValidation, "unknown type")

	assert.ErrorIs(t,
		(&SendMessagePayload{RoomID: "r1", SenderID: "u1", MessageType: models.MessageTypeImage}).Validate(),
		apperr.ErrValidation, "image without media fields")

	size := int64(1024)
	assert.NoError(t,
		(&SendMessagePayload{
			RoomID:      "r1",
			SenderID:    "u1",
			MessageType: models.MessageTypeImage,
			MediaURL:    "https://cdn.example.com/a.jpg",
			MediaSize:   &size,
		}).Validate())

	assert.NoError(t,
		(&SendMessagePayload{RoomID: "r1", SenderID: "u1", Message: "hi"}).Validate())
}

func TestSendMessagePayload_TypeDefaultsToText(t *testing.T) {
	assert.Equal(t, models.MessageTypeText, (&SendMessagePayload{}).Type())
	assert.Equal(t, models.MessageTypeVideo, (&SendMessagePayload{MessageType: models.MessageTypeVideo}).Type())
}

func TestSendFriendRequestPayload_RejectsSelfRequest(t *testing.T) {
	p := &SendFriendRequestPayload{
		RoomID:            "r1",
		RequesterID:       "u1",
		ReceiverID:        "u1",
		RequesterNickname: "mia",
		ReceiverNickname:  "mia",
	}
	assert.ErrorIs(t, p.Validate(), apperr.ErrValidation)

	p.ReceiverID = "u2"
	p.ReceiverNickname = "noah"
	assert.NoError(t, p.Validate())
}

func TestRequestResolutionPayloads_RequireRequestID(t *testing.T) {
	assert.ErrorIs(t, (&AcceptFriendRequestPayload{}).Validate(), apperr.ErrValidation)
	assert.ErrorIs(t, (&DeclineFriendRequestPayload{}).Validate(), apperr.ErrValidation)
	assert.NoError(t, (&AcceptFriendRequestPayload{RequestID: "req-1"}).Validate())
	assert.NoError(t, (&DeclineFriendRequestPayload{RequestID: "req-1"}).Validate())
}

func TestLeavePayloads_Validation(t *testing.T) {
	assert.ErrorIs(t, (&LeaveQueuePayload{}).Validate(), apperr.ErrValidation)
	assert.NoError(t, (&LeaveQueuePayload{DeviceID: "dev-1"}).Validate())

	assert.ErrorIs(t, (&LeaveRoomPayload{RoomID: "r1"}).Validate(), apperr.ErrValidation)
	assert.NoError(t, (&LeaveRoomPayload{RoomID: "r1", DeviceID: "dev-1"}).Validate())
}
