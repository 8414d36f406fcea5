package chathub

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"nearchat/backend/internal/models"
)

func activeRoom(roomID string, users ...string) *models.Room {
	return &models.Room{RoomID: roomID, UserIDs: pq.StringArray(users), IsActive: true}
}

func TestRelay_PersistsPublishesAndAcks(t *testing.T) {
	hub, st := newTestHub()
	sender := connect(hub, "conn-u1")

	st.On("GetRoomByID", "room-1").Return(activeRoom("room-1", "u1", "u2"), nil)
	st.On("SaveMessage", mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Message).MessageID = "msg-1"
		}).Return(nil)

	var published models.RelayedMessage
	st.On("PublishMessage", "room-1", mock.AnythingOfType("models.RelayedMessage")).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(models.RelayedMessage)
		}).Return(nil)

	hub.Relay.Submit(sender, SendMessagePayload{
		RoomID:   "room-1",
		SenderID: "u1",
		Message:  "hello",
	})

	// The published payload keeps the sender for recipient filtering.
	assert.Equal(t, "room-1", published.RoomID)
	assert.Equal(t, "msg-1", published.Message.MessageID)
	assert.Equal(t, "u1", published.Message.SenderID)
	assert.Equal(t, "hello", published.Message.Message)

	// The ack goes back without the sender field.
	ev, ok := sender.NextEvent()
	assert.True(t, ok)
	assert.Equal(t, EventMessageSent, ev.Event)
	ack := ev.Data.(models.MessagePayload)
	assert.Equal(t, "msg-1", ack.MessageID)
	assert.Empty(t, ack.SenderID)
	st.AssertExpectations(t)
}

func TestRelay_RejectsInactiveRoom(t *testing.T) {
	hub, st := newTestHub()
	sender := connect(hub, "conn-u1")

	closed := activeRoom("room-1", "u1", "u2")
	closed.IsActive = false
	st.On("GetRoomByID", "room-1").Return(closed, nil)

	hub.Relay.Submit(sender, SendMessagePayload{RoomID: "room-1", SenderID: "u1", Message: "hi"})

	ev, ok := sender.NextEvent()
	assert.True(t, ok)
	assert.Equal(t, EventError, ev.Event)
	st.AssertNotCalled(t, "SaveMessage", mock.Anything)
}

func TestRelay_RejectsNonParticipantSender(t *testing.T) {
	hub, st := newTestHub()
	sender := connect(hub, "conn-u3")

	st.On("GetRoomByID", "room-1").Return(activeRoom("room-1", "u1", "u2"), nil)

	hub.Relay.Submit(sender, SendMessagePayload{RoomID: "room-1", SenderID: "u3", Message: "hi"})

	ev, ok := sender.NextEvent()
	assert.True(t, ok)
	assert.Equal(t, EventError, ev.Event)
	st.AssertNotCalled(t, "SaveMessage", mock.Anything)
}

func TestRelay_PersistFailureSkipsPublish(t *testing.T) {
	hub, st := newTestHub()
	sender := connect(hub, "conn-u1")

	st.On("GetRoomByID", "room-1").Return(activeRoom("room-1", "u1", "u2"), nil)
	st.On("SaveMessage", mock.AnythingOfType("*models.Message")).Return(assert.AnError)

	hub.Relay.Submit(sender, SendMessagePayload{RoomID: "room-1", SenderID: "u1", Message: "hi"})

	ev, ok := sender.NextEvent()
	assert.True(t, ok)
	assert.Equal(t, EventError, ev.Event)
	st.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything)
}

func TestRelay_MediaMessageCarriesMediaFields(t *testing.T) {
	hub, st := newTestHub()
	sender := connect(hub, "conn-u1")

	st.On("GetRoomByID", "room-1").Return(activeRoom("room-1", "u1", "u2"), nil)
	st.On("SaveMessage", mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Message).MessageID = "msg-2"
		}).Return(nil)

	var published models.RelayedMessage
	st.On("PublishMessage", "room-1", mock.AnythingOfType("models.RelayedMessage")).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(models.RelayedMessage)
		}).Return(nil)

	size := int64(2048)
	hub.Relay.Submit(sender, SendMessagePayload{
		RoomID:      "room-1",
		SenderID:    "u1",
		MessageType: models.MessageTypeImage,
		MediaURL:    "https://cdn.example.com/a.jpg",
		MediaSize:   &size,
	})

	assert.Equal(t, models.MessageTypeImage, published.Message.MessageType)
	assert.Equal(t, "https://cdn.example.com/a.jpg", published.Message.MediaURL)
	assert.Equal(t, &size, published.Message.MediaSize)
	assert.Empty(t, published.Message.Message)
}
