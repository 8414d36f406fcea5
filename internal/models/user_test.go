package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreateGeneratesIdentity(t *testing.T) {
	u := &User{DeviceID: "dev-1", Nickname: "mia"}

	assert.NoError(t, u.BeforeCreate(nil))
	assert.NotEmpty(t, u.UserID)

	// An existing identity is never regenerated.
	fixed := &User{UserID: "u1", DeviceID: "dev-2"}
	assert.NoError(t, fixed.BeforeCreate(nil))
	assert.Equal(t, "u1", fixed.UserID)
}

func TestMessage_IsMedia(t *testing.T) {
	assert.False(t, (&Message{Type: MessageTypeText}).IsMedia())
	assert.False(t, (&Message{Type: MessageTypeSystem}).IsMedia())
	assert.True(t, (&Message{Type: MessageTypeImage}).IsMedia())
	assert.True(t, (&Message{Type: MessageTypeVideo}).IsMedia())
}

func TestMessagePayload_AckDropsSender(t *testing.T) {
	p := NewMessagePayload(&Message{MessageID: "m1", Type: MessageTypeText, SenderID: "u1", Body: "hi"})
	assert.Equal(t, "u1", p.SenderID)

	ack := p.Ack()
	assert.Empty(t, ack.SenderID)
	assert.Equal(t, "u1", p.SenderID, "original payload untouched")
}
