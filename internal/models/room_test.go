package models

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"nearchat/backend/internal/apperr"
)

func TestRoom_BeforeSaveRequiresTwoDistinctUsers(t *testing.T) {
	cases := map[string]pq.StringArray{
		"no users":        nil,
		"one user":        {"u1"},
		"three users":     {"u1", "u2", "u3"},
		"duplicate users": {"u1", "u1"},
	}
	for name, users := range cases {
		r := &Room{UserIDs: users}
		assert.ErrorIs(t, r.BeforeSave(nil), apperr.ErrValidation, name)
	}

	r := &Room{UserIDs: pq.StringArray{"u1", "u2"}}
	assert.NoError(t, r.BeforeSave(nil))
	assert.NotEmpty(t, r.RoomID)
}

func TestRoom_ParticipantHelpers(t *testing.T) {
	r := &Room{UserIDs: pq.StringArray{"u1", "u2"}}

	assert.True(t, r.HasParticipant("u1"))
	assert.False(t, r.HasParticipant("u3"))

	assert.Equal(t, "u2", r.PartnerID("u1"))
	assert.Equal(t, "u1", r.PartnerID("u2"))
}
