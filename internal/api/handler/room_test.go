package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"nearchat/backend/internal/apperr"
	"nearchat/backend/internal/models"
	"nearchat/backend/internal/storage"
)

// stubStorage overrides only the calls the room status endpoint makes.
type stubStorage struct {
	storage.Storage
	room    *models.Room
	roomErr error
	user    *models.User
	userErr error
}

func (s *stubStorage) GetRoomByID(roomID string) (*models.Room, error) {
	return s.room, s.roomErr
}

func (s *stubStorage) GetUserByID(userID string) (*models.User, error) {
	return s.user, s.userErr
}

func statusRouter(st storage.Storage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, st)
	r := gin.New()
	r.GET("/rooms/:roomId/status", h.RoomStatus)
	r.GET("/health", h.Health)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRoomStatus_ParticipantSeesFullStatus(t *testing.T) {
	st := &stubStorage{
		room: &models.Room{
			RoomID:   "room-1",
			UserIDs:  pq.StringArray{"u1", "u2"},
			IsActive: true,
			Distance: 1.25,
		},
		user: &models.User{UserID: "u2", Nickname: "noah", IsOnline: true},
	}

	w := get(statusRouter(st), "/rooms/room-1/status?userId=u1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isActive":true`)
	assert.Contains(t, w.Body.String(), `"nickname":"noah"`)
	assert.Contains(t, w.Body.String(), `"distance":1.25`)
}

func TestRoomStatus_MissingRoomAndNonParticipantAreIndistinguishable(t *testing.T) {
	missing := &stubStorage{roomErr: apperr.ErrNotFound}
	foreign := &stubStorage{
		room: &models.Room{
			RoomID:   "room-1",
			UserIDs:  pq.StringArray{"u1", "u2"},
			IsActive: true,
		},
	}

	wMissing := get(statusRouter(missing), "/rooms/room-x/status?userId=u3")
	wForeign := get(statusRouter(foreign), "/rooms/room-1/status?userId=u3")

	assert.Equal(t, http.StatusOK, wMissing.Code)
	assert.Equal(t, http.StatusOK, wForeign.Code)
	assert.JSONEq(t, wMissing.Body.String(), wForeign.Body.String())
	assert.NotContains(t, wForeign.Body.String(), "participants")
}

func TestRoomStatus_MissingUserIDGetsInactiveForm(t *testing.T) {
	st := &stubStorage{
		room: &models.Room{RoomID: "room-1", UserIDs: pq.StringArray{"u1", "u2"}, IsActive: true},
	}

	w := get(statusRouter(st), "/rooms/room-1/status")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isActive":false`)
}

func TestRoomStatus_PartnerLookupFailureOmitsSnapshot(t *testing.T) {
	st := &stubStorage{
		room: &models.Room{
			RoomID:   "room-1",
			UserIDs:  pq.StringArray{"u1", "u2"},
			IsActive: true,
		},
		userErr: apperr.ErrNotFound,
	}

	w := get(statusRouter(st), "/rooms/room-1/status?userId=u1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isActive":true`)
	assert.NotContains(t, w.Body.String(), "partner")
}

func TestHealth(t *testing.T) {
	w := get(statusRouter(&stubStorage{}), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
