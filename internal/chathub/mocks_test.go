package chathub

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"nearchat/backend/internal/models"
)

// MockStorage is a hand-written testify mock of the storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) FindUserByDeviceOrID(deviceID, userID string) (*models.User, error) {
	args := m.Called(deviceID, userID)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) GetUserByID(userID string) (*models.User, error) {
	args := m.Called(userID)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) GetUsersByIDs(userIDs []string) ([]models.User, error) {
	args := m.Called(userIDs)
	if u := args.Get(0); u != nil {
		return u.([]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) BindConnection(userID, connID string) error {
	return m.Called(userID, connID).Error(0)
}

func (m *MockStorage) ClearConnection(connID string) (*models.User, error) {
	args := m.Called(connID)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) SetUsersChatting(userIDs []string, roomID string) error {
	return m.Called(userIDs, roomID).Error(0)
}

func (m *MockStorage) ResetUsersToIdle(userIDs []string) error {
	return m.Called(userIDs).Error(0)
}

func (m *MockStorage) SaveRoom(room *models.Room) error {
	return m.Called(room).Error(0)
}

func (m *MockStorage) GetRoomByID(roomID string) (*models.Room, error) {
	args := m.Called(roomID)
	if r := args.Get(0); r != nil {
		return r.(*models.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) CloseRoom(roomID string) error {
	return m.Called(roomID).Error(0)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	return m.Called(msg).Error(0)
}

func (m *MockStorage) GetRoomMessages(roomID string) ([]models.Message, error) {
	args := m.Called(roomID)
	if msgs := args.Get(0); msgs != nil {
		return msgs.([]models.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) PublishMessage(roomID string, relayed models.RelayedMessage) error {
	return m.Called(roomID, relayed).Error(0)
}

func (m *MockStorage) SubscribeToRooms() *redis.PubSub {
	args := m.Called()
	if ps := args.Get(0); ps != nil {
		return ps.(*redis.PubSub)
	}
	return nil
}

func (m *MockStorage) UpsertFriendship(f *models.Friendship) (*models.Friendship, error) {
	args := m.Called(f)
	if saved := args.Get(0); saved != nil {
		return saved.(*models.Friendship), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) FindActiveFriendship(userA, userB string) (*models.Friendship, error) {
	args := m.Called(userA, userB)
	if f := args.Get(0); f != nil {
		return f.(*models.Friendship), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) GetUserFriendships(userID string) ([]models.Friendship, error) {
	args := m.Called(userID)
	if fs := args.Get(0); fs != nil {
		return fs.([]models.Friendship), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) CreateFriendRequest(req *models.FriendRequest) (*models.FriendRequest, error) {
	args := m.Called(req)
	if r := args.Get(0); r != nil {
		return r.(*models.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) GetFriendRequestByID(requestID string) (*models.FriendRequest, error) {
	args := m.Called(requestID)
	if r := args.Get(0); r != nil {
		return r.(*models.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) UpdateFriendRequestStatus(requestID, status string) (*models.FriendRequest, error) {
	args := m.Called(requestID, status)
	if r := args.Get(0); r != nil {
		return r.(*models.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListPendingFriendRequests(userID string) ([]models.FriendRequest, error) {
	args := m.Called(userID)
	if reqs := args.Get(0); reqs != nil {
		return reqs.([]models.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) DeleteExpiredFriendRequests(before time.Time) (int64, error) {
	args := m.Called(before)
	return args.Get(0).(int64), args.Error(1)
}
