// Package storage persists the coordinator's durable state in PostgreSQL
// and fans chat messages out through Redis Pub/Sub.
package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"nearchat/backend/internal/models"
)

// Storage is the collaborator interface consumed by the chat hub.
type Storage interface {
	// Users
	FindUserByDeviceOrID(deviceID, userID string) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)
	GetUsersByIDs(userIDs []string) ([]models.User, error)
	BindConnection(userID, connID string) error
	ClearConnection(connID string) (*models.User, error)
	SetUsersChatting(userIDs []string, roomID string) error
	ResetUsersToIdle(userIDs []string) error

	// Rooms
	SaveRoom(room *models.Room) error
	GetRoomByID(roomID string) (*models.Room, error)
	CloseRoom(roomID string) error

	// Messages
	SaveMessage(msg *models.Message) error
	GetRoomMessages(roomID string) ([]models.Message, error)
	PublishMessage(roomID string, relayed models.RelayedMessage) error
	SubscribeToRooms() *redis.PubSub

	// Friendships
	UpsertFriendship(f *models.Friendship) (*models.Friendship, error)
	FindActiveFriendship(userA, userB string) (*models.Friendship, error)
	GetUserFriendships(userID string) ([]models.Friendship, error)

	// Friend requests
	CreateFriendRequest(req *models.FriendRequest) (*models.FriendRequest, error)
	GetFriendRequestByID(requestID string) (*models.FriendRequest, error)
	UpdateFriendRequestStatus(requestID, status string) (*models.FriendRequest, error)
	ListPendingFriendRequests(userID string) ([]models.FriendRequest, error)
	DeleteExpiredFriendRequests(before time.Time) (int64, error)
}

// Service implements Storage on top of GORM and go-redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService builds the storage service. Redis may be nil for
// offline tooling that never relays messages.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
