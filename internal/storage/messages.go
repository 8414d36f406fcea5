package storage

import (
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"nearchat/backend/internal/apperr"
	"nearchat/backend/internal/models"
)

// roomChannel names the Pub/Sub channel carrying a room's messages.
func roomChannel(roomID string) string {
	return "room:" + roomID
}

func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return nil
}

// GetRoomMessages lists a room's messages in creation order.
func (s *Service) GetRoomMessages(roomID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.Where("room_id = ?", roomID).Order("created_at asc").Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return messages, nil
}

// PublishMessage pushes a persisted message onto the room's Pub/Sub
// channel for delivery by every subscribed hub.
func (s *Service) PublishMessage(roomID string, relayed models.RelayedMessage) error {
	payload, err := json.Marshal(relayed)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	if err := s.Redis.Publish(s.Ctx, roomChannel(roomID), payload).Err(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return nil
}

// SubscribeToRooms subscribes to every room channel.
func (s *Service) SubscribeToRooms() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, roomChannel("*"))
}
