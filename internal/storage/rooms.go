package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"nearchat/backend/internal/apperr"
	"nearchat/backend/internal/models"
)

func (s *Service) SaveRoom(room *models.Room) error {
	if err := s.DB.Save(room).Error; err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return err
		}
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return nil
}

func (s *Service) GetRoomByID(roomID string) (*models.Room, error) {
	var room models.Room
	err := s.DB.Where("room_id = ?", roomID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: room %s", apperr.ErrNotFound, roomID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return &room, nil
}

// CloseRoom marks the room inactive and stamps the end time. The record
// stays around for history queries.
func (s *Service) CloseRoom(roomID string) error {
	err := s.DB.Model(&models.Room{}).
		Where("room_id = ?", roomID).
		Updates(map[string]interface{}{
			"is_active": false,
			"ended_at":  gorm.Expr("NOW()"),
		}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return nil
}
