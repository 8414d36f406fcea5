package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"nearchat/backend/internal/apperr"
	"nearchat/backend/internal/models"
)

// FindUserByDeviceOrID resolves a user by user ID first, device ID as a
// backup. Returns ErrNotFound when neither matches.
func (s *Service) FindUserByDeviceOrID(deviceID, userID string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("user_id = ? OR device_id = ?", userID, deviceID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s/%s", apperr.ErrNotFound, userID, deviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return &user, nil
}

func (s *Service) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return &user, nil
}

func (s *Service) GetUsersByIDs(userIDs []string) ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("user_id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return users, nil
}

// BindConnection marks the user online and records the live connection
// handle.
func (s *Service) BindConnection(userID, connID string) error {
	err := s.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"is_online": true,
			"conn_id":   connID,
		}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return nil
}

// ClearConnection marks the owner of connID offline, resets its status to
// idle and clears the room reference. A missing owner is a no-op and
// returns nil without error.
func (s *Service) ClearConnection(connID string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("conn_id = ?", connID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}

	err = s.DB.Model(&models.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]interface{}{
			"is_online":       false,
			"conn_id":         nil,
			"current_status":  models.UserStatusIdle,
			"current_room_id": nil,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return &user, nil
}

// SetUsersChatting moves the paired users into the chatting state.
func (s *Service) SetUsersChatting(userIDs []string, roomID string) error {
	err := s.DB.Model(&models.User{}).
		Where("user_id IN ?", userIDs).
		Updates(map[string]interface{}{
			"current_status":  models.UserStatusChatting,
			"current_room_id": roomID,
		}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return nil
}

// ResetUsersToIdle clears the room reference and status after a session
// ends.
func (s *Service) ResetUsersToIdle(userIDs []string) error {
	err := s.DB.Model(&models.User{}).
		Where("user_id IN ?", userIDs).
		Updates(map[string]interface{}{
			"current_status":  models.UserStatusIdle,
			"current_room_id": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return nil
}
