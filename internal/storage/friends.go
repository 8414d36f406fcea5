package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nearchat/backend/internal/apperr"
	"nearchat/backend/internal/models"
)

// UpsertFriendship creates a friendship for a normalized pair, or
// refreshes the existing record with the new room reference and
// reactivates it. At most one logically active friendship exists per
// unordered pair.
func (s *Service) UpsertFriendship(f *models.Friendship) (*models.Friendship, error) {
	userA, userB := models.NormalizePair(f.UserAID, f.UserBID)

	var existing models.Friendship
	err := s.DB.Where("user_a_id = ? AND user_b_id = ?", userA, userB).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.DB.Create(f).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
		}
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}

	existing.RoomID = f.RoomID
	existing.IsActive = true
	existing.LastMessageAt = time.Now()
	if err := s.DB.Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return &existing, nil
}

// FindActiveFriendship looks up an active friendship for the unordered
// pair. Returns (nil, nil) when none exists.
func (s *Service) FindActiveFriendship(userA, userB string) (*models.Friendship, error) {
	a, b := models.NormalizePair(userA, userB)

	var friendship models.Friendship
	err := s.DB.Where("user_a_id = ? AND user_b_id = ? AND is_active = ?", a, b, true).
		First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return &friendship, nil
}

// GetUserFriendships lists a user's active friendships, most recently
// messaged first.
func (s *Service) GetUserFriendships(userID string) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := s.DB.Where("(user_a_id = ? OR user_b_id = ?) AND is_active = ?", userID, userID, true).
		Order("last_message_at desc").
		Find(&friendships).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return friendships, nil
}
