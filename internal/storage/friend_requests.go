package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nearchat/backend/internal/apperr"
	"nearchat/backend/internal/config"
	"nearchat/backend/internal/models"
)

// CreateFriendRequest stores a new request. A duplicate for the same
// (room, requester, receiver) triple returns the existing record instead
// of failing.
func (s *Service) CreateFriendRequest(req *models.FriendRequest) (*models.FriendRequest, error) {
	var existing models.FriendRequest
	err := s.DB.Where("room_id = ? AND requester_id = ? AND receiver_id = ?",
		req.RoomID, req.RequesterID, req.ReceiverID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}

	if err := s.DB.Create(req).Error; err != nil {
		// A concurrent insert for the same triple can slip between the
		// lookup above and this create.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: friend request already exists for room %s", apperr.ErrConflict, req.RoomID)
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return req, nil
}

func (s *Service) GetFriendRequestByID(requestID string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := s.DB.Where("request_id = ?", requestID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: friend request %s", apperr.ErrNotFound, requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return &req, nil
}

// UpdateFriendRequestStatus resolves a request and stamps the response
// time.
func (s *Service) UpdateFriendRequestStatus(requestID, status string) (*models.FriendRequest, error) {
	req, err := s.GetFriendRequestByID(requestID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	req.Status = status
	req.RespondedAt = &now
	if err := s.DB.Save(req).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return req, nil
}

// ListPendingFriendRequests returns a receiver's pending requests,
// excluding any past the retention window.
func (s *Service) ListPendingFriendRequests(userID string) ([]models.FriendRequest, error) {
	cutoff := time.Now().Add(-config.FriendRequestRetention)

	var requests []models.FriendRequest
	err := s.DB.Where("receiver_id = ? AND status = ? AND created_at > ?",
		userID, models.FriendRequestPending, cutoff).
		Order("created_at desc").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return requests, nil
}

// DeleteExpiredFriendRequests removes pending requests created before
// the cutoff. Resolved requests are kept.
func (s *Service) DeleteExpiredFriendRequests(before time.Time) (int64, error) {
	result := s.DB.Where("status = ? AND created_at < ?", models.FriendRequestPending, before).
		Delete(&models.FriendRequest{})
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrPersistence, result.Error)
	}
	return result.RowsAffected, nil
}
