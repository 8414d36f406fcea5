package chathub

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"nearchat/backend/internal/apperr"
	"nearchat/backend/internal/config"
	"nearchat/backend/internal/models"
	"nearchat/backend/internal/storage"
)

// HandshakeService runs the friend request lifecycle: send, accept,
// decline, and retention cleanup of stale pending requests.
type HandshakeService struct {
	Hub     *ManagerService
	Storage storage.Storage
}

func NewHandshakeService(hub *ManagerService, s storage.Storage) *HandshakeService {
	return &HandshakeService{Hub: hub, Storage: s}
}

// Send records a pending request and notifies the receiver when online.
// A duplicate send for the same room and direction returns the already
// recorded request, so the requester's ack is idempotent.
func (hs *HandshakeService) Send(c Client, p SendFriendRequestPayload) {
	req, err := hs.Storage.CreateFriendRequest(&models.FriendRequest{
		RequesterID:       p.RequesterID,
		ReceiverID:        p.ReceiverID,
		RequesterNickname: p.RequesterNickname,
		ReceiverNickname:  p.ReceiverNickname,
		RoomID:            p.RoomID,
		Status:            models.FriendRequestPending,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"roomId":    p.RoomID,
			"requester": p.RequesterID,
			"err":       err,
		}).Error("failed to record friend request")
		hs.Hub.SendError(c, "error_friend_request")
		return
	}

	if receiver, ok := hs.Hub.ClientByUser(p.ReceiverID); ok && req.IsPending() {
		hs.Hub.SendEvent(receiver, EventFriendRequestReceived, models.FriendRequestReceived{
			RequestID:         req.RequestID,
			RequesterNickname: req.RequesterNickname,
			RequesterDeviceID: p.RequesterID,
			RoomID:            req.RoomID,
		})
	}

	hs.Hub.SendEvent(c, EventFriendRequestSent, models.FriendRequestSent{
		RequestID:        req.RequestID,
		Status:           req.Status,
		ReceiverNickname: req.ReceiverNickname,
	})

	logrus.WithFields(logrus.Fields{
		"requestId": req.RequestID,
		"roomId":    req.RoomID,
		"status":    req.Status,
	}).Info("friend request sent")
}

// requirePending guards the accept/decline transitions: resolved
// requests are terminal.
func requirePending(req *models.FriendRequest) error {
	if !req.IsPending() {
		return fmt.Errorf("%w: friend request %s is %s", apperr.ErrState, req.RequestID, req.Status)
	}
	return nil
}

// Accept resolves a pending request into a friendship and notifies both
// sides. Accepting twice, or accepting a declined request, produces an
// error event without touching the friendship.
func (hs *HandshakeService) Accept(c Client, p AcceptFriendRequestPayload) {
	req, err := hs.Storage.GetFriendRequestByID(p.RequestID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"requestId": p.RequestID, "err": err}).
			Warn("accept: friend request not found")
		hs.Hub.SendError(c, "error_request_accept")
		return
	}
	if err := requirePending(req); err != nil {
		logrus.WithFields(logrus.Fields{"requestId": req.RequestID, "err": err}).
			Warn("accept: friend request already resolved")
		hs.Hub.SendError(c, "error_request_accept")
		return
	}

	if _, err := hs.Storage.UpdateFriendRequestStatus(req.RequestID, models.FriendRequestAccepted); err != nil {
		logrus.WithFields(logrus.Fields{"requestId": req.RequestID, "err": err}).
			Error("accept: failed to update request status")
		hs.Hub.SendError(c, "error_request_accept")
		return
	}

	friendship, err := hs.Storage.UpsertFriendship(models.NewFriendship(
		req.RequesterID, req.ReceiverID,
		req.RequesterNickname, req.ReceiverNickname,
		req.RoomID,
	))
	if err != nil {
		logrus.WithFields(logrus.Fields{"requestId": req.RequestID, "err": err}).
			Error("accept: failed to upsert friendship")
		hs.Hub.SendError(c, "error_request_accept")
		return
	}

	hs.notifyAccepted(req.RequesterID, friendship)
	hs.notifyAccepted(req.ReceiverID, friendship)

	logrus.WithFields(logrus.Fields{
		"requestId":    req.RequestID,
		"friendshipId": friendship.FriendshipID,
	}).Info("friend request accepted")
}

// notifyAccepted delivers the accepted event plus a friend-list delta to
// one side of the new friendship, if that side is online.
func (hs *HandshakeService) notifyAccepted(userID string, f *models.Friendship) {
	c, ok := hs.Hub.ClientByUser(userID)
	if !ok {
		return
	}
	partnerID, partnerNick := f.PartnerOf(userID)
	friend := models.NewFriend{
		FriendshipID:   f.FriendshipID,
		FriendUserID:   partnerID,
		FriendNickname: partnerNick,
		MyNickname:     f.NicknameOf(userID),
		RoomID:         f.RoomID,
		LastMessage:    f.LastMessage,
		LastMessageAt:  f.LastMessageAt,
		CreatedAt:      f.CreatedAt,
	}
	hs.Hub.SendEvent(c, EventFriendRequestAccepted, models.FriendRequestAcceptedEvent{
		Friendship:      f,
		PartnerNickname: partnerNick,
		NewFriend:       friend,
	})
	hs.Hub.SendEvent(c, EventFriendListUpdated, models.FriendListUpdated{
		Action: "add",
		Friend: friend,
	})
}

// Decline marks a pending request declined and tells the requester. The
// receiver already knows; no event goes back to them.
func (hs *HandshakeService) Decline(c Client, p DeclineFriendRequestPayload) {
	req, err := hs.Storage.GetFriendRequestByID(p.RequestID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"requestId": p.RequestID, "err": err}).
			Warn("decline: friend request not found")
		hs.Hub.SendError(c, "error_request_decline")
		return
	}
	if err := requirePending(req); err != nil {
		logrus.WithFields(logrus.Fields{"requestId": req.RequestID, "err": err}).
			Warn("decline: friend request already resolved")
		hs.Hub.SendError(c, "error_request_decline")
		return
	}

	if _, err := hs.Storage.UpdateFriendRequestStatus(req.RequestID, models.FriendRequestDeclined); err != nil {
		logrus.WithFields(logrus.Fields{"requestId": req.RequestID, "err": err}).
			Error("decline: failed to update request status")
		hs.Hub.SendError(c, "error_request_decline")
		return
	}

	if requester, ok := hs.Hub.ClientByUser(req.RequesterID); ok {
		hs.Hub.SendEvent(requester, EventFriendRequestDeclined, models.FriendRequestDeclinedEvent{
			PartnerNickname: req.ReceiverNickname,
		})
	}

	logrus.WithField("requestId", req.RequestID).Info("friend request declined")
}

// CleanupExpired deletes pending requests older than the retention
// window. Resolved requests are kept.
func (hs *HandshakeService) CleanupExpired() {
	cutoff := time.Now().Add(-config.FriendRequestRetention)
	deleted, err := hs.Storage.DeleteExpiredFriendRequests(cutoff)
	if err != nil {
		logrus.WithField("err", err).Error("friend request cleanup failed")
		return
	}
	if deleted > 0 {
		logrus.WithField("deleted", deleted).Info("expired friend requests removed")
	}
}
