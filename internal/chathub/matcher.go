package chathub

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"nearchat/backend/internal/geo"
	"nearchat/backend/internal/models"
	"nearchat/backend/internal/storage"
)

// MatcherService pairs waiting users in arrival order. Pairing runs on
// the hub loop, so one attempt at a time inspects and mutates the queue.
type MatcherService struct {
	Hub     *ManagerService
	Storage storage.Storage
	Queue   *MatchQueue
}

func NewMatcherService(hub *ManagerService, s storage.Storage) *MatcherService {
	return &MatcherService{
		Hub:     hub,
		Storage: s,
		Queue:   hub.Queue,
	}
}

// HandleJoin enqueues the requesting user and tries to pair the queue.
func (ms *MatcherService) HandleJoin(c Client, p JoinQueuePayload) {
	user, err := ms.Storage.FindUserByDeviceOrID(p.DeviceID, p.UserID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"deviceId": p.DeviceID,
			"userId":   p.UserID,
			"err":      err,
		}).Warn("join_queue: identity lookup failed")
		ms.Hub.SendError(c, "error_queue_join")
		return
	}

	ms.Queue.Enqueue(QueueEntry{
		UserID:       user.UserID,
		DeviceID:     user.DeviceID,
		ConnID:       c.GetConnID(),
		Nickname:     user.Nickname,
		Lat:          user.Lat,
		Lng:          user.Lng,
		AvoidFriends: p.AvoidFriends(),
		EnqueuedAt:   time.Now(),
	})

	logrus.WithFields(logrus.Fields{
		"userId":  user.UserID,
		"waiting": ms.Queue.Len(),
	}).Info("user joined matching queue")

	ms.AttemptMatch()
}

// AttemptMatch pops head pairs until the queue cannot produce another
// room. A pair of existing friends is requeued with the older entry back
// at the head and the newer at the tail; with fewer than three waiting
// entries a retry would pop the same pair again, so the attempt stops.
// A conflict requeue keeps the queue size unchanged and the head entry in
// place, so after as many requeues as there are waiting entries every
// candidate for the head has been tried; the attempt stops there too, or
// a queue of mutual friends would rotate forever and stall the hub loop.
func (ms *MatcherService) AttemptMatch() {
	conflicts := 0
	for {
		e1, e2, ok := ms.Queue.PopPair()
		if !ok {
			return
		}

		if (e1.AvoidFriends || e2.AvoidFriends) && ms.areFriends(e1.UserID, e2.UserID) {
			ms.Queue.PushFront(e1)
			ms.Queue.PushBack(e2)
			conflicts++
			logrus.WithFields(logrus.Fields{
				"user1": e1.UserID,
				"user2": e2.UserID,
			}).Info("skipping pairing of existing friends")
			if ms.Queue.Len() < 3 || conflicts >= ms.Queue.Len() {
				return
			}
			continue
		}
		conflicts = 0

		distance := geo.Haversine(e1.Lat, e1.Lng, e2.Lat, e2.Lng)
		room := &models.Room{
			UserIDs:  pq.StringArray{e1.UserID, e2.UserID},
			IsActive: true,
			Distance: distance,
		}
		if err := ms.Storage.SaveRoom(room); err != nil {
			// Both entries go back where they came from, oldest first.
			ms.Queue.PushFront(e2)
			ms.Queue.PushFront(e1)
			logrus.WithFields(logrus.Fields{
				"user1": e1.UserID,
				"user2": e2.UserID,
				"err":   err,
			}).Error("failed to create room, requeued both users")
			ms.sendQueueError(e1.ConnID)
			ms.sendQueueError(e2.ConnID)
			return
		}

		if err := ms.Storage.SetUsersChatting([]string{e1.UserID, e2.UserID}, room.RoomID); err != nil {
			logrus.WithFields(logrus.Fields{"roomId": room.RoomID, "err": err}).
				Warn("failed to mark participants as chatting")
		}

		ms.notifyMatch(e1, e2, room)
		ms.notifyMatch(e2, e1, room)

		logrus.WithFields(logrus.Fields{
			"roomId":   room.RoomID,
			"user1":    e1.UserID,
			"user2":    e2.UserID,
			"distance": distance,
		}).Info("matched pair into room")
	}
}

// areFriends checks for an active friendship. A failed lookup counts as
// not-friends so storage trouble degrades pairing quality, not liveness.
func (ms *MatcherService) areFriends(userA, userB string) bool {
	f, err := ms.Storage.FindActiveFriendship(userA, userB)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userA": userA,
			"userB": userB,
			"err":   err,
		}).Warn("friendship lookup failed, treating pair as strangers")
		return false
	}
	return f != nil
}

func (ms *MatcherService) notifyMatch(to, partner QueueEntry, room *models.Room) {
	c, ok := ms.Hub.Clients[to.ConnID]
	if !ok {
		logrus.WithFields(logrus.Fields{
			"roomId": room.RoomID,
			"userId": to.UserID,
		}).Warn("matched user no longer connected")
		return
	}
	greeting := fmt.Sprintf(ms.Hub.Loc.Get(ms.Hub.Lang, "match_success"), partner.Nickname)
	ms.Hub.SendEvent(c, EventMatchSuccess, models.MatchSuccess{
		RoomID:          room.RoomID,
		PartnerNickname: partner.Nickname,
		PartnerUserID:   partner.UserID,
		PartnerDeviceID: partner.DeviceID,
		Distance:        room.Distance,
		Message:         greeting,
	})
}

func (ms *MatcherService) sendQueueError(connID string) {
	if c, ok := ms.Hub.Clients[connID]; ok {
		ms.Hub.SendError(c, "error_queue_join")
	}
}
