package chathub

import (
	"github.com/sirupsen/logrus"

	"nearchat/backend/internal/models"
	"nearchat/backend/internal/storage"
)

// RelayService persists chat messages and publishes them for fan-out.
// Delivery to local participants happens when the published message
// comes back through the hub's Pub/Sub channel; the sender only gets
// the ack.
type RelayService struct {
	Hub     *ManagerService
	Storage storage.Storage
}

func NewRelayService(hub *ManagerService, s storage.Storage) *RelayService {
	return &RelayService{Hub: hub, Storage: s}
}

// Submit handles one send_message event: verify the room, persist,
// publish, ack.
func (rs *RelayService) Submit(c Client, p SendMessagePayload) {
	room, err := rs.Storage.GetRoomByID(p.RoomID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"roomId": p.RoomID, "err": err}).
			Warn("send_message: room lookup failed")
		rs.Hub.SendError(c, "error_message_send")
		return
	}
	if !room.IsActive || !room.HasParticipant(p.SenderID) {
		logrus.WithFields(logrus.Fields{
			"roomId":   p.RoomID,
			"senderId": p.SenderID,
			"active":   room.IsActive,
		}).Warn("send_message: rejected for inactive room or non-participant")
		rs.Hub.SendError(c, "error_message_send")
		return
	}

	msg := &models.Message{
		RoomID:        p.RoomID,
		SenderID:      p.SenderID,
		Type:          p.Type(),
		Body:          p.Message,
		MediaURL:      p.MediaURL,
		MediaSize:     p.MediaSize,
		MediaDuration: p.MediaDuration,
	}
	if err := rs.Storage.SaveMessage(msg); err != nil {
		logrus.WithFields(logrus.Fields{"roomId": p.RoomID, "err": err}).
			Error("send_message: failed to persist message")
		rs.Hub.SendError(c, "error_message_send")
		return
	}

	payload := models.NewMessagePayload(msg)
	if err := rs.Storage.PublishMessage(p.RoomID, models.RelayedMessage{
		RoomID:  p.RoomID,
		Message: payload,
	}); err != nil {
		logrus.WithFields(logrus.Fields{"roomId": p.RoomID, "err": err}).
			Error("send_message: failed to publish message")
		rs.Hub.SendError(c, "error_message_send")
		return
	}

	rs.Hub.SendEvent(c, EventMessageSent, payload.Ack())
}
