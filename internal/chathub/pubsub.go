package chathub

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"nearchat/backend/internal/models"
)

// StartPubSubListener subscribes to the room channels and feeds relayed
// messages into the hub loop. Messages published by any hub instance
// reach the local clients this way, including the instance that
// persisted them.
func (m *ManagerService) StartPubSubListener() {
	go func() {
		pubsub := m.Storage.SubscribeToRooms()
		if pubsub == nil {
			logrus.Warn("pub/sub unavailable, message relay disabled")
			return
		}
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var relayed models.RelayedMessage
			if err := json.Unmarshal([]byte(msg.Payload), &relayed); err != nil {
				logrus.WithField("err", err).Warn("dropping undecodable pub/sub message")
				continue
			}
			m.PubSubCh <- relayed
		}
	}()
}
