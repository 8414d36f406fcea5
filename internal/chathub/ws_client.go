package chathub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"nearchat/backend/internal/config"
	"nearchat/backend/internal/models"
)

// WebSocketClient implements Client over a gorilla/websocket connection.
type WebSocketClient struct {
	ID       string
	UserID   string
	DeviceID string
	Conn     *websocket.Conn
	Hub      *ManagerService
	Send     chan models.ServerEvent

	closeOnce sync.Once
}

// NewWebSocketClient wraps an upgraded connection with a fresh
// connection handle.
func NewWebSocketClient(hub *ManagerService, conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{
		ID:   uuid.New().String(),
		Conn: conn,
		Hub:  hub,
		Send: make(chan models.ServerEvent, config.SendBufferSize),
	}
}

func (c *WebSocketClient) GetConnID() string   { return c.ID }
func (c *WebSocketClient) GetUserID() string   { return c.UserID }
func (c *WebSocketClient) GetDeviceID() string { return c.DeviceID }

func (c *WebSocketClient) SetIdentity(userID, deviceID string) {
	c.UserID = userID
	c.DeviceID = deviceID
}

func (c *WebSocketClient) GetSendChannel() chan<- models.ServerEvent { return c.Send }

// Run starts the pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close releases the send channel, which stops the write pump.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// readPump decodes inbound envelopes and hands them to the hub. It owns
// the read side of the connection and triggers unregistration on exit.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithFields(logrus.Fields{"conn": c.ID, "err": err}).
					Warn("websocket read failed")
			}
			break
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			logrus.WithFields(logrus.Fields{"conn": c.ID, "err": err}).
				Warn("dropping undecodable frame")
			continue
		}
		if env.Event == "" {
			continue
		}

		c.Hub.InboundCh <- InboundEvent{Client: c, Envelope: env}
	}
}

// writePump drains the send channel into the connection and keeps it
// alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				logrus.WithFields(logrus.Fields{"conn": c.ID, "err": err}).
					Warn("websocket write failed")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
