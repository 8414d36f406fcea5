package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"nearchat/backend/internal/chathub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The mobile clients connect from app webviews with no stable origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and hands the connection to the hub. The
// connection stays anonymous until the client sends user_online.
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithField("err", err).Warn("websocket upgrade failed")
		return
	}

	client := chathub.NewWebSocketClient(h.Hub, conn)
	h.Hub.RegisterCh <- client
	client.Run()
}
