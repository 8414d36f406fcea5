package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"nearchat/backend/internal/models"
)

// RoomStatus answers GET /rooms/:roomId/status?userId=. A missing room
// and a requester who is not a participant both get the same bare
// inactive response, so probing cannot reveal whether a room exists.
func (h *Handler) RoomStatus(c *gin.Context) {
	roomID := c.Param("roomId")
	userID := c.Query("userId")

	inactive := gin.H{"success": true, "data": models.RoomStatus{IsActive: false}}

	room, err := h.Storage.GetRoomByID(roomID)
	if err != nil {
		c.JSON(http.StatusOK, inactive)
		return
	}
	if userID == "" || !room.HasParticipant(userID) {
		c.JSON(http.StatusOK, inactive)
		return
	}

	status := models.RoomStatus{
		IsActive:     room.IsActive,
		Participants: room.UserIDs,
		Distance:     room.Distance,
		CreatedAt:    &room.CreatedAt,
	}

	partnerID := room.PartnerID(userID)
	if partner, err := h.Storage.GetUserByID(partnerID); err == nil {
		status.Partner = &models.PartnerSnapshot{
			UserID:   partner.UserID,
			Nickname: partner.Nickname,
			IsOnline: partner.IsOnline,
		}
	} else {
		logrus.WithFields(logrus.Fields{"roomId": roomID, "partnerId": partnerID, "err": err}).
			Warn("room status: partner lookup failed")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": status})
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
