// Package handler exposes the HTTP surface: the WebSocket upgrade, the
// room status query and the health probe.
package handler

import (
	"nearchat/backend/internal/chathub"
	"nearchat/backend/internal/storage"
)

type Handler struct {
	Hub     *chathub.ManagerService
	Storage storage.Storage
}

func NewHandler(hub *chathub.ManagerService, s storage.Storage) *Handler {
	return &Handler{Hub: hub, Storage: s}
}
