package config

import "time"

const (
	// Friend requests
	FriendRequestRetention = 7 * 24 * time.Hour
	CleanupSweepInterval   = 1 * time.Hour

	// WebSocket
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 8192
	SendBufferSize = 256

	// HTTP server
	ReadHeaderTimeout = 10 * time.Second
	WriteTimeout      = 0 // long-lived WebSocket responses
)
