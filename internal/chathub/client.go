package chathub

import "nearchat/backend/internal/models"

// Client is the interface for one live connection. It abstracts the
// underlying transport so the hub can manage connections uniformly.
type Client interface {
	// GetConnID returns the unique handle of this connection.
	GetConnID() string
	// GetUserID returns the bound identity, or "" before user_online.
	GetUserID() string
	// GetDeviceID returns the bound device, or "" before user_online.
	GetDeviceID() string
	// SetIdentity binds the connection to an identity after lookup.
	SetIdentity(userID, deviceID string)

	// GetSendChannel returns the channel the hub pushes outbound events
	// into. It is send-only for callers.
	GetSendChannel() chan<- models.ServerEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts the client down and releases its send channel.
	Close()
}
