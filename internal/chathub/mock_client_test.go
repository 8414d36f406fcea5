package chathub

import "nearchat/backend/internal/models"

// MockClient is an in-memory Client whose send channel can be drained
// by the test.
type MockClient struct {
	ConnID   string
	UserID   string
	DeviceID string
	Send     chan models.ServerEvent
	Started  bool
	Stopped  bool
}

func NewMockClient(connID string) *MockClient {
	return &MockClient{
		ConnID: connID,
		Send:   make(chan models.ServerEvent, 10),
	}
}

func (c *MockClient) GetConnID() string   { return c.ConnID }
func (c *MockClient) GetUserID() string   { return c.UserID }
func (c *MockClient) GetDeviceID() string { return c.DeviceID }

func (c *MockClient) SetIdentity(userID, deviceID string) {
	c.UserID = userID
	c.DeviceID = deviceID
}

func (c *MockClient) GetSendChannel() chan<- models.ServerEvent { return c.Send }

func (c *MockClient) Run()   { c.Started = true }
func (c *MockClient) Close() { c.Stopped = true }

// NextEvent pops one buffered event, or ok=false when nothing was sent.
func (c *MockClient) NextEvent() (models.ServerEvent, bool) {
	select {
	case ev := <-c.Send:
		return ev, true
	default:
		return models.ServerEvent{}, false
	}
}
