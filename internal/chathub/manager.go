package chathub

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"nearchat/backend/internal/localization"
	"nearchat/backend/internal/models"
	"nearchat/backend/internal/storage"
)

// validatable is implemented by every inbound payload.
type validatable interface {
	Validate() error
}

// ManagerService is the connection registry and event dispatcher. Its
// run loop is the only goroutine that touches the client maps and the
// handler services, so inbound events are handled one at a time.
type ManagerService struct {
	// Clients indexes live connections by connection ID.
	Clients map[string]Client
	// Users indexes connections by bound identity (after user_online).
	Users map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	InboundCh    chan InboundEvent
	PubSubCh     chan models.RelayedMessage

	Storage storage.Storage
	Queue   *MatchQueue

	Matcher   *MatcherService
	Relay     *RelayService
	Handshake *HandshakeService

	Loc  *localization.Localizer
	Lang string
}

// NewManagerService wires the hub and its handler services around one
// storage backend.
func NewManagerService(s storage.Storage) *ManagerService {
	m := &ManagerService{
		Clients:      make(map[string]Client),
		Users:        make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		InboundCh:    make(chan InboundEvent),
		PubSubCh:     make(chan models.RelayedMessage),
		Storage:      s,
		Queue:        NewMatchQueue(),
		Loc:          localization.NewDefault(),
		Lang:         "en",
	}
	m.Matcher = NewMatcherService(m, s)
	m.Relay = NewRelayService(m, s)
	m.Handshake = NewHandshakeService(m, s)
	return m
}

// SetLocale replaces the default localizer.
func (m *ManagerService) SetLocale(loc *localization.Localizer, lang string) {
	m.Loc = loc
	m.Lang = lang
}

// Run is the hub's main loop. It serializes registration, inbound
// events and Pub/Sub deliveries.
func (m *ManagerService) Run() {
	logrus.Info("chat hub started")

	for {
		select {
		case c := <-m.RegisterCh:
			m.Clients[c.GetConnID()] = c
			logrus.WithField("conn", c.GetConnID()).Debug("connection registered")

		case c := <-m.UnregisterCh:
			m.handleDisconnect(c)

		case ev := <-m.InboundCh:
			m.dispatch(ev)

		case relayed := <-m.PubSubCh:
			m.deliverMessage(relayed)
		}
	}
}

// dispatch decodes and routes one inbound event. A handler failure is
// converted into an error event for the origin connection; it never
// takes the loop down.
func (m *ManagerService) dispatch(ev InboundEvent) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"event": ev.Envelope.Event,
				"conn":  ev.Client.GetConnID(),
				"panic": r,
			}).Error("event handler panicked")
			m.SendError(ev.Client, "error_unknown_event")
		}
	}()

	c := ev.Client
	switch ev.Envelope.Event {
	case EventUserOnline:
		var p UserOnlinePayload
		if m.decode(c, ev.Envelope.Data, &p) {
			m.handleUserOnline(c, p)
		}
	case EventJoinQueue:
		var p JoinQueuePayload
		if m.decode(c, ev.Envelope.Data, &p) {
			m.Matcher.HandleJoin(c, p)
		}
	case EventLeaveQueue:
		var p LeaveQueuePayload
		if m.decode(c, ev.Envelope.Data, &p) {
			m.handleLeaveQueue(c, p)
		}
	case EventSendMessage:
		var p SendMessagePayload
		if m.decode(c, ev.Envelope.Data, &p) {
			m.Relay.Submit(c, p)
		}
	case EventLeaveRoom:
		var p LeaveRoomPayload
		if m.decode(c, ev.Envelope.Data, &p) {
			m.handleLeaveRoom(c, p)
		}
	case EventSendFriendRequest:
		var p SendFriendRequestPayload
		if m.decode(c, ev.Envelope.Data, &p) {
			m.Handshake.Send(c, p)
		}
	case EventAcceptFriendRequest:
		var p AcceptFriendRequestPayload
		if m.decode(c, ev.Envelope.Data, &p) {
			m.Handshake.Accept(c, p)
		}
	case EventDeclineFriendRequest:
		var p DeclineFriendRequestPayload
		if m.decode(c, ev.Envelope.Data, &p) {
			m.Handshake.Decline(c, p)
		}
	default:
		logrus.WithFields(logrus.Fields{
			"event": ev.Envelope.Event,
			"conn":  c.GetConnID(),
		}).Warn("unknown inbound event")
		m.SendError(c, "error_unknown_event")
	}
}

// decode unmarshals and validates a payload, emitting an error event on
// failure.
func (m *ManagerService) decode(c Client, data json.RawMessage, p validatable) bool {
	if err := json.Unmarshal(data, p); err != nil {
		logrus.WithFields(logrus.Fields{"conn": c.GetConnID(), "err": err}).
			Warn("malformed event payload")
		m.SendError(c, "error_invalid_payload")
		return false
	}
	if err := p.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{"conn": c.GetConnID(), "err": err}).
			Warn("invalid event payload")
		m.SendError(c, "error_invalid_payload")
		return false
	}
	return true
}

// handleUserOnline binds the connection to a stored identity, marks it
// online and sweeps stale queue entries left by a previous connection.
func (m *ManagerService) handleUserOnline(c Client, p UserOnlinePayload) {
	user, err := m.Storage.FindUserByDeviceOrID(p.DeviceID, p.UserID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"deviceId": p.DeviceID,
			"userId":   p.UserID,
			"err":      err,
		}).Warn("user_online: identity lookup failed")
		m.SendError(c, "error_user_not_found")
		return
	}

	if err := m.Storage.BindConnection(user.UserID, c.GetConnID()); err != nil {
		logrus.WithFields(logrus.Fields{"userId": user.UserID, "err": err}).
			Error("user_online: failed to bind connection")
		return
	}

	c.SetIdentity(user.UserID, user.DeviceID)
	m.Users[user.UserID] = c

	if purged := m.Queue.Purge(user.UserID, user.DeviceID, c.GetConnID()); purged > 0 {
		logrus.WithFields(logrus.Fields{
			"userId": user.UserID,
			"purged": purged,
		}).Info("removed stale queue entries on reconnect")
	}

	logrus.WithFields(logrus.Fields{
		"userId":   user.UserID,
		"nickname": user.Nickname,
		"conn":     c.GetConnID(),
	}).Info("user online")
}

// handleDisconnect is the implicit cleanup path: offline flag, idle
// status, queue eviction. Absence of a bound identity is a no-op.
func (m *ManagerService) handleDisconnect(c Client) {
	delete(m.Clients, c.GetConnID())
	if uid := c.GetUserID(); uid != "" && m.Users[uid] == c {
		delete(m.Users, uid)
	}

	user, err := m.Storage.ClearConnection(c.GetConnID())
	if err != nil {
		logrus.WithFields(logrus.Fields{"conn": c.GetConnID(), "err": err}).
			Error("disconnect: failed to clear connection state")
	}

	m.Queue.RemoveByConn(c.GetConnID())
	c.Close()

	fields := logrus.Fields{"conn": c.GetConnID()}
	if user != nil {
		fields["userId"] = user.UserID
	}
	logrus.WithFields(fields).Info("connection closed")
}

func (m *ManagerService) handleLeaveQueue(c Client, p LeaveQueuePayload) {
	removed := m.Queue.Leave(p.DeviceID)
	logrus.WithFields(logrus.Fields{
		"deviceId": p.DeviceID,
		"removed":  removed,
		"waiting":  m.Queue.Len(),
	}).Info("leave_queue")
}

// handleLeaveRoom closes the session: room inactive, both participants
// idle, counterpart notified when still online.
func (m *ManagerService) handleLeaveRoom(c Client, p LeaveRoomPayload) {
	room, err := m.Storage.GetRoomByID(p.RoomID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"roomId": p.RoomID, "err": err}).
			Warn("leave_room: room lookup failed")
		return
	}

	if err := m.Storage.CloseRoom(room.RoomID); err != nil {
		logrus.WithFields(logrus.Fields{"roomId": room.RoomID, "err": err}).
			Error("leave_room: failed to close room")
		m.SendError(c, "error_room_leave")
		return
	}

	if err := m.Storage.ResetUsersToIdle(room.UserIDs); err != nil {
		logrus.WithFields(logrus.Fields{"roomId": room.RoomID, "err": err}).
			Error("leave_room: failed to reset participants")
	}

	leaver, err := m.Storage.FindUserByDeviceOrID(p.DeviceID, p.DeviceID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"deviceId": p.DeviceID, "err": err}).
			Warn("leave_room: leaving user not found, skipping partner notice")
		return
	}

	partnerID := room.PartnerID(leaver.UserID)
	if pc, ok := m.Users[partnerID]; ok {
		m.SendEvent(pc, EventRoomClosed, models.RoomClosed{
			Message: m.Loc.Get(m.Lang, "room_closed"),
		})
	}

	logrus.WithFields(logrus.Fields{
		"roomId":  room.RoomID,
		"leaver":  leaver.UserID,
		"partner": partnerID,
	}).Info("room closed")
}

// deliverMessage fans a relayed message out to the room's local
// participants, skipping the sender; the sender only ever receives its
// ack. Offline participants are skipped silently.
func (m *ManagerService) deliverMessage(relayed models.RelayedMessage) {
	room, err := m.Storage.GetRoomByID(relayed.RoomID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"roomId": relayed.RoomID, "err": err}).
			Warn("relay: room lookup failed, dropping delivery")
		return
	}

	for _, uid := range room.UserIDs {
		if uid == relayed.Message.SenderID {
			continue
		}
		recipient, ok := m.Users[uid]
		if !ok {
			logrus.WithFields(logrus.Fields{"roomId": room.RoomID, "userId": uid}).
				Debug("relay: participant offline, skipping")
			continue
		}
		m.SendEvent(recipient, EventReceiveMessage, relayed.Message)
	}
}

// ClientByUser returns the live connection bound to an identity.
func (m *ManagerService) ClientByUser(userID string) (Client, bool) {
	c, ok := m.Users[userID]
	return c, ok
}

// SendEvent pushes an outbound event without blocking the hub loop. A
// full send buffer drops the event for that client.
func (m *ManagerService) SendEvent(c Client, event string, data any) {
	select {
	case c.GetSendChannel() <- models.ServerEvent{Event: event, Data: data}:
	default:
		logrus.WithFields(logrus.Fields{
			"conn":  c.GetConnID(),
			"event": event,
		}).Warn("send buffer full, dropping event")
	}
}

// SendError emits the localized error event for a message key.
func (m *ManagerService) SendError(c Client, key string) {
	m.SendEvent(c, EventError, models.ErrorPayload{Message: m.Loc.Get(m.Lang, key)})
}
