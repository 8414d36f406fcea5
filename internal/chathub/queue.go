package chathub

import (
	"sync"
	"time"
)

// QueueEntry is a waiting user's matchable state.
type QueueEntry struct {
	UserID       string
	DeviceID     string
	ConnID       string
	Nickname     string
	Lat          float64
	Lng          float64
	AvoidFriends bool
	EnqueuedAt   time.Time
}

// MatchQueue is the ordered waiting list of users seeking a partner.
// FIFO among distinct identities, at most one live entry per identity.
// All operations are atomic; PopPair is the pairing synchronization
// point: entries leave the queue in the same critical section that
// decides to pair them.
type MatchQueue struct {
	mu      sync.Mutex
	entries []QueueEntry
}

func NewMatchQueue() *MatchQueue {
	return &MatchQueue{}
}

// Enqueue removes any pre-existing entry for the same identity, device
// or connection, then appends at the tail. Repeated joins by the same
// identity therefore keep exactly one entry.
func (q *MatchQueue) Enqueue(e QueueEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.purgeLocked(e.UserID, e.DeviceID, e.ConnID)
	q.entries = append(q.entries, e)
}

// PushFront reinserts an entry at the head. Used to give priority back
// to entries popped by a pairing attempt that could not complete.
func (q *MatchQueue) PushFront(e QueueEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append([]QueueEntry{e}, q.entries...)
}

// PushBack reinserts an entry at the tail without deduplication.
func (q *MatchQueue) PushBack(e QueueEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, e)
}

// PopPair atomically removes and returns the two longest-waiting
// entries. Returns ok=false, leaving the queue untouched, when fewer
// than two entries are queued.
func (q *MatchQueue) PopPair() (first, second QueueEntry, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) < 2 {
		return QueueEntry{}, QueueEntry{}, false
	}
	first, second = q.entries[0], q.entries[1]
	q.entries = q.entries[2:]
	return first, second, true
}

// Leave removes the entry queued for deviceID, reporting whether one
// was found.
func (q *MatchQueue) Leave(deviceID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.entries {
		if e.DeviceID == deviceID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveByConn evicts the entry bound to a connection handle, reporting
// whether one was found.
func (q *MatchQueue) RemoveByConn(connID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.entries {
		if e.ConnID == connID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Purge drops every entry matching the identity, device or connection.
// Returns the number of removed entries. Called on reconnect so a stale
// entry from the previous connection cannot linger.
func (q *MatchQueue) Purge(userID, deviceID, connID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.purgeLocked(userID, deviceID, connID)
}

func (q *MatchQueue) purgeLocked(userID, deviceID, connID string) int {
	removed := 0
	kept := q.entries[:0]
	for _, e := range q.entries {
		if (userID != "" && e.UserID == userID) ||
			(deviceID != "" && e.DeviceID == deviceID) ||
			(connID != "" && e.ConnID == connID) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	q.entries = kept
	return removed
}

// Len returns the number of waiting entries.
func (q *MatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Contains reports whether the identity is currently queued.
func (q *MatchQueue) Contains(userID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.entries {
		if e.UserID == userID {
			return true
		}
	}
	return false
}
