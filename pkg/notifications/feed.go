package notifications

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// FeedClient represents one live notification subscriber.
type FeedClient struct {
	ProfileID int64
	Conn      *websocket.Conn
	Send      chan interface{} // buffered channel of outbound payloads
	Done      chan struct{}    // closed when the client is dropped
}

// Feed manages the live notification connections, one per profile.
type Feed struct {
	mu      sync.RWMutex
	clients map[int64]*FeedClient
}

func NewFeed() *Feed {
	return &Feed{
		clients: make(map[int64]*FeedClient),
	}
}

// AddClient registers a connection for a profile. An existing connection for
// the same profile is dropped; the newest one wins.
func (f *Feed) AddClient(profileID int64, conn *websocket.Conn) *FeedClient {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.clients[profileID]; ok {
		close(existing.Done)
		existing.Conn.Close()
	}

	client := &FeedClient{
		ProfileID: profileID,
		Conn:      conn,
		Send:      make(chan interface{}, 32),
		Done:      make(chan struct{}),
	}

	f.clients[profileID] = client
	return client
}

// RemoveClient unregisters a profile's connection.
func (f *Feed) RemoveClient(profileID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.clients[profileID]; ok {
		close(client.Done)
		delete(f.clients, profileID)
	}
}

// IsConnected reports whether a profile has a live feed connection.
func (f *Feed) IsConnected(profileID int64) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	_, ok := f.clients[profileID]
	return ok
}

// Push delivers a payload to a profile's feed if it is connected.
func (f *Feed) Push(profileID int64, payload interface{}) error {
	f.mu.RLock()
	client, ok := f.clients[profileID]
	f.mu.RUnlock()

	if !ok {
		return fmt.Errorf("profile %d has no feed connection", profileID)
	}

	select {
	case client.Send <- payload:
		return nil
	case <-client.Done:
		return fmt.Errorf("profile %d disconnected", profileID)
	default:
		return fmt.Errorf("profile %d feed queue full", profileID)
	}
}
