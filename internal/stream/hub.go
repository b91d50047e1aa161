package stream

import (
	"sync"
	"time"

	"skillswap/pkg/logger"
)

// Hub tracks the open conversation streams. A member may hold several
// streams at once, one per peer they are chatting with.
type Hub struct {
	// Streams keyed by member ID
	clients map[string]map[*Client]bool

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	stats *HubStats

	mu sync.RWMutex
}

// HubStats contains hub statistics
type HubStats struct {
	TotalStreams  int       `json:"total_streams"`
	OnlineMembers int       `json:"online_members"`
	LastUpdated   time.Time `json:"last_updated"`
	mu            sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		stats: &HubStats{
			LastUpdated: time.Now(),
		},
	}
}

// Run handles client registration and unregistration until the
// process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.MemberID] == nil {
		h.clients[client.MemberID] = make(map[*Client]bool)
	}
	h.clients[client.MemberID][client] = true

	h.updateStats()

	logger.WithFields(map[string]interface{}{
		"member_id":     client.MemberID,
		"peer_id":       client.PeerID,
		"total_streams": h.totalStreams(),
	}).Info("Stream registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	streams, ok := h.clients[client.MemberID]
	if !ok {
		return
	}
	if _, ok := streams[client]; !ok {
		return
	}

	delete(streams, client)
	if len(streams) == 0 {
		delete(h.clients, client.MemberID)
	}
	client.closeSend()

	h.updateStats()

	logger.WithFields(map[string]interface{}{
		"member_id":     client.MemberID,
		"peer_id":       client.PeerID,
		"total_streams": h.totalStreams(),
	}).Info("Stream unregistered")
}

// KickPeer asks the peer's stream for this conversation, if open, to
// refetch immediately.
func (h *Hub) KickPeer(peerID, withMemberID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[peerID] {
		if client.PeerID == withMemberID {
			client.poller.Kick()
		}
	}
}

// IsOnline reports whether the member has any stream open.
func (h *Hub) IsOnline(memberID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[memberID]) > 0
}

// GetStats returns a copy of the current hub statistics.
func (h *Hub) GetStats() HubStats {
	h.stats.mu.RLock()
	defer h.stats.mu.RUnlock()

	return HubStats{
		TotalStreams:  h.stats.TotalStreams,
		OnlineMembers: h.stats.OnlineMembers,
		LastUpdated:   h.stats.LastUpdated,
	}
}

// callers hold h.mu
func (h *Hub) totalStreams() int {
	total := 0
	for _, streams := range h.clients {
		total += len(streams)
	}
	return total
}

func (h *Hub) updateStats() {
	h.stats.mu.Lock()
	defer h.stats.mu.Unlock()

	h.stats.TotalStreams = h.totalStreams()
	h.stats.OnlineMembers = len(h.clients)
	h.stats.LastUpdated = time.Now()
}
