package server

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quocvuong92/remote-hub/internal/files"
	"github.com/quocvuong92/remote-hub/internal/logging"
	"github.com/quocvuong92/remote-hub/internal/terminal"
)

// Frame types sent to websocket clients
const (
	FrameSnapshot = "snapshot"
	FrameFile     = "file"
	FrameError    = "error"
)

// ServerFrame is one message pushed to websocket clients.
type ServerFrame struct {
	Type     string             `json:"type"`
	Snapshot *terminal.Snapshot `json:"snapshot,omitempty"`
	File     *files.Record      `json:"file,omitempty"`
	Error    string             `json:"error,omitempty"`
}

const clientBuffer = 32

type client struct {
	id     string
	send   chan ServerFrame
	cancel context.CancelFunc
}

// hub fans frames out to every connected websocket client.
type hub struct {
	mu      sync.Mutex
	clients map[string]*client
	log     *logging.FieldLogger
}

func newHub(logger *logging.Logger) *hub {
	return &hub{
		clients: make(map[string]*client),
		log:     logger.WithFields(logging.Fields{"component": "hub"}),
	}
}

func (h *hub) add(cancel context.CancelFunc) *client {
	c := &client{
		id:     uuid.New().String(),
		send:   make(chan ServerFrame, clientBuffer),
		cancel: cancel,
	}
	h.mu.Lock()
	h.clients[c.id] = c
	n := len(h.clients)
	h.mu.Unlock()

	h.log.Debug("client connected", logging.Fields{"client": c.id, "clients": n})
	return c
}

func (h *hub) remove(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
	h.log.Debug("client disconnected", logging.Fields{"client": id})
}

// broadcast queues f for every client. Slow clients miss frames rather than
// block the sender.
func (h *hub) broadcast(f ServerFrame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- f:
		default:
			h.log.Warn("dropping frame for slow client", logging.Fields{"client": c.id, "type": f.Type})
		}
	}
}

// sendTo queues f for a single client.
func (h *hub) sendTo(c *client, f ServerFrame) {
	select {
	case c.send <- f:
	default:
		h.log.Warn("dropping frame for slow client", logging.Fields{"client": c.id, "type": f.Type})
	}
}

// closeAll ends every client connection.
func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		c.cancel()
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
