package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"

	"github.com/quocvuong92/remote-hub/internal/logging"
	"github.com/quocvuong92/remote-hub/internal/terminal"
)

// Client frame types
const (
	FrameSubmit   = "submit"
	FrameInput    = "input"
	FramePrevious = "previous"
	FrameNext     = "next"
)

// ClientFrame is one message received from a websocket client.
type ClientFrame struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

const wsReadLimit = 64 * 1024

// handleTerminalWS drives the shared terminal over a websocket. Every
// operation is answered by a snapshot pushed to all connected clients. File
// record changes are pushed as they happen.
func (s *Server) handleTerminalWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Error("failed to accept websocket", err)
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(wsReadLimit)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Joining under the session lock puts the initial snapshot ahead of any
	// broadcast from a later operation
	var c *client
	s.session.View(func(snap terminal.Snapshot) {
		c = s.hub.add(cancel)
		s.hub.sendTo(c, ServerFrame{Type: FrameSnapshot, Snapshot: &snap})
	})
	defer s.hub.remove(c.id)

	go s.writeFrames(ctx, cancel, conn, c)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && ctx.Err() == nil {
				s.log.Debug("websocket read ended", logging.Fields{"client": c.id, "error": err.Error()})
			}
			break
		}

		var frame ClientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.hub.sendTo(c, ServerFrame{Type: FrameError, Error: "invalid frame"})
			continue
		}

		if !s.applyFrame(frame) {
			s.hub.sendTo(c, ServerFrame{Type: FrameError, Error: "unknown frame type: " + frame.Type})
		}
	}

	conn.Close(websocket.StatusNormalClosure, "")
}

// applyFrame runs the terminal operation named by f. The session observer
// broadcasts the result.
func (s *Server) applyFrame(f ClientFrame) bool {
	switch f.Type {
	case FrameSubmit:
		s.session.Submit(f.Text)
	case FrameInput:
		s.session.SetInput(f.Text)
	case FramePrevious:
		s.session.Previous()
	case FrameNext:
		s.session.Next()
	default:
		return false
	}
	return true
}

func (s *Server) writeFrames(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, c *client) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-c.send:
			data, err := json.Marshal(f)
			if err != nil {
				s.log.Error("failed to encode frame", err)
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		}
	}
}
