package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ripple-dev/ripple/pkg/ripple"
)

// watchMessage is one frame pushed to a watch connection.
type watchMessage struct {
	// Type is "snapshot" for the initial frame, "change" afterwards.
	Type string `json:"type"`

	Store string       `json:"store"`
	State ripple.State `json:"state"`
	Prev  ripple.State `json:"prev,omitempty"`
}

// handleWatch upgrades to a WebSocket and streams the store's changes.
//
// The connection is an ordinary subscriber: it receives the current snapshot
// on connect, then one frame per non-silent transition. Pushes go through a
// buffered channel drained by a writer goroutine, so fan-out inside the
// propagation path never blocks on the network; a watcher that falls behind
// its buffer is dropped.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	st, ok := s.registry.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, ripple.ErrStoreNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("watch upgrade failed", "store", name, "error", err)
		return
	}

	clientID := uuid.New()
	logger := s.logger.With("store", name, "client", clientID.String())
	logger.Info("watch connected")

	send := make(chan watchMessage, s.config.WatchBuffer)
	done := make(chan struct{})
	var closeOnce sync.Once
	closeDone := func() { closeOnce.Do(func() { close(done) }) }

	// Initial snapshot before any change frames.
	send <- watchMessage{Type: "snapshot", Store: name, State: st.Get()}

	unsubscribe := st.Subscribe(func(next, prev ripple.State) {
		select {
		case send <- watchMessage{Type: "change", Store: name, State: next, Prev: prev}:
		default:
			// Buffer full: drop the watcher, not the propagation.
			logger.Warn("watch client too slow, dropping")
			closeDone()
		}
	})

	// Writer pump.
	go func() {
		defer conn.Close()
		defer unsubscribe()

		for {
			select {
			case msg := <-send:
				conn.SetWriteDeadline(time.Now().Add(s.config.WatchWriteTimeout))
				if err := conn.WriteJSON(msg); err != nil {
					logger.Debug("watch write failed", "error", err)
					return
				}
			case <-done:
				return
			}
		}
	}()

	// Read loop detects client close; watch is push-only, incoming
	// messages are discarded.
	go func() {
		defer closeDone()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Info("watch disconnected")
				return
			}
		}
	}()
}
