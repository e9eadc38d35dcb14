package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/playperu/quizmaster/internal/httpserver"
	"github.com/playperu/quizmaster/internal/session"
)

const sseKeepAlive = 30 * time.Second

func writeEvent(w http.ResponseWriter, e session.Event) error {
	data, err := json.Marshal(e.View)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Kind, data)
	return err
}

// handleEvents streams the session's transitions. The current view is
// sent first as a "state" event.
func (g *Gateway) handleEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ctrl, ok := g.sessionFromRequest(w, r)
		if !ok {
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			httpserver.WriteError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		ch := g.broker.Subscribe(id)
		defer g.broker.Unsubscribe(id, ch)

		if err := writeEvent(w, session.Event{Kind: "state", View: ctrl.View()}); err != nil {
			return
		}
		flusher.Flush()

		ping := time.NewTicker(sseKeepAlive)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case e, ok := <-ch:
				if !ok {
					fmt.Fprintf(w, "event: closed\ndata: {}\n\n")
					flusher.Flush()
					return
				}
				if err := writeEvent(w, e); err != nil {
					g.logger.Error("writing event", "session_id", id, "error", err)
					return
				}
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
