package gateway

import (
	"net/http"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/quizmaster/internal/session"
)

// handleWS pushes the session's events as JSON messages over a WebSocket.
// It carries the same events as handleEvents for clients that prefer a
// socket; messages from the client are ignored.
func (g *Gateway) handleWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ctrl, ok := g.sessionFromRequest(w, r)
		if !ok {
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			g.logger.Error("websocket accept failed", "session_id", id, "error", err)
			return
		}
		defer conn.CloseNow()

		ch := g.broker.Subscribe(id)
		defer g.broker.Unsubscribe(id, ch)

		ctx := conn.CloseRead(r.Context())

		if err := wsjson.Write(ctx, conn, session.Event{Kind: "state", View: ctrl.View()}); err != nil {
			g.logger.Debug("websocket write failed", "session_id", id, "error", err)
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-ch:
				if !ok {
					conn.Close(websocket.StatusNormalClosure, "session closed")
					return
				}
				if err := wsjson.Write(ctx, conn, e); err != nil {
					g.logger.Debug("websocket write failed", "session_id", id, "error", err)
					return
				}
			}
		}
	}
}
