package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/quizmaster/internal/session"
)

func TestHandleWS(t *testing.T) {
	h, _ := setupGateway(t)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	sess := startSession(t, h, seedDefault(t, h).ID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + srv.URL[len("http"):] + "/api/sessions/" + sess.ID + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	var ev session.Event
	if err := wsjson.Read(ctx, conn, &ev); err != nil {
		t.Fatalf("read state: %v", err)
	}
	if ev.Kind != "state" || ev.View.State != session.AwaitingAnswer {
		t.Fatalf("first message = %+v", ev)
	}

	if rec := do(t, h, http.MethodPost, "/api/sessions/"+sess.ID+"/answer", `{"answer_index":0}`); rec.Code != http.StatusOK {
		t.Fatalf("answer: expected 200, got %d", rec.Code)
	}
	if err := wsjson.Read(ctx, conn, &ev); err != nil {
		t.Fatalf("read answered: %v", err)
	}
	if ev.Kind != session.EventAnswered || ev.View.Feedback == nil || ev.View.Feedback.IsCorrect {
		t.Errorf("answered message = %+v", ev)
	}

	if rec := do(t, h, http.MethodDelete, "/api/sessions/"+sess.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	_, _, err = conn.Read(ctx)
	var closeErr websocket.CloseError
	if !errors.As(err, &closeErr) || closeErr.Code != websocket.StatusNormalClosure {
		t.Errorf("expected normal closure after delete, got %v", err)
	}
}
