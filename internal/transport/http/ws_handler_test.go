package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ndsl6211/chatroom-server/internal/proto"
)

func TestWebSocketRejectsWithoutSession(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	wsURL := "ws" + ts.URL[len("http"):] + "/websocket"
	_, resp, err := websocket.Dial(ctx, wsURL, nil)
	if err == nil {
		t.Fatalf("expected dial to fail without a session")
	}
	if resp == nil || resp.StatusCode != 401 {
		t.Fatalf("expected 401 upgrade rejection, got %+v", resp)
	}
}

func TestChatScenario(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	aliceConn := dialChat(ctx, t, ts, loginSession(t, ts, "alice", "alice123"))
	bobConn := dialChat(ctx, t, ts, loginSession(t, ts, "bob", "bob123"))

	waitUserList(ctx, t, aliceConn, "alice", "bob")
	waitUserList(ctx, t, bobConn, "alice", "bob")

	sendEvent(ctx, t, aliceConn, proto.InboundTypeMessage, proto.MessageData{
		From:      "alice",
		To:        "bob",
		Content:   "hi",
		Timestamp: 1,
	})

	for name, conn := range map[string]*websocket.Conn{"alice": aliceConn, "bob": bobConn} {
		env := readEnvelope(ctx, t, conn)
		if env.EventType != proto.OutboundTypeMessage {
			t.Fatalf("%s: unexpected event type %q", name, env.EventType)
		}
		var data proto.MessagesData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("%s: unmarshal messages: %v", name, err)
		}
		if len(data.Messages) != 1 || data.Messages[0].Content != "hi" || data.Messages[0].Timestamp != 1 {
			t.Fatalf("%s: unexpected messages %+v", name, data.Messages)
		}
	}

	sendEvent(ctx, t, aliceConn, proto.InboundTypeHistory, proto.HistoryData{
		Me:         "alice",
		TargetUser: "bob",
	})

	env := readEnvelope(ctx, t, aliceConn)
	if env.EventType != proto.OutboundTypeHistory {
		t.Fatalf("unexpected event type %q", env.EventType)
	}
	var hist proto.MessagesData
	if err := json.Unmarshal(env.Data, &hist); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(hist.Messages) != 1 || hist.Messages[0].Content != "hi" {
		t.Fatalf("unexpected history %+v", hist.Messages)
	}
}

func TestOfflineRecipientStillEchoesAndLogs(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	aliceConn := dialChat(ctx, t, ts, loginSession(t, ts, "alice", "alice123"))
	waitUserList(ctx, t, aliceConn, "alice")

	sendEvent(ctx, t, aliceConn, proto.InboundTypeMessage, proto.MessageData{
		From:      "alice",
		To:        "bob",
		Content:   "anyone there?",
		Timestamp: 7,
	})

	env := readEnvelope(ctx, t, aliceConn)
	if env.EventType != proto.OutboundTypeMessage {
		t.Fatalf("unexpected event type %q", env.EventType)
	}

	// The dropped live delivery still left the message in history.
	sendEvent(ctx, t, aliceConn, proto.InboundTypeHistory, proto.HistoryData{
		Me:         "alice",
		TargetUser: "bob",
	})
	env = readEnvelope(ctx, t, aliceConn)
	var hist proto.MessagesData
	if err := json.Unmarshal(env.Data, &hist); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(hist.Messages) != 1 || hist.Messages[0].Content != "anyone there?" {
		t.Fatalf("unexpected history %+v", hist.Messages)
	}
}

func TestUnknownEventKeepsConnectionOpen(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	aliceConn := dialChat(ctx, t, ts, loginSession(t, ts, "alice", "alice123"))
	waitUserList(ctx, t, aliceConn, "alice")

	if err := wsjson.Write(ctx, aliceConn, proto.Inbound{EventType: "bogus"}); err != nil {
		t.Fatalf("write bogus event: %v", err)
	}

	// Malformed payloads are dropped the same way.
	sendEvent(ctx, t, aliceConn, proto.InboundTypeMessage, proto.MessageData{From: "alice"})

	// The connection still serves subsequent events.
	sendEvent(ctx, t, aliceConn, proto.InboundTypeHistory, proto.HistoryData{
		Me:         "alice",
		TargetUser: "bob",
	})
	env := readEnvelope(ctx, t, aliceConn)
	if env.EventType != proto.OutboundTypeHistory {
		t.Fatalf("unexpected event type %q", env.EventType)
	}
	var hist proto.MessagesData
	if err := json.Unmarshal(env.Data, &hist); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(hist.Messages) != 0 {
		t.Fatalf("expected empty history, got %+v", hist.Messages)
	}
}

func TestDisconnectBroadcastsUpdatedUserList(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	aliceConn := dialChat(ctx, t, ts, loginSession(t, ts, "alice", "alice123"))
	bobConn := dialChat(ctx, t, ts, loginSession(t, ts, "bob", "bob123"))

	waitUserList(ctx, t, aliceConn, "alice", "bob")
	waitUserList(ctx, t, bobConn, "alice", "bob")

	_ = bobConn.Close(websocket.StatusNormalClosure, "bye")

	waitUserList(ctx, t, aliceConn, "alice")
}

func sendEvent(ctx context.Context, t *testing.T, conn *websocket.Conn, eventType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s payload: %v", eventType, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{EventType: eventType, Data: payload}); err != nil {
		t.Fatalf("write %s event: %v", eventType, err)
	}
}
