package http

import (
	"context"
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/ndsl6211/chatroom-server/internal/auth"
	"github.com/ndsl6211/chatroom-server/internal/config"
	"github.com/ndsl6211/chatroom-server/internal/core"
)

// outboundEnvelope mirrors the wire envelope for test-side decoding.
type outboundEnvelope struct {
	EventType string          `json:"eventType"`
	Data      json.RawMessage `json:"data"`
}

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()
	creds := []auth.Credential{
		{Username: "alice", Password: "alice123"},
		{Username: "bob", Password: "bob123"},
	}
	authService := auth.NewService(creds, &auth.JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      time.Hour,
	})

	hub := core.NewHub(core.NewMessageStore(), 50*time.Millisecond, &logger)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	cfg := config.Default()
	cfg.Addr = ":0"

	server := NewServer(hub, authService, cfg, &logger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func loginSession(t *testing.T, ts *httptest.Server, username, password string) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	resp, err := ts.Client().Post(ts.URL+"/auth/login", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			return c.Value
		}
	}
	t.Fatalf("login response missing %s cookie", SessionCookie)
	return ""
}

func dialChat(ctx context.Context, t *testing.T, ts *httptest.Server, session string) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/websocket"
	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: stdhttp.Header{"Cookie": []string{SessionCookie + "=" + session}},
	})
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close(websocket.StatusNormalClosure, "done")
	})
	return conn
}

func readEnvelope(ctx context.Context, t *testing.T, conn *websocket.Conn) outboundEnvelope {
	t.Helper()

	var env outboundEnvelope
	if err := wsjson.Read(ctx, conn, &env); err != nil {
		t.Fatalf("read envelope: %v", err)
	}
	return env
}

// waitUserList reads envelopes until an updateUserList matches the
// wanted set of usernames. Presence order is not contractual.
func waitUserList(ctx context.Context, t *testing.T, conn *websocket.Conn, want ...string) {
	t.Helper()

	for i := 0; i < 10; i++ {
		env := readEnvelope(ctx, t, conn)
		if env.EventType != "updateUserList" {
			continue
		}
		var data struct {
			UserList []string `json:"userList"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("unmarshal user list: %v", err)
		}
		if len(data.UserList) != len(want) {
			continue
		}
		seen := map[string]bool{}
		for _, u := range data.UserList {
			seen[u] = true
		}
		matched := true
		for _, u := range want {
			if !seen[u] {
				matched = false
				break
			}
		}
		if matched {
			return
		}
	}
	t.Fatalf("never received user list %v", want)
}
