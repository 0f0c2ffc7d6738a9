package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndsl6211/chatroom-server/internal/auth"
	"github.com/ndsl6211/chatroom-server/internal/core"
	"github.com/ndsl6211/chatroom-server/internal/proto"
)

const aliveProbeTimeout = time.Second

// WSHandler gates the connection upgrade on the session cookie and
// bridges accepted WebSockets to core clients.
type WSHandler struct {
	hub        *core.Hub
	auth       *auth.Service
	sendBuffer int
	log        *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, authService *auth.Service, sendBuffer int, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub:        hub,
		auth:       authService,
		sendBuffer: sendBuffer,
		log:        logger,
	}
}

// Handle serves GET /websocket. An unresolvable session rejects the
// upgrade with 401 before any connection or registry state exists.
func (h *WSHandler) Handle(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		c.JSON(stdhttp.StatusUnauthorized, ErrorResponse{Error: "not logged in"})
		return
	}

	username, err := h.auth.Resolve(token)
	if err != nil {
		h.log.Debug().Err(err).Msg("websocket upgrade rejected")
		c.JSON(stdhttp.StatusUnauthorized, ErrorResponse{Error: "not logged in"})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	client := core.NewClient(uuid.NewString(), username, h.sendBuffer)
	client.SetAliveProbe(func() bool {
		probeCtx, probeCancel := context.WithTimeout(ctx, aliveProbeTimeout)
		defer probeCancel()
		return conn.Ping(probeCtx) == nil
	})

	if err := h.hub.Admit(client); err != nil {
		h.log.Error().Err(err).Str("username", username).Msg("admit failed")
		return
	}
	defer h.hub.Release(client)

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("username", username).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// readLoop decodes inbound envelopes in arrival order and dispatches
// them. Unknown or malformed events are dropped and logged; the
// connection keeps serving. Only transport errors end the loop.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		cmd, err := inboundToCommand(inbound)
		if err != nil {
			h.log.Warn().
				Err(err).
				Str("conn_id", client.ID).
				Str("username", client.Username).
				Str("event_type", inbound.EventType).
				Msg("dropping inbound event")
			continue
		}

		h.hub.Dispatch(client, cmd)
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event := <-client.Events:
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Warn().
					Err(err).
					Str("conn_id", client.ID).
					Str("username", client.Username).
					Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
