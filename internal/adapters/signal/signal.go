package signal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/VoiceAgent/internal/app"
	"github.com/dkeye/VoiceAgent/internal/app/ingest"
	"github.com/dkeye/VoiceAgent/internal/app/session"
	"github.com/dkeye/VoiceAgent/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

// Limiter gates credential fetches per client token.
type Limiter interface {
	Allow(key string) bool
}

// SignalWSController hosts one session controller per websocket.
type SignalWSController struct {
	Registry   *app.Registry
	Source     core.CredentialSource
	Identity   session.Identity
	Limiter    Limiter
	ReadLimit  int64
	PingPeriod time.Duration
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) SendJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.TrySend(b)
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := app.SessionID(c.GetString("client_token"))
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan []byte, 32),
	}

	ctx, cancel := context.WithCancel(ctx)
	tr := newTransport(conn)
	ctrl := session.NewController(ctl.Identity, ctl.Source, tr)
	entry := &app.Entry{
		Controller: ctrl,
		Ingestor:   ingest.New(ctrl.SetFile),
		Cancel:     cancel,
	}
	ctrl.Subscribe(func(s session.Snapshot) {
		ctl.sendJSON(conn, newViewMessage(s))
	})
	ctl.Registry.Bind(sid, entry)

	ctl.sendJSON(conn, newViewMessage(ctrl.Snapshot()))

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, entry, tr, conn)
}
