package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/VoiceAgent/internal/app"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	var ping <-chan time.Time
	if ctl.PingPeriod > 0 {
		t := time.NewTicker(ctl.PingPeriod)
		defer t.Stop()
		ping = t.C
	}
	defer c.Close()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case <-ping:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, sid app.SessionID, e *app.Entry, tr *wsTransport, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		e.Cancel()
		ctl.Registry.Unbind(sid, e)
		c.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
			}
			return
		}
		ctl.handleSignal(ctx, sid, e, tr, c, data)
	}
}

func (ctl *SignalWSController) handleSignal(ctx context.Context, sid app.SessionID, e *app.Entry, tr *wsTransport, c *WsSignalConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case "ping":
		ctl.handlePing(c)
	case "drag":
		ctl.handleDrag(e, data)
	case "upload":
		ctl.handleUpload(ctx, e, c, data)
	case "connect":
		ctl.handleConnect(ctx, sid, e, c)
	case "state":
		ctl.handleState(tr, data)
	case "media_error":
		ctl.handleMediaError(sid, c, data)
	case "noise_filter_ok":
		tr.noiseResult(true, "")
	case "noise_filter_unavailable":
		ctl.handleNoiseUnavailable(tr, data)
	case "disconnect":
		ctl.handleDisconnect(ctx, sid, e)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}

func (ctl *SignalWSController) sendJSON(c *WsSignalConn, v any) {
	if err := c.SendJSON(v); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("sendJSON")
	}
}
