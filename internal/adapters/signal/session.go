package signal

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dkeye/VoiceAgent/internal/app"
	"github.com/dkeye/VoiceAgent/internal/app/callui"
	"github.com/dkeye/VoiceAgent/internal/app/ingest"
	"github.com/dkeye/VoiceAgent/internal/app/session"
	"github.com/dkeye/VoiceAgent/internal/core"
	"github.com/rs/zerolog/log"
)

type viewMessage struct {
	Type     string      `json:"type"`
	View     callui.View `json:"view"`
	Filename string      `json:"filename,omitempty"`
	Pending  bool        `json:"pending,omitempty"`
}

func newViewMessage(s session.Snapshot) viewMessage {
	return viewMessage{
		Type:     "view",
		View:     callui.Render(s.State, s.HasFile),
		Filename: s.Filename,
		Pending:  s.Pending,
	}
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (ctl *SignalWSController) handleDrag(e *app.Entry, data []byte) {
	var p struct {
		Over bool `json:"over"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad drag payload")
		return
	}
	if p.Over {
		e.Ingestor.DragEnter()
	} else {
		e.Ingestor.DragLeave()
	}
}

func (ctl *SignalWSController) handleUpload(ctx context.Context, e *app.Entry, conn *WsSignalConn, data []byte) {
	var p struct {
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad upload payload")
		ctl.sendJSON(conn, errorMessage{Type: "error", Error: "bad_payload"})
		return
	}
	f := ingest.MemFile{FileName: p.Filename, ContentType: p.ContentType, Content: p.Content}
	if err := e.Ingestor.Drop(ctx, []ingest.File{f}); err != nil {
		msg := "upload failed"
		if errors.Is(err, ingest.ErrUnsupportedType) {
			msg = ingest.ErrUnsupportedType.Error()
		}
		ctl.sendJSON(conn, errorMessage{Type: "error", Error: msg})
		return
	}
	ctl.sendJSON(conn, struct {
		Type     string `json:"type"`
		Filename string `json:"filename"`
	}{Type: "upload_ok", Filename: e.Ingestor.LastFilename()})
}

// handleConnect runs the fetch off the read pump so transport state keeps
// flowing while the credential is in flight. It shares the issuance
// route's per-client limit.
func (ctl *SignalWSController) handleConnect(ctx context.Context, sid app.SessionID, e *app.Entry, conn *WsSignalConn) {
	if !e.Controller.CanConnect() {
		log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("connect ignored, session not ready")
		return
	}
	if ctl.Limiter != nil && !ctl.Limiter.Allow(string(sid)) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("connect rate limited")
		ctl.sendJSON(conn, errorMessage{Type: "error", Error: "too many requests"})
		return
	}
	go func() {
		err := e.Controller.Connect(ctx)
		switch {
		case err == nil:
		case errors.Is(err, session.ErrNotReady):
			log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("connect ignored, session not ready")
		default:
			log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("connect failed")
		}
	}()
}

func (ctl *SignalWSController) handleState(tr *wsTransport, data []byte) {
	var p struct {
		State core.SessionState `json:"state"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.State == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad state payload")
		return
	}
	tr.report(p.State)
}

func (ctl *SignalWSController) handleMediaError(sid app.SessionID, conn *WsSignalConn, data []byte) {
	var p struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(data, &p)
	log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("media device error")
	ctl.sendJSON(conn, struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}{Type: "alert", Message: callui.TransportErrorMessage(errors.New(p.Error))})
}

func (ctl *SignalWSController) handleNoiseUnavailable(tr *wsTransport, data []byte) {
	var p struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(data, &p)
	tr.noiseResult(false, p.Error)
}

func (ctl *SignalWSController) handleDisconnect(ctx context.Context, sid app.SessionID, e *app.Entry) {
	if err := e.Controller.Disconnect(ctx); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("disconnect")
	}
}
