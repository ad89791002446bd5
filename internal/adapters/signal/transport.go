package signal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dkeye/VoiceAgent/internal/app/callui"
	"github.com/dkeye/VoiceAgent/internal/core"
	"github.com/dkeye/VoiceAgent/internal/domain"
)

const defaultNoiseAckTimeout = 15 * time.Second

// wsTransport is the page's real-time SDK seen from the server: Connect
// pushes the credential to the page, state messages come back in.
type wsTransport struct {
	conn *WsSignalConn

	// noiseAck carries the page's answer to a noise_filter request.
	noiseAck        chan error
	noiseAckTimeout time.Duration

	mu      sync.Mutex
	onState func(core.SessionState)
}

func newTransport(conn *WsSignalConn) *wsTransport {
	return &wsTransport{
		conn:            conn,
		noiseAck:        make(chan error, 1),
		noiseAckTimeout: defaultNoiseAckTimeout,
	}
}

func (t *wsTransport) Connect(ctx context.Context, cred domain.JoinCredential) error {
	err := t.conn.SendJSON(struct {
		Type string `json:"type"`
		domain.JoinCredential
	}{Type: "credential", JoinCredential: cred})
	if err != nil {
		return err
	}
	// the page answers once its microphone track is published
	go callui.Mount(ctx, t)
	return nil
}

func (t *wsTransport) Disconnect(context.Context) error {
	err := t.conn.SendJSON(struct {
		Type string `json:"type"`
	}{Type: "transport_disconnect"})
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

func (t *wsTransport) OnStateChange(fn func(core.SessionState)) {
	t.mu.Lock()
	t.onState = fn
	t.mu.Unlock()
}

// EnableNoiseFilter asks the page to apply the filter and waits for its
// noise_filter_ok or noise_filter_unavailable reply.
func (t *wsTransport) EnableNoiseFilter(ctx context.Context, enabled bool) error {
	select {
	case <-t.noiseAck:
	default:
	}
	err := t.conn.SendJSON(struct {
		Type    string `json:"type"`
		Enabled bool   `json:"enabled"`
	}{Type: "noise_filter", Enabled: enabled})
	if err != nil {
		return err
	}

	timer := time.NewTimer(t.noiseAckTimeout)
	defer timer.Stop()
	select {
	case err := <-t.noiseAck:
		return err
	case <-timer.C:
		return errors.New("no noise filter reply from page")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// noiseResult records the page's reply; reason is empty on success.
func (t *wsTransport) noiseResult(ok bool, reason string) {
	var err error
	if !ok {
		err = callui.ErrNoiseFilterUnavailable
		if reason != "" {
			err = fmt.Errorf("%w: %s", callui.ErrNoiseFilterUnavailable, reason)
		}
	}
	select {
	case t.noiseAck <- err:
	default:
	}
}

func (t *wsTransport) report(s core.SessionState) {
	t.mu.Lock()
	fn := t.onState
	t.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}
