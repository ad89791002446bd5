// Package session owns the connection lifecycle of one user session:
// hold the uploaded document, fetch a credential, hand it to the transport,
// and reset when the transport reports disconnection.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dkeye/VoiceAgent/internal/core"
	"github.com/dkeye/VoiceAgent/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNotReady is returned by Connect when the connect action is disabled.
	ErrNotReady = errors.New("session not ready to connect")
	// ErrStale means the session was torn down while a credential was in flight.
	ErrStale = errors.New("credential arrived for a torn-down session")
	// ErrTransport wraps failures reported by the transport's Connect.
	ErrTransport = errors.New("transport failed")
)

// Identity is the participant identity put into every join request.
type Identity struct {
	DisplayName   string
	AgentID       string
	ParticipantID string
}

// Snapshot is a read-only view of the controller for rendering.
type Snapshot struct {
	State      core.SessionState
	HasFile    bool
	Filename   string
	Credential *domain.JoinCredential
	Pending    bool
}

type Controller struct {
	identity  Identity
	source    core.CredentialSource
	transport core.Transport

	// handoff orders transport Connect against Disconnect. Observers
	// must not call Disconnect from inside a transport callback.
	handoff sync.Mutex

	mu       sync.Mutex
	state    core.SessionState
	file     *domain.UploadedFile
	cred     *domain.JoinCredential
	pending  bool
	gen      uint64
	observer func(Snapshot)
}

// NewController registers itself as the transport's state observer.
func NewController(id Identity, src core.CredentialSource, tr core.Transport) *Controller {
	c := &Controller{
		identity:  id,
		source:    src,
		transport: tr,
		state:     core.StateDisconnected,
	}
	tr.OnStateChange(c.handleState)
	return c
}

// Subscribe sets the observer called after every change.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	c.observer = fn
	c.mu.Unlock()
}

// SetFile is the ingestor callback; a new file replaces the old one.
func (c *Controller) SetFile(content, filename string) {
	c.mu.Lock()
	c.file = &domain.UploadedFile{Content: content, Filename: filename}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) CanConnect() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canConnectLocked()
}

func (c *Controller) canConnectLocked() bool {
	return c.file != nil && c.cred == nil && !c.pending && c.state == core.StateDisconnected
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{State: c.state, HasFile: c.file != nil, Pending: c.pending}
	if c.file != nil {
		s.Filename = c.file.Filename
	}
	if c.cred != nil {
		cred := *c.cred
		s.Credential = &cred
	}
	return s
}

// Connect fetches a credential and starts the transport. It is a no-op
// returning ErrNotReady unless a file is held and the session is idle.
// Failures leave the session disconnected; nothing is retried.
func (c *Controller) Connect(ctx context.Context) error {
	c.mu.Lock()
	if !c.canConnectLocked() {
		c.mu.Unlock()
		return ErrNotReady
	}
	gen := c.gen
	file := *c.file
	req := domain.JoinRequest{
		DisplayName:   c.identity.DisplayName,
		AgentID:       c.identity.AgentID,
		ParticipantID: c.identity.ParticipantID,
		UploadedFile:  &file,
	}
	c.pending = true
	c.mu.Unlock()
	c.notify()

	cred, err := c.source.Fetch(ctx, req)

	c.mu.Lock()
	if gen == c.gen {
		c.pending = false
	}
	if err != nil {
		c.mu.Unlock()
		log.Error().Err(err).Str("module", "app.session").Str("identity", req.ParticipantID).Msg("credential fetch failed")
		c.notify()
		return err
	}
	if gen != c.gen {
		c.mu.Unlock()
		log.Warn().Str("module", "app.session").Uint64("gen", gen).Msg("discarding late credential")
		return ErrStale
	}
	c.cred = &cred
	c.mu.Unlock()
	c.notify()

	c.handoff.Lock()
	c.mu.Lock()
	live := gen == c.gen
	c.mu.Unlock()
	if !live {
		c.handoff.Unlock()
		log.Warn().Str("module", "app.session").Uint64("gen", gen).Msg("session torn down before transport handoff")
		return ErrStale
	}
	log.Info().Str("module", "app.session").Str("server", cred.ServerAddress).Msg("credential obtained, connecting")
	err = c.transport.Connect(ctx, cred)
	c.handoff.Unlock()
	if err != nil {
		log.Error().Err(err).Str("module", "app.session").Msg("transport connect failed")
		c.handleState(core.StateDisconnected)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

// Disconnect ends the current cycle. Any credential still in flight is
// discarded when it arrives.
func (c *Controller) Disconnect(ctx context.Context) error {
	c.handoff.Lock()
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
	err := c.transport.Disconnect(ctx)
	c.handoff.Unlock()
	c.notify()
	return err
}

func (c *Controller) handleState(s core.SessionState) {
	c.mu.Lock()
	prev := c.state
	c.state = s
	if s == core.StateDisconnected {
		c.resetLocked()
	}
	c.mu.Unlock()

	if prev != s {
		log.Info().Str("module", "app.session").Str("from", string(prev)).Str("to", string(s)).Msg("state changed")
	}
	c.notify()
}

func (c *Controller) resetLocked() {
	c.gen++
	c.cred = nil
	c.file = nil
	c.pending = false
	c.state = core.StateDisconnected
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.observer
	snap := c.snapshotLocked()
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
