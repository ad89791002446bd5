package app

import (
	"context"
	"sync"

	"github.com/dkeye/VoiceAgent/internal/app/ingest"
	"github.com/dkeye/VoiceAgent/internal/app/session"
	"github.com/rs/zerolog/log"
)

type SessionID string

// Entry is the live state bound to one browser session.
type Entry struct {
	Controller *session.Controller
	Ingestor   *ingest.Ingestor
	Cancel     context.CancelFunc
}

// Registry maps client tokens to their live session. A new binding for the
// same token replaces (and cancels) the old one.
type Registry struct {
	mu       sync.RWMutex
	sessions map[SessionID]*Entry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[SessionID]*Entry),
	}
}

func (r *Registry) Bind(sid SessionID, e *Entry) {
	r.mu.Lock()
	old, ok := r.sessions[sid]
	r.sessions[sid] = e
	r.mu.Unlock()
	if ok && old != e && old.Cancel != nil {
		old.Cancel()
		log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("replaced session")
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound session")
}

func (r *Registry) Get(sid SessionID) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	return e, ok
}

// Unbind removes sid only if it is still bound to e.
func (r *Registry) Unbind(sid SessionID, e *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.sessions[sid]; ok && cur == e {
		delete(r.sessions, sid)
		log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) Cancel(sid SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}

// CancelAll cancels every live session, used on shutdown.
func (r *Registry) CancelAll() int {
	r.mu.RLock()
	entries := make([]*Entry, 0, len(r.sessions))
	for _, e := range r.sessions {
		entries = append(entries, e)
	}
	r.mu.RUnlock()
	for _, e := range entries {
		if e.Cancel != nil {
			e.Cancel()
		}
	}
	log.Info().Str("module", "app.registry").Int("count", len(entries)).Msg("canceled all sessions")
	return len(entries)
}
