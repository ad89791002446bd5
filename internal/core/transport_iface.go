package core

import (
	"context"

	"github.com/dkeye/VoiceAgent/internal/domain"
)

//go:generate mockgen -source=transport_iface.go -destination=mocks/mock_transport.go -package=mocks

// SessionState is the connection state reported by the real-time transport.
// The set is owned by the transport; only the tags below are interpreted.
type SessionState string

const (
	StateDisconnected SessionState = "disconnected"
	StateConnecting   SessionState = "connecting"
	StateInitializing SessionState = "initializing"
	StateListening    SessionState = "listening"
	StateThinking     SessionState = "thinking"
	StateSpeaking     SessionState = "speaking"
)

// Connected reports whether s is one of the in-call sub-states.
func (s SessionState) Connected() bool {
	return s != "" && s != StateDisconnected && s != StateConnecting
}

// Transport is the external real-time media component.
// Owned by the adapter; state changes arrive through the OnStateChange callback.
type Transport interface {
	// Connect starts joining with cred. Progress is reported via OnStateChange.
	Connect(ctx context.Context, cred domain.JoinCredential) error
	// Disconnect tears the call down; the transport reports StateDisconnected.
	Disconnect(ctx context.Context) error
	// OnStateChange registers the state observer. Only one is kept.
	OnStateChange(func(SessionState))
}

// NoiseFilter is the optional noise-suppression feature on the outbound
// audio path.
type NoiseFilter interface {
	EnableNoiseFilter(ctx context.Context, enabled bool) error
}
