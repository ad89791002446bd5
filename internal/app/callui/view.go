// Package callui computes what the call screen shows for a session state.
package callui

import (
	"context"
	"errors"

	"github.com/dkeye/VoiceAgent/internal/core"
	"github.com/rs/zerolog/log"
)

// ErrNoiseFilterUnavailable is what a NoiseFilter returns when the
// platform tier lacks the feature.
var ErrNoiseFilterUnavailable = errors.New("noise filter unavailable")

// TransportAlert is shown when the media component reports an error.
const TransportAlert = "Error acquiring camera or microphone permissions. Please make sure you grant the necessary permissions in your browser and reload the tab"

type StartButton struct {
	Visible bool `json:"visible"`
	Enabled bool `json:"enabled"`
}

// Visualizer draws audio levels of the agent's audio track.
type Visualizer struct {
	Visible bool              `json:"visible"`
	State   core.SessionState `json:"state"`
}

type View struct {
	State      core.SessionState `json:"state"`
	Start      StartButton       `json:"start"`
	Controls   bool              `json:"controls"`
	Disconnect bool              `json:"disconnect"`
	Visualizer Visualizer        `json:"visualizer"`
}

// Render is a pure function of state and whether a file is held.
func Render(state core.SessionState, hasUploadedFile bool) View {
	if state == "" {
		state = core.StateDisconnected
	}
	v := View{State: state}
	if state == core.StateDisconnected {
		v.Start = StartButton{Visible: true, Enabled: hasUploadedFile}
		return v
	}
	v.Controls = true
	v.Disconnect = true
	v.Visualizer = Visualizer{Visible: true, State: state}
	return v
}

// TransportErrorMessage is the alert text for a media component error.
// The cause is logged, not shown.
func TransportErrorMessage(err error) string {
	log.Error().Err(err).Str("module", "app.callui").Msg("transport error")
	return TransportAlert
}

// Mount enables noise suppression on the outbound audio, best effort.
func Mount(ctx context.Context, nf core.NoiseFilter) {
	if nf == nil {
		return
	}
	err := nf.EnableNoiseFilter(ctx, true)
	switch {
	case err == nil:
		log.Debug().Str("module", "app.callui").Msg("noise filter enabled")
	case errors.Is(err, ErrNoiseFilterUnavailable):
		log.Debug().Err(err).Str("module", "app.callui").Msg("noise filter not available on this tier")
	case errors.Is(err, context.Canceled):
	default:
		log.Warn().Err(err).Str("module", "app.callui").Msg("noise filter not enabled")
	}
}
