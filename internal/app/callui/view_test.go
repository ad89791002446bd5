package callui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dkeye/VoiceAgent/internal/core"
	"github.com/dkeye/VoiceAgent/internal/core/mocks"
	"go.uber.org/mock/gomock"
)

func TestRender_Disconnected(t *testing.T) {
	v := Render(core.StateDisconnected, false)
	if !v.Start.Visible || v.Start.Enabled || v.Controls || v.Disconnect || v.Visualizer.Visible {
		t.Fatalf("no file: %+v", v)
	}
	v = Render(core.StateDisconnected, true)
	if !v.Start.Visible || !v.Start.Enabled {
		t.Fatalf("with file: %+v", v)
	}
	if Render("", true) != v {
		t.Fatal("empty state must render as disconnected")
	}
}

func TestRender_InCall(t *testing.T) {
	for _, s := range []core.SessionState{core.StateConnecting, core.StateInitializing, core.StateListening, core.StateThinking, core.StateSpeaking, "some-future-state"} {
		for _, hasFile := range []bool{true, false} {
			v := Render(s, hasFile)
			if v.Start.Visible || !v.Controls || !v.Disconnect {
				t.Fatalf("%s: %+v", s, v)
			}
			if !v.Visualizer.Visible || v.Visualizer.State != s {
				t.Fatalf("%s visualizer: %+v", s, v.Visualizer)
			}
		}
	}
}

func TestMount_EnablesNoiseFilter(t *testing.T) {
	mc := gomock.NewController(t)
	nf := mocks.NewMockNoiseFilter(mc)
	nf.EXPECT().EnableNoiseFilter(gomock.Any(), true).Return(nil)
	Mount(context.Background(), nf)
}

func TestMount_UnavailableIsNotAnError(t *testing.T) {
	mc := gomock.NewController(t)
	nf := mocks.NewMockNoiseFilter(mc)
	nf.EXPECT().EnableNoiseFilter(gomock.Any(), true).Return(ErrNoiseFilterUnavailable)
	Mount(context.Background(), nf)

	nf.EXPECT().EnableNoiseFilter(gomock.Any(), true).Return(errors.New("weird"))
	Mount(context.Background(), nf)

	Mount(context.Background(), nil)
}

func TestTransportErrorMessage(t *testing.T) {
	msg := TransportErrorMessage(errors.New("NotAllowedError"))
	if !strings.Contains(msg, "microphone permissions") || strings.Contains(msg, "NotAllowedError") {
		t.Fatalf("msg=%q", msg)
	}
}
