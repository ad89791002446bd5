package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/dkeye/VoiceAgent/internal/adapters/issuerhttp"
	"github.com/dkeye/VoiceAgent/internal/app/callui"
	"github.com/dkeye/VoiceAgent/internal/app/ingest"
	"github.com/dkeye/VoiceAgent/internal/app/session"
	"github.com/dkeye/VoiceAgent/internal/core"
	"github.com/dkeye/VoiceAgent/internal/domain"
)

const (
	fallbackDisplayName   = "user"
	fallbackAgentID       = "agent-0x1234"
	fallbackParticipantID = "user-0x5678"
)

func defaultServer() string {
	if v := os.Getenv("VOICE_SERVER_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func runJoin(args []string) error {
	fs := pflag.NewFlagSet("join", pflag.ContinueOnError)
	file := fs.StringP("file", "f", "", "plain text file to share with the agent")
	server := fs.String("server", defaultServer(), "server whose client-config supplies the defaults")
	endpoint := fs.String("endpoint", os.Getenv("VOICE_CONN_DETAILS_ENDPOINT"), "connection details endpoint (default from client-config)")
	name := fs.String("name", "", "participant display name (default from client-config)")
	agentID := fs.String("agent-id", "", "agent to dispatch into the room (default from client-config)")
	userID := fs.String("user-id", "", "participant identity (default from client-config)")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout")
	wait := fs.Bool("wait", true, "stay connected until interrupted")
	verbose := fs.BoolP("verbose", "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("--file is required")
	}
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	hc := &http.Client{Timeout: *timeout}
	cc, err := issuerhttp.FetchClientConfig(ctx, hc, *server)
	if err != nil {
		if *endpoint == "" {
			return err
		}
		log.Warn().Err(err).Str("server", *server).Msg("client config unavailable, using flags")
	}

	target := *endpoint
	if target == "" {
		if target, err = issuerhttp.ResolveEndpoint(*server, cc.ConnectionDetailsEndpoint); err != nil {
			return err
		}
	}
	id := session.Identity{
		DisplayName:   pick(*name, cc.DisplayName, fallbackDisplayName),
		AgentID:       pick(*agentID, cc.AgentID, fallbackAgentID),
		ParticipantID: pick(*userID, cc.ParticipantID, fallbackParticipantID),
	}
	log.Debug().Str("endpoint", target).Str("identity", id.ParticipantID).Msg("joining")

	src := issuerhttp.New(target, hc)
	tr := &consoleTransport{out: os.Stdout}
	ctrl := session.NewController(id, src, tr)
	ctrl.Subscribe(func(s session.Snapshot) {
		v := callui.Render(s.State, s.HasFile)
		fmt.Fprintf(os.Stdout, "state=%s start=%t controls=%t\n", v.State, v.Start.Enabled, v.Controls)
	})

	lf, err := ingest.NewLocalFile(*file)
	if err != nil {
		return err
	}
	in := ingest.New(ctrl.SetFile)
	if err := in.Select(ctx, lf); err != nil {
		return fmt.Errorf("%s: %w", lf.Name(), err)
	}
	fmt.Fprintf(os.Stdout, "loaded %s\n", in.LastFilename())

	if err := ctrl.Connect(ctx); err != nil {
		return err
	}
	if !*wait {
		return nil
	}

	<-ctx.Done()
	return ctrl.Disconnect(context.Background())
}

// pick returns the first non-empty value.
func pick(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// consoleTransport prints the credential instead of opening media.
type consoleTransport struct {
	out io.Writer

	mu      sync.Mutex
	onState func(core.SessionState)
}

func (t *consoleTransport) Connect(_ context.Context, cred domain.JoinCredential) error {
	fmt.Fprintf(t.out, "serverUrl=%s\nparticipantToken=%s\n", cred.ServerAddress, cred.Token)
	t.report(core.StateConnecting)
	t.report(core.StateListening)
	return nil
}

func (t *consoleTransport) Disconnect(context.Context) error {
	fmt.Fprintln(t.out, "disconnected")
	return nil
}

func (t *consoleTransport) OnStateChange(fn func(core.SessionState)) {
	t.mu.Lock()
	t.onState = fn
	t.mu.Unlock()
}

func (t *consoleTransport) report(s core.SessionState) {
	t.mu.Lock()
	fn := t.onState
	t.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}
