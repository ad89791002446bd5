package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/VoiceAgent/internal/app/issuer"
	"github.com/dkeye/VoiceAgent/internal/config"
	"github.com/dkeye/VoiceAgent/internal/domain"
)

func testIssuer() *issuer.LocalIssuer {
	return issuer.NewLocalIssuer(
		config.LiveKitConfig{APIKey: "key", APISecret: "secret", URL: "wss://example.livekit.cloud"},
		config.IssuerConfig{RoomPrefix: "voice_assistant_room_", TokenValidFor: 15 * time.Minute},
	)
}

func TestReadToken(t *testing.T) {
	if got, _ := readToken([]string{" abc "}, nil); got != "abc" {
		t.Fatalf("arg token=%q", got)
	}
	if got, _ := readToken([]string{"-"}, strings.NewReader("xyz\n")); got != "xyz" {
		t.Fatalf("stdin token=%q", got)
	}
	if _, err := readToken(nil, nil); err == nil {
		t.Fatal("expected error without args")
	}
	if _, err := readToken([]string{"-"}, strings.NewReader("")); err == nil {
		t.Fatal("expected error on empty stdin")
	}
}

func TestPrintClaims(t *testing.T) {
	cred, err := testIssuer().Mint(domain.JoinRequest{
		DisplayName:   "user",
		AgentID:       "agent-0x1234",
		ParticipantID: "user-0x5678",
		UploadedFile:  &domain.UploadedFile{Content: "hello", Filename: "notes.txt"},
	})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if err := verify(cred.Token, "secret"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := verify(cred.Token, "wrong"); err == nil {
		t.Fatal("verify accepted wrong secret")
	}

	claims, err := issuer.ParseUnverified(cred.Token)
	if err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	var buf bytes.Buffer
	if err := printClaims(&buf, claims, "ok"); err != nil {
		t.Fatalf("printClaims: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"identity:  user-0x5678",
		"room:      voice_assistant_room_",
		"agent:     agent-0x1234",
		"document:  notes.txt (5 bytes)",
		"I see you've uploaded 'notes.txt'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunJoin(t *testing.T) {
	t.Setenv("VOICE_CONN_DETAILS_ENDPOINT", "")
	iss := testIssuer()
	identities := make(chan string, 8)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/client-config", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.ClientConfig{
			ConnectionDetailsEndpoint: "/api/connection-details",
			DisplayName:               "cfg-name",
			AgentID:                   "cfg-agent",
			ParticipantID:             "cfg-user",
		})
	})
	mux.HandleFunc("/api/connection-details", func(w http.ResponseWriter, r *http.Request) {
		body := new(bytes.Buffer)
		_, _ = body.ReadFrom(r.Body)
		var req domain.JoinRequest
		_ = json.Unmarshal(body.Bytes(), &req)
		identities <- req.ParticipantID
		out, err := iss.Issue(r.Context(), body.Bytes())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(out)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("some notes\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// endpoint and identity come from the server's client-config
	if err := runJoin([]string{"--file", txt, "--server", srv.URL, "--wait=false"}); err != nil {
		t.Fatalf("runJoin: %v", err)
	}
	if got := <-identities; got != "cfg-user" {
		t.Fatalf("identity=%q", got)
	}

	if err := runJoin([]string{"--file", txt, "--server", srv.URL, "--user-id", "flag-user", "--wait=false"}); err != nil {
		t.Fatalf("runJoin: %v", err)
	}
	if got := <-identities; got != "flag-user" {
		t.Fatalf("identity=%q", got)
	}

	// an explicit endpoint still works when client-config is unreachable
	dead := "http://127.0.0.1:1"
	if err := runJoin([]string{"--file", txt, "--server", dead, "--endpoint", srv.URL + "/api/connection-details", "--wait=false"}); err != nil {
		t.Fatalf("runJoin: %v", err)
	}
	if got := <-identities; got != fallbackParticipantID {
		t.Fatalf("identity=%q", got)
	}
	if err := runJoin([]string{"--file", txt, "--server", dead, "--wait=false"}); err == nil {
		t.Fatal("expected error without client-config or endpoint")
	}

	bin := filepath.Join(dir, "image.png")
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	if err := os.WriteFile(bin, png, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := runJoin([]string{"--file", bin, "--server", srv.URL, "--wait=false"}); err == nil {
		t.Fatal("expected rejection of non-text file")
	}

	if err := runJoin([]string{"--server", srv.URL}); err == nil {
		t.Fatal("expected error without --file")
	}
}
