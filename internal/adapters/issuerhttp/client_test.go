package issuerhttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkeye/VoiceAgent/internal/app/session"
	"github.com/dkeye/VoiceAgent/internal/domain"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.JoinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.ParticipantID != "u1" || req.UploadedFile == nil || req.UploadedFile.Filename != "notes.txt" {
			t.Errorf("req=%+v", req)
		}
		_, _ = w.Write([]byte(`{"participantToken":"tok","serverUrl":"wss://x"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	cred, err := c.Fetch(context.Background(), domain.JoinRequest{
		ParticipantID: "u1",
		UploadedFile:  &domain.UploadedFile{Content: "hi", Filename: "notes.txt"},
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if cred.Token != "tok" || cred.ServerAddress != "wss://x" {
		t.Fatalf("cred=%+v", cred)
	}
}

func TestClient_Failures(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"server error": {http.StatusInternalServerError, `{"error":"failed to issue connection details"}`},
		"malformed":    {http.StatusOK, `{"participantToken":""}`},
		"not json":     {http.StatusOK, `<html>`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()
			if _, err := New(srv.URL, srv.Client()).Fetch(context.Background(), domain.JoinRequest{}); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	_, err := New("http://127.0.0.1:1", nil).Fetch(context.Background(), domain.JoinRequest{})
	if err == nil || errors.Is(err, session.ErrMalformedCredential) {
		t.Fatalf("network err=%v", err)
	}
}
