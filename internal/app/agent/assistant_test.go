package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkeye/VoiceAgent/internal/app/issuer"
	"github.com/dkeye/VoiceAgent/internal/config"
	"github.com/dkeye/VoiceAgent/internal/domain"
)

func TestLoadDocument_FromIssuedToken(t *testing.T) {
	iss := issuer.NewLocalIssuer(
		config.LiveKitConfig{APIKey: "k", APISecret: "s", URL: "wss://rtc.example.com"},
		config.IssuerConfig{RoomPrefix: "r_"},
	)
	want := domain.UploadedFile{Content: "chapter one\n", Filename: "book.txt"}
	cred, err := iss.Mint(domain.JoinRequest{ParticipantID: "u1", UploadedFile: &want})
	if err != nil {
		t.Fatal(err)
	}
	claims, err := issuer.ParseUnverified(cred.Token)
	if err != nil {
		t.Fatal(err)
	}

	a := NewAssistant()
	a.LoadMetadata(claims.Metadata)
	if a.Document() == nil || *a.Document() != want {
		t.Fatalf("doc=%+v", a.Document())
	}
	if got := a.DocumentContent(); got != "Contents of 'book.txt':\nchapter one\n" {
		t.Fatalf("content=%q", got)
	}
	if got := a.DocumentSummary(); got != "Summary of 'book.txt':\nchapter one\n" {
		t.Fatalf("summary=%q", got)
	}
	if got := a.Welcome(); got != "Hello! I see you've uploaded 'book.txt'. Let's discuss it!" {
		t.Fatalf("welcome=%q", got)
	}
}

func TestAssistant_NoDocument(t *testing.T) {
	a := NewAssistant()
	a.LoadMetadata("")
	a.LoadMetadata("{not json")
	a.LoadMetadata(`{"other":1}`)
	if a.Document() != nil {
		t.Fatalf("doc=%+v", a.Document())
	}
	if a.DocumentContent() != noDocument || a.DocumentSummary() != noDocument {
		t.Fatal("expected no-document answers")
	}
	if a.Welcome() != "Hello! How can I help you today?" {
		t.Fatalf("welcome=%q", a.Welcome())
	}
}

func TestLoadDocument_Errors(t *testing.T) {
	if doc, err := LoadDocument(""); doc != nil || err != nil {
		t.Fatalf("empty: %v %v", doc, err)
	}
	if _, err := LoadDocument("{"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCurrentTime(t *testing.T) {
	a := NewAssistant()
	a.Now = func() time.Time { return time.Date(2024, 5, 1, 7, 8, 9, 0, time.UTC) }
	if got := a.CurrentTime(); got != "07:08:09" {
		t.Fatalf("time=%q", got)
	}
}

func TestSanitizeLocation(t *testing.T) {
	cases := map[string]string{
		"New York!!":       "New York",
		"  São Paulo ":     "S o Paulo",
		"../../etc/passwd": "etc passwd",
		"Berlin":           "Berlin",
	}
	for in, want := range cases {
		if got := SanitizeLocation(in); got != want {
			t.Errorf("SanitizeLocation(%q)=%q want %q", in, got, want)
		}
	}
}

func TestWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/New York" {
			t.Errorf("path=%q", r.URL.Path)
		}
		if r.URL.RawQuery != "format=%C+%t" {
			t.Errorf("query=%q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte("Sunny +21°C\n"))
	}))
	defer srv.Close()

	a := NewAssistant()
	a.WeatherURL = srv.URL
	a.Client = srv.Client()
	got, err := a.Weather(context.Background(), "New York?")
	if err != nil {
		t.Fatalf("Weather: %v", err)
	}
	if got != "The weather in New York is Sunny +21°C." {
		t.Fatalf("got %q", got)
	}
}

func TestWeather_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := NewAssistant()
	a.WeatherURL = srv.URL
	a.Client = srv.Client()
	if _, err := a.Weather(context.Background(), "Oslo"); err == nil {
		t.Fatal("expected error")
	}
}
