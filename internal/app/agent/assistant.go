package agent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dkeye/VoiceAgent/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	noDocument = "No document has been uploaded at this time."

	// SystemPrompt seeds the assistant's chat context.
	SystemPrompt = "Interactive voice assistant. " +
		"Responses should be concise and conversational. " +
		"For document queries, check content first using get_document_content()."

	DefaultWeatherURL = "https://wttr.in"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Assistant answers the tool calls of the voice pipeline.
type Assistant struct {
	doc *domain.UploadedFile

	WeatherURL string
	Client     *http.Client
	Now        func() time.Time
}

func NewAssistant() *Assistant {
	return &Assistant{
		WeatherURL: DefaultWeatherURL,
		Client:     http.DefaultClient,
		Now:        time.Now,
	}
}

// LoadMetadata loads the document from participant metadata. Parse
// failures are logged and leave the assistant without a document.
func (a *Assistant) LoadMetadata(metadata string) {
	doc, err := LoadDocument(metadata)
	if err != nil {
		log.Error().Err(err).Str("module", "app.agent").Msg("failed to load document from metadata")
		return
	}
	if doc != nil {
		a.doc = doc
		log.Info().Str("module", "app.agent").Str("document", doc.Filename).Msg("document loaded")
	}
}

func (a *Assistant) Document() *domain.UploadedFile { return a.doc }

func (a *Assistant) DocumentContent() string {
	if a.doc == nil || a.doc.Content == "" {
		return noDocument
	}
	return fmt.Sprintf("Contents of '%s':\n%s", a.doc.Filename, a.doc.Content)
}

func (a *Assistant) DocumentSummary() string {
	if a.doc == nil || a.doc.Content == "" {
		return noDocument
	}
	return fmt.Sprintf("Summary of '%s':\n%s", a.doc.Filename, a.doc.Content)
}

// CurrentTime is the local wall clock as HH:MM:SS.
func (a *Assistant) CurrentTime() string {
	return a.Now().Format("15:04:05")
}

// Welcome is the first thing the assistant says.
func (a *Assistant) Welcome() string {
	if a.doc != nil && a.doc.Filename != "" {
		return fmt.Sprintf("Hello! I see you've uploaded '%s'. Let's discuss it!", a.doc.Filename)
	}
	return "Hello! How can I help you today?"
}

// SanitizeLocation collapses anything but ASCII letters and digits to
// single spaces.
func SanitizeLocation(location string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(location, " "))
}

// Weather returns a one-line weather report for location.
func (a *Assistant) Weather(ctx context.Context, location string) (string, error) {
	loc := SanitizeLocation(location)
	u := strings.TrimRight(a.WeatherURL, "/") + "/" + url.PathEscape(loc) + "?format=%C+%t"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	log.Info().Str("module", "app.agent").Str("location", loc).Msg("requesting weather")
	resp, err := a.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather API request failed: %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("The weather in %s is %s.", loc, strings.TrimSpace(string(b))), nil
}
