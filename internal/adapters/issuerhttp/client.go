// Package issuerhttp fetches join credentials from the connection-details
// endpoint over HTTP.
package issuerhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dkeye/VoiceAgent/internal/app/session"
	"github.com/dkeye/VoiceAgent/internal/domain"
	"github.com/rs/zerolog/log"
)

type Client struct {
	Endpoint string
	HTTP     *http.Client
}

func New(endpoint string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{Endpoint: endpoint, HTTP: hc}
}

func (c *Client) Fetch(ctx context.Context, req domain.JoinRequest) (domain.JoinCredential, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.JoinCredential{}, err
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.JoinCredential{}, err
	}
	hreq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(hreq)
	if err != nil {
		return domain.JoinCredential{}, fmt.Errorf("connection details: %w", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.JoinCredential{}, fmt.Errorf("connection details: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(out, &e)
		log.Debug().Str("module", "adapters.issuerhttp").Int("status", resp.StatusCode).Str("error", e.Error).Msg("issuance rejected")
		return domain.JoinCredential{}, fmt.Errorf("connection details: status %d", resp.StatusCode)
	}
	return session.DecodeCredential(out)
}
