package issuerhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dkeye/VoiceAgent/internal/domain"
)

const clientConfigPath = "/api/client-config"

// FetchClientConfig reads the server's public configuration.
func FetchClientConfig(ctx context.Context, hc *http.Client, server string) (domain.ClientConfig, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(server, "/")+clientConfigPath, nil)
	if err != nil {
		return domain.ClientConfig{}, err
	}
	resp, err := hc.Do(req)
	if err != nil {
		return domain.ClientConfig{}, fmt.Errorf("client config: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.ClientConfig{}, fmt.Errorf("client config: status %d", resp.StatusCode)
	}
	var cc domain.ClientConfig
	if err := json.NewDecoder(resp.Body).Decode(&cc); err != nil {
		return domain.ClientConfig{}, fmt.Errorf("client config: %w", err)
	}
	return cc, nil
}

// ResolveEndpoint resolves a possibly relative endpoint against server.
func ResolveEndpoint(server, endpoint string) (string, error) {
	base, err := url.Parse(server)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
