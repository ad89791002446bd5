package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ProxyIssuer relays join requests to a remote backend that issues the
// credential. It never looks inside either body.
type ProxyIssuer struct {
	url    string
	client *http.Client
}

func NewProxyIssuer(url string, client *http.Client) *ProxyIssuer {
	if client == nil {
		client = http.DefaultClient
	}
	return &ProxyIssuer{url: url, client: client}
}

func (p *ProxyIssuer) Issue(ctx context.Context, body []byte) (json.RawMessage, error) {
	if p.url == "" {
		return nil, fmt.Errorf("%w: backend url not set", ErrConfiguration)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrIssuance, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: backend status %d", ErrUpstream, resp.StatusCode)
	}
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	log.Debug().Str("module", "app.issuer").Str("backend", p.url).Int("bytes", len(out)).Msg("credential relayed")
	return out, nil
}
