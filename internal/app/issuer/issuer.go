// Package issuer mints or relays join credentials for the real-time platform.
package issuer

import (
	"fmt"
	"net/http"

	"github.com/dkeye/VoiceAgent/internal/config"
	"github.com/dkeye/VoiceAgent/internal/core"
)

// New returns the variant selected by cfg.Issuer.Mode.
func New(cfg *config.Config) (core.Issuer, error) {
	switch cfg.Issuer.Mode {
	case config.IssuerModeLocal, "":
		return NewLocalIssuer(cfg.LiveKit, cfg.Issuer), nil
	case config.IssuerModeProxy:
		return NewProxyIssuer(cfg.Issuer.BackendURL, &http.Client{Timeout: cfg.Issuer.ProxyTimeout}), nil
	default:
		return nil, fmt.Errorf("unknown issuer mode %q", cfg.Issuer.Mode)
	}
}
