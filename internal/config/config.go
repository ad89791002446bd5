package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// DefaultBackendURL is the remote agent backend used by the proxy issuer.
const DefaultBackendURL = "https://agent-backend.example.com/api/connection-details"

const (
	IssuerModeLocal = "local"
	IssuerModeProxy = "proxy"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`

	Issuer  IssuerConfig  `mapstructure:"issuer"`
	LiveKit LiveKitConfig `mapstructure:"livekit"`
	Session SessionConfig `mapstructure:"session"`
	Public  PublicConfig  `mapstructure:"public"`
}

// IssuerConfig selects and tunes the credential issuer variant.
type IssuerConfig struct {
	Mode          string        `mapstructure:"mode"`
	BackendURL    string        `mapstructure:"backend_url"`
	ProxyTimeout  time.Duration `mapstructure:"proxy_timeout"`
	RateLimit     int           `mapstructure:"rate_limit"`
	RateInterval  time.Duration `mapstructure:"rate_interval"`
	RoomPrefix    string        `mapstructure:"room_prefix"`
	TokenValidFor time.Duration `mapstructure:"token_valid_for"`
}

// LiveKitConfig holds the signing credentials of the real-time platform.
// Any of them may be empty at startup; the local issuer rejects requests
// until they are set.
type LiveKitConfig struct {
	APIKey    string `mapstructure:"api_key" validate:"required"`
	APISecret string `mapstructure:"api_secret" validate:"required"`
	URL       string `mapstructure:"url" validate:"required,url"`
}

// SessionConfig carries the placeholder identity used for join requests.
type SessionConfig struct {
	DisplayName   string `mapstructure:"display_name"`
	AgentID       string `mapstructure:"agent_id"`
	ParticipantID string `mapstructure:"participant_id"`
}

// PublicConfig is exposed to HTTP clients through /api/client-config.
type PublicConfig struct {
	ConnectionDetailsEndpoint string `mapstructure:"connection_details_endpoint"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Issuer.Mode != IssuerModeLocal && cfg.Issuer.Mode != IssuerModeProxy {
		return nil, fmt.Errorf("unknown issuer mode %q", cfg.Issuer.Mode)
	}
	log.Info().Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("static", cfg.StaticPath).
		Str("issuer", cfg.Issuer.Mode).
		Msg("config ready")
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 1<<20)
	v.SetDefault("ping_period", "54s")

	v.SetDefault("issuer.mode", IssuerModeLocal)
	v.SetDefault("issuer.backend_url", DefaultBackendURL)
	v.SetDefault("issuer.proxy_timeout", "0s")
	v.SetDefault("issuer.rate_limit", 10)
	v.SetDefault("issuer.rate_interval", "1m")
	v.SetDefault("issuer.room_prefix", "voice_assistant_room_")
	v.SetDefault("issuer.token_valid_for", "15m")

	v.SetDefault("session.display_name", "user")
	v.SetDefault("session.agent_id", "agent-0x1234")
	v.SetDefault("session.participant_id", "user-0x5678")

	v.SetDefault("public.connection_details_endpoint", "/api/connection-details")
}

// bindEnv maps the platform's conventional variable names plus VOICE_*
// overrides onto config keys.
func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"livekit.api_key":                    {"LIVEKIT_API_KEY"},
		"livekit.api_secret":                 {"LIVEKIT_API_SECRET"},
		"livekit.url":                        {"LIVEKIT_URL"},
		"mode":                               {"VOICE_MODE"},
		"port":                               {"VOICE_PORT"},
		"secret":                             {"VOICE_SECRET"},
		"issuer.mode":                        {"VOICE_ISSUER_MODE"},
		"issuer.backend_url":                 {"VOICE_BACKEND_URL"},
		"public.connection_details_endpoint": {"NEXT_PUBLIC_CONN_DETAILS_ENDPOINT", "VOICE_CONN_DETAILS_ENDPOINT"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return err
		}
	}
	return nil
}
