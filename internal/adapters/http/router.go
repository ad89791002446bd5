package http

import (
	"context"
	"crypto/rand"

	"github.com/dkeye/VoiceAgent/internal/adapters/signal"
	"github.com/dkeye/VoiceAgent/internal/app"
	"github.com/dkeye/VoiceAgent/internal/app/session"
	"github.com/dkeye/VoiceAgent/internal/config"
	"github.com/dkeye/VoiceAgent/internal/core"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Deps are the long-lived collaborators the routes need.
type Deps struct {
	Issuer   core.Issuer
	Registry *app.Registry
}

func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	store := cookie.NewStore(sessionKey(cfg.Secret))
	r.Use(sessions.Sessions("VoiceSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})
	r.GET("/healthz", handleHealth)

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	identity := session.Identity{
		DisplayName:   cfg.Session.DisplayName,
		AgentID:       cfg.Session.AgentID,
		ParticipantID: cfg.Session.ParticipantID,
	}
	limiter := NewRateLimiter(cfg.Issuer.RateLimit, cfg.Issuer.RateInterval)

	api := r.Group("/api")

	api.POST("/connection-details", RateLimitMiddleware(limiter), connectionDetailsHandler(deps.Issuer))
	api.GET("/client-config", clientConfigHandler(cfg.Public, identity))
	api.POST("/upload", uploadHandler(deps.Registry))

	ctrl := &signal.SignalWSController{
		Registry:   deps.Registry,
		Source:     session.IssuerSource{Issuer: deps.Issuer},
		Identity:   identity,
		Limiter:    limiter,
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
	}
	api.GET("/ws/session", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Msg("ws session endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	return r
}

// sessionKey falls back to a per-process random key, which invalidates
// client tokens on restart.
func sessionKey(secret string) []byte {
	if secret != "" {
		return []byte(secret)
	}
	log.Warn().Str("module", "adapters.http").Msg("no session secret configured, using a random key")
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return key
}
