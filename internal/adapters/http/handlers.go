package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/dkeye/VoiceAgent/internal/app"
	"github.com/dkeye/VoiceAgent/internal/app/ingest"
	"github.com/dkeye/VoiceAgent/internal/app/issuer"
	"github.com/dkeye/VoiceAgent/internal/app/session"
	"github.com/dkeye/VoiceAgent/internal/config"
	"github.com/dkeye/VoiceAgent/internal/core"
	"github.com/dkeye/VoiceAgent/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// errIssueFailed is the only failure text clients ever see from issuance.
const errIssueFailed = "failed to issue connection details"

func connectionDetailsHandler(iss core.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		body, err := io.ReadAll(c.Request.Body)
		if err == nil {
			var out []byte
			out, err = iss.Issue(c.Request.Context(), body)
			if err == nil {
				c.Data(http.StatusOK, "application/json", out)
				return
			}
		}

		log.Error().Err(err).
			Str("module", "adapters.http").
			Str("request_id", c.GetString("request_id")).
			Str("kind", errorKind(err)).
			Msg("connection details failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": errIssueFailed})
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, issuer.ErrConfiguration):
		return "configuration"
	case errors.Is(err, issuer.ErrUpstream):
		return "upstream"
	case errors.Is(err, issuer.ErrIssuance):
		return "issuance"
	default:
		return "unknown"
	}
}

func clientConfigHandler(pub config.PublicConfig, id session.Identity) gin.HandlerFunc {
	resp := domain.ClientConfig{
		ConnectionDetailsEndpoint: pub.ConnectionDetailsEndpoint,
		DisplayName:               id.DisplayName,
		AgentID:                   id.AgentID,
		ParticipantID:             id.ParticipantID,
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}

// uploadHandler feeds a multipart file into the caller's live session.
func uploadHandler(reg *app.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := app.SessionID(c.GetString("client_token"))
		e, ok := reg.Get(sid)
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "no active session"})
			return
		}
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}
		if err := e.Ingestor.Select(c.Request.Context(), ingest.FormFile{Header: fh}); err != nil {
			if errors.Is(err, ingest.ErrUnsupportedType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ingest.ErrUnsupportedType.Error()})
				return
			}
			log.Error().Err(err).Str("module", "adapters.http").Str("sid", string(sid)).Msg("upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"filename": fh.Filename})
	}
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
