package issuer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dkeye/VoiceAgent/internal/config"
	"github.com/dkeye/VoiceAgent/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// LocalIssuer signs access tokens in-process.
type LocalIssuer struct {
	creds      config.LiveKitConfig
	roomPrefix string
	validFor   time.Duration
	validate   *validator.Validate

	// Now is the clock; tests override it.
	Now func() time.Time
}

func NewLocalIssuer(creds config.LiveKitConfig, ic config.IssuerConfig) *LocalIssuer {
	validFor := ic.TokenValidFor
	if validFor <= 0 {
		validFor = 15 * time.Minute
	}
	return &LocalIssuer{
		creds:      creds,
		roomPrefix: ic.RoomPrefix,
		validFor:   validFor,
		validate:   validator.New(),
		Now:        time.Now,
	}
}

func (i *LocalIssuer) Issue(_ context.Context, body []byte) (json.RawMessage, error) {
	if err := i.checkConfig(); err != nil {
		return nil, err
	}
	var req domain.JoinRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: decode request: %v", ErrIssuance, err)
	}
	cred, err := i.Mint(req)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(cred)
	if err != nil {
		return nil, fmt.Errorf("%w: encode response: %v", ErrIssuance, err)
	}
	return out, nil
}

// Mint builds a credential for a fresh room.
func (i *LocalIssuer) Mint(req domain.JoinRequest) (domain.JoinCredential, error) {
	if err := i.checkConfig(); err != nil {
		return domain.JoinCredential{}, err
	}

	room, err := NewRoomName(i.roomPrefix)
	if err != nil {
		return domain.JoinCredential{}, fmt.Errorf("%w: room name: %v", ErrIssuance, err)
	}
	metadata, err := encodeMetadata(req.UploadedFile)
	if err != nil {
		return domain.JoinCredential{}, fmt.Errorf("%w: metadata: %v", ErrIssuance, err)
	}

	now := i.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.creds.APIKey,
			Subject:   req.ParticipantID,
			ID:        req.ParticipantID,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validFor)),
		},
		Name: req.DisplayName,
		Video: &VideoGrant{
			Room:           string(room),
			RoomJoin:       true,
			CanPublish:     boolPtr(true),
			CanPublishData: boolPtr(true),
			CanSubscribe:   boolPtr(true),
		},
		Metadata: metadata,
	}
	if req.AgentID != "" {
		claims.RoomConfig = &RoomConfiguration{Agents: []RoomAgentDispatch{{AgentName: req.AgentID}}}
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.creds.APISecret))
	if err != nil {
		return domain.JoinCredential{}, fmt.Errorf("%w: sign: %v", ErrIssuance, err)
	}

	log.Info().Str("module", "app.issuer").
		Str("room", string(room)).
		Str("identity", req.ParticipantID).
		Bool("document", req.UploadedFile != nil).
		Msg("credential issued")

	return domain.JoinCredential{Token: token, ServerAddress: i.creds.URL}, nil
}

func (i *LocalIssuer) checkConfig() error {
	if err := i.validate.Struct(i.creds); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}
