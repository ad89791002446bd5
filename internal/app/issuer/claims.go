package issuer

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/VoiceAgent/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// VideoGrant is the room authorization embedded in an access token.
type VideoGrant struct {
	Room           string `json:"room,omitempty"`
	RoomJoin       bool   `json:"roomJoin,omitempty"`
	CanPublish     *bool  `json:"canPublish,omitempty"`
	CanPublishData *bool  `json:"canPublishData,omitempty"`
	CanSubscribe   *bool  `json:"canSubscribe,omitempty"`
}

type RoomAgentDispatch struct {
	AgentName string `json:"agentName"`
}

type RoomConfiguration struct {
	Agents []RoomAgentDispatch `json:"agents,omitempty"`
}

// Claims follows the real-time platform's access token layout.
type Claims struct {
	jwt.RegisteredClaims
	Name       string             `json:"name,omitempty"`
	Video      *VideoGrant        `json:"video,omitempty"`
	Metadata   string             `json:"metadata,omitempty"`
	RoomConfig *RoomConfiguration `json:"roomConfig,omitempty"`
}

// ParticipantMetadata is the JSON carried in Claims.Metadata.
type ParticipantMetadata struct {
	UploadedFile *domain.UploadedFile `json:"uploadedFile,omitempty"`
}

func encodeMetadata(file *domain.UploadedFile) (string, error) {
	if file == nil {
		return "", nil
	}
	b, err := json.Marshal(ParticipantMetadata{UploadedFile: file})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseUnverified decodes token claims without checking the signature.
// Only for inspection tooling.
func ParseUnverified(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

func boolPtr(b bool) *bool { return &b }
