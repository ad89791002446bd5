package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/VoiceAgent/internal/core"
	"github.com/dkeye/VoiceAgent/internal/domain"
)

// ErrMalformedCredential is returned when a response lacks token or URL.
var ErrMalformedCredential = errors.New("malformed credential response")

// IssuerSource fetches credentials from an in-process issuer.
type IssuerSource struct {
	Issuer core.Issuer
}

func (s IssuerSource) Fetch(ctx context.Context, req domain.JoinRequest) (domain.JoinCredential, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.JoinCredential{}, err
	}
	out, err := s.Issuer.Issue(ctx, body)
	if err != nil {
		return domain.JoinCredential{}, err
	}
	return DecodeCredential(out)
}

// DecodeCredential parses a {participantToken, serverUrl} body.
func DecodeCredential(b []byte) (domain.JoinCredential, error) {
	var cred domain.JoinCredential
	if err := json.Unmarshal(b, &cred); err != nil {
		return domain.JoinCredential{}, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
	if !cred.Valid() {
		return domain.JoinCredential{}, ErrMalformedCredential
	}
	return cred, nil
}
