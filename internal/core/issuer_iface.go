package core

import (
	"context"
	"encoding/json"

	"github.com/dkeye/VoiceAgent/internal/domain"
)

//go:generate mockgen -source=issuer_iface.go -destination=mocks/mock_issuer.go -package=mocks

// Issuer turns a JSON join request body into a JSON credential body.
// Implementations are stateless and safe for concurrent use.
type Issuer interface {
	Issue(ctx context.Context, body []byte) (json.RawMessage, error)
}

// CredentialSource is how a session controller obtains a credential,
// either in-process or over HTTP.
type CredentialSource interface {
	Fetch(ctx context.Context, req domain.JoinRequest) (domain.JoinCredential, error)
}
