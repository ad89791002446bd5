package issuer

import "errors"

var (
	// ErrConfiguration means signing credentials or addresses are missing.
	ErrConfiguration = errors.New("issuer configuration incomplete")
	// ErrIssuance covers every other local fault.
	ErrIssuance = errors.New("credential issuance failed")
	// ErrUpstream is a network fault or non-success status from the backend.
	ErrUpstream = errors.New("upstream backend failed")
)
