// Package agent holds what the remote assistant does with a joined
// participant: load the document carried in participant metadata and answer
// tool calls about it.
package agent

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/VoiceAgent/internal/app/issuer"
	"github.com/dkeye/VoiceAgent/internal/domain"
)

// LoadDocument extracts the uploaded file from participant metadata.
// It returns nil, nil when the metadata carries no document.
func LoadDocument(metadata string) (*domain.UploadedFile, error) {
	if metadata == "" {
		return nil, nil
	}
	var md issuer.ParticipantMetadata
	if err := json.Unmarshal([]byte(metadata), &md); err != nil {
		return nil, fmt.Errorf("parse participant metadata: %w", err)
	}
	return md.UploadedFile, nil
}
