// Package domain contains entity without logic, just meta-data
package domain

// UploadedFile is the text document handed to the agent as session context.
type UploadedFile struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

// JoinRequest is composed by the session controller at connect time and
// lives for exactly one issuance call.
type JoinRequest struct {
	DisplayName   string        `json:"userName"`
	AgentID       string        `json:"agentId"`
	ParticipantID string        `json:"userId"`
	UploadedFile  *UploadedFile `json:"uploadedFile"`
}

// JoinCredential authorizes one participant to enter one room.
type JoinCredential struct {
	Token         string `json:"participantToken"`
	ServerAddress string `json:"serverUrl"`
}

// Valid reports whether both fields are populated.
func (c JoinCredential) Valid() bool {
	return c.Token != "" && c.ServerAddress != ""
}

// ClientConfig is the public configuration served to HTTP clients.
type ClientConfig struct {
	ConnectionDetailsEndpoint string `json:"connectionDetailsEndpoint"`
	DisplayName               string `json:"displayName"`
	AgentID                   string `json:"agentId"`
	ParticipantID             string `json:"participantId"`
}
