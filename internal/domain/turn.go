// Package domain defines the core domain models for the chat relay.
package domain

import (
	"time"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// Turn is one persisted message in a conversation. Turns are append-only:
// once written they are never mutated or deleted. A session is implicit in
// the set of turns sharing a SessionID; there is no session record.
type Turn struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry is one role/content pair of an assembled prompt. Unlike Turn it is
// ephemeral: built per request, sent to the completion endpoint, discarded.
type Entry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body of the orchestration contract.
type ChatRequest struct {
	SessionID    string  `json:"session_id"`
	Turns        []Entry `json:"turns"`
	ClientMemory []Entry `json:"client_memory,omitempty"`
}

// ChatResponse is the success response: the assistant's reply turn.
type ChatResponse struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
