package models

// Fixed sender identifiers. The conversation is single-user: every message
// belongs either to the local user or to the assistant.
const (
	SenderUser      = "Mj"
	SenderAssistant = "LIA"
)

// Message is one conversation turn. Immutable once created; ordering is
// insertion order and the timestamp (wall-clock millis) is informational only.
type Message struct {
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"`
}

// Tool is a user-registered URL-template action. URLTemplate should contain
// the substring {query}; substitution replaces only its first occurrence.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URLTemplate string `json:"urlTemplate"`
}

// UserProfile is the per-identity profile, created once on first login.
type UserProfile struct {
	Name string `json:"name"`
}

// UserRole mirrors the backend's authorization roles. The client only ever
// reads its own role; assignment is an admin surface it never calls.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	RoleGuest UserRole = "guest"
)
