package domain

import "time"

// Audit event types emitted by the API server.
const (
	AuditLogin        = "login"
	AuditLogout       = "logout"
	AuditUserCreated  = "user_created"
	AuditMatchCreated = "match_created"
	AuditMatchRated   = "match_rated"
)

// AuditEvent is a single auditable action, shipped to the audit sink.
type AuditEvent struct {
	EventId   string            `json:"event_id,omitempty"`
	EventType string            `json:"event_type"`
	Username  string            `json:"username"`
	Details   map[string]string `json:"details,omitempty"`
	IpAddress string            `json:"ip_address,omitempty"`
	UserAgent string            `json:"user_agent,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Source    string            `json:"source"`
}
