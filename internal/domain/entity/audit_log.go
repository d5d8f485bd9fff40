package entity

import (
	"encoding/json"
	"time"
)

// AuditLog represents one backend audit trail entry. Read-only for the console.
type AuditLog struct {
	ID         string          `json:"_id"`
	User       *AuditActor     `json:"user,omitempty"`
	Action     string          `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID string          `json:"resourceId,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	IPAddress  string          `json:"ipAddress,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type AuditActor struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// ActorName is the best label available for the acting user.
func (a *AuditLog) ActorName() string {
	if a.User == nil {
		return ""
	}
	if a.User.Name != "" {
		return a.User.Name
	}
	return a.User.Username
}

// Common audit actions
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionLogin  = "login"
	AuditActionLogout = "logout"
)
