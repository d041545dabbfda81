package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
	RoleTechnician Role = "technician"
	RoleManager    Role = "manager"
	RoleLogistics  Role = "logistics"
)

// Roles lists every recognized role.
var Roles = []Role{RoleAdmin, RoleEmployee, RoleTechnician, RoleManager, RoleLogistics}

// ParseRole maps a raw role string onto the closed role set.
// Unrecognized values are rejected so a token can never smuggle in a
// role the system does not know about.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEmployee, RoleTechnician, RoleManager, RoleLogistics:
		return Role(s), true
	}
	return "", false
}

// Session represents the decoded, validated claims of a request's token
type Session struct {
	UserID    uint
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// EntityType identifies a lifecycle-managed entity kind
type EntityType string

const (
	EntityIssue       EntityType = "issue"
	EntityWorkOrder   EntityType = "work_order"
	EntityPartRequest EntityType = "part_request"
)

// Status represents an entity's lifecycle status
type Status string

// Issue and WorkOrder statuses
const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// PartRequest statuses. StatusDeleted is a pseudo-status used only as a
// lifecycle edge target; deleted requests are removed, not stored.
const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
	StatusDeleted   Status = "deleted"
)

// Priority represents work order priority
type Priority string

const (
	PriorityLow     Priority = "low"
	PriorityMedium  Priority = "medium"
	PriorityHigh    Priority = "high"
	PriorityHighest Priority = "highest"
)

// ParsePriority maps a raw priority string onto the closed priority set.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityHighest:
		return Priority(s), true
	}
	return "", false
}

// User represents a user in the domain layer
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // Hashed
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
