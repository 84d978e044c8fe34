package types

import "time"

// Role identifies the kind of page control a Target resolves to.
type Role string

const (
	RoleButton Role = "button"
	RoleText   Role = "text"
	RoleInput  Role = "input"
)

// Target identifies a page control by role and accessible name.
type Target struct {
	Role Role   `json:"role"`
	Name string `json:"name"`

	// Prefix matches controls whose name starts with Name instead of
	// requiring an exact match. Used for controls that carry a dynamic
	// suffix, e.g. "Add item (₪200.00)".
	Prefix bool `json:"prefix,omitempty"`
}

// Relation describes where a value node sits relative to its label.
type Relation int

const (
	// RelationPrecedingSibling reads the sibling element immediately
	// before the label node.
	RelationPrecedingSibling Relation = iota

	// RelationParent reads the label's parent container.
	RelationParent
)

// String returns the relation name for logging.
func (r Relation) String() string {
	switch r {
	case RelationPrecedingSibling:
		return "preceding-sibling"
	case RelationParent:
		return "parent"
	default:
		return "unknown"
	}
}

// Session records metadata about an authenticated browser profile.
// The profile directory holds the real credentials; this is only
// log/debug context persisted alongside it.
type Session struct {
	Email           string    `json:"email"`
	AuthenticatedAt time.Time `json:"authenticatedAt"`
	DeviceUUID      string    `json:"deviceUuid"`
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}
