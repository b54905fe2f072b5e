package discord

import "fmt"

// Guild is one entry of the caller's guild list. Permissions stays in its
// raw decimal-string form so the bitmask can exceed 64 bits.
type Guild struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Owner       bool   `json:"owner"`
	Permissions string `json:"permissions"`
}

// User is the owner of an OAuth access token.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Channel is a guild channel as returned by the Discord REST API.
type Channel struct {
	ID       string
	Name     string
	Type     int
	ParentID string
	Position int
}

// Role is a guild role as returned by the Discord REST API.
type Role struct {
	ID       string
	Name     string
	Position int
	Managed  bool
}

// StatusError reports a non-2xx response from the Discord API.
type StatusError struct {
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("discord: upstream status %d", e.Code)
}
