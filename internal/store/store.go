// Package store persists per-guild bot settings. Records are created lazily
// with built-in defaults the first time a guild is seen, and mutated only
// through typed partial updates: fields left unset keep their prior value,
// list fields are replaced wholesale.
package store

import (
	"gorm.io/gorm"
)

// Built-in defaults applied when a guild is first seen.
const (
	DefaultPrefix   = "z!"
	DefaultLanguage = "English"

	DefaultTwitchNotificationText  = "**{streamer}** is live now!!\n**{url}**"
	DefaultYouTubeNotificationText = "**{ytber}** upload a video!!\n**{url}**"
	DefaultTwitterNotificationText = "**{xuser}** posted a new tweet!\n**{url}**"
)

// Store owns all persisted settings records. It does not authorize: callers
// must have passed the permission check before reading or writing.
type Store struct {
	db *gorm.DB
}

// New constructs a Store on an open connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Optional marks a field as present in a partial update. The zero value means
// "not provided"; a set value with a nil pointer payload clears the field.
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some wraps a value as a present Optional.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: value}
}
