// Package store holds the in-process chat session record: one uploaded
// resume bound to one live conversation.
package store

import (
	"time"

	"resumegpt-be/pkg/conversation"
)

type Session struct {
	ID        string
	ResumeID  string
	Chat      *conversation.Session
	CreatedAt time.Time
}
