// Package notification holds the append-only event records surfaced to
// users: daily digests and resume pipeline events.
package notification

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification payload.
type Kind string

const (
	KindDailyDigest     Kind = "daily_digest"
	KindResumeTailored  Kind = "resume_tailored"
	KindResumeOptimized Kind = "resume_optimized"
)

// Notification is immutable once created; only the read marker is set
// later, by the delivery layer.
type Notification struct {
	id        int64
	userID    uuid.UUID
	kind      Kind
	payload   map[string]any
	readAt    *time.Time
	createdAt time.Time
}

// New creates an unread notification.
func New(userID uuid.UUID, kind Kind, payload map[string]any) *Notification {
	return &Notification{
		userID:    userID,
		kind:      kind,
		payload:   payload,
		createdAt: time.Now().UTC(),
	}
}

// Reconstruct rebuilds a Notification from persisted state.
func Reconstruct(
	id int64,
	userID uuid.UUID,
	kind Kind,
	payload map[string]any,
	readAt *time.Time,
	createdAt time.Time,
) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		kind:      kind,
		payload:   payload,
		readAt:    readAt,
		createdAt: createdAt,
	}
}

func (n *Notification) ID() int64            { return n.id }
func (n *Notification) UserID() uuid.UUID    { return n.userID }
func (n *Notification) Kind() Kind           { return n.kind }
func (n *Notification) ReadAt() *time.Time   { return n.readAt }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// Payload returns the kind-specific payload map.
func (n *Notification) Payload() map[string]any { return n.payload }

// MarkRead sets the read marker once; later calls keep the first time.
func (n *Notification) MarkRead(at time.Time) {
	if n.readAt == nil {
		n.readAt = &at
	}
}
