// Package user holds the account entity the rest of the pipeline keys on.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/domain/store"
)

// User is an account. The pipeline only reads users; account lifecycle
// lives outside this system.
type User struct {
	id        uuid.UUID
	email     string
	fullName  string
	createdAt time.Time
}

// New creates a user account.
func New(email, fullName string) User {
	return User{
		id:        uuid.New(),
		email:     email,
		fullName:  fullName,
		createdAt: time.Now().UTC(),
	}
}

// Reconstruct rebuilds a User from persisted state.
func Reconstruct(id uuid.UUID, email, fullName string, createdAt time.Time) User {
	return User{id: id, email: email, fullName: fullName, createdAt: createdAt}
}

func (u User) ID() uuid.UUID        { return u.id }
func (u User) Email() string        { return u.email }
func (u User) FullName() string     { return u.fullName }
func (u User) CreatedAt() time.Time { return u.createdAt }

// Store persists user accounts.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (User, error)
	Find(ctx context.Context, options ...store.Option) ([]User, error)
	Save(ctx context.Context, u User) error
}

// WithEmail filters users by email address.
func WithEmail(email string) store.Option {
	return store.WithCondition("email", email)
}
