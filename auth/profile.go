package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	AvatarURL string    `json:"avatar_url" db:"avatar_url"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	// Create must return ErrProfileConflict when user_id already exists.
	Create(ctx context.Context, profile *Profile) error
}

// NewProfileFromIdentity fills a fresh profile from the best available
// identity metadata.
func NewProfileFromIdentity(identity Identity) *Profile {
	first := identity.meta("first_name", "given_name")
	last := identity.meta("last_name", "family_name")

	if first == "" && last == "" {
		if full := identity.meta("full_name", "name"); full != "" {
			parts := strings.SplitN(full, " ", 2)
			first = parts[0]
			if len(parts) == 2 {
				last = strings.TrimSpace(parts[1])
			}
		}
	}
	if first == "" {
		first = emailLocalPart(identity.Email)
	}

	phone := identity.meta("phone", "phone_number")
	if phone == "" {
		phone = identity.Phone
	}

	return &Profile{
		ID:        uuid.New(),
		UserID:    identity.ID,
		FirstName: first,
		LastName:  last,
		AvatarURL: identity.meta("avatar_url", "picture"),
		Phone:     phone,
	}
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

type ProfileResolver struct {
	repo ProfileRepository
}

func NewProfileResolver(repo ProfileRepository) *ProfileResolver {
	return &ProfileResolver{repo: repo}
}

// Resolve returns the caller's profile, creating it on first use. A
// concurrent first request that wins the insert is picked up by re-reading.
func (r *ProfileResolver) Resolve(ctx context.Context, identity *Identity) (*Profile, error) {
	if identity == nil || identity.ID == "" {
		return nil, ErrUnauthenticated
	}

	profile, err := r.repo.FindByUserID(ctx, identity.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	profile = NewProfileFromIdentity(*identity)
	err = r.repo.Create(ctx, profile)
	if errors.Is(err, ErrProfileConflict) {
		return r.repo.FindByUserID(ctx, identity.ID)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Lookup never creates; read paths use it so browsing leaves no rows behind.
func (r *ProfileResolver) Lookup(ctx context.Context, identity *Identity) (*Profile, error) {
	if identity == nil || identity.ID == "" {
		return nil, ErrUnauthenticated
	}
	return r.repo.FindByUserID(ctx, identity.ID)
}
