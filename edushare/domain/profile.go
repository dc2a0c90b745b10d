package domain

import (
	"context"
	"time"
)

// Profile is the denormalized user id → display name record consulted
// whenever a post or comment needs an author label. It is created once at
// signup and keyed on the user id, so at most one exists per user.
type Profile struct {
	UserID    string
	Name      string
	CreatedAt time.Time
}

type ProfileRepository interface {
	// CreateProfile persists the profile keyed on Profile.UserID. Returns a
	// conflict error if one already exists for that user.
	CreateProfile(ctx context.Context, p *Profile) error

	GetProfile(ctx context.Context, userID string) (*Profile, error)
}
