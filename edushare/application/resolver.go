package application

import (
	"context"

	"github.com/edushare/edushare/edushare/domain"
	"github.com/rs/zerolog/log"
)

// Labels used when no profile name can be resolved for an author.
const (
	anonymousLabel     = "Anonymous"
	fallbackLabelChars = 4
)

// DisplayNameResolver turns a user id into a human-readable label. It never
// fails: unknown users get a deterministic fallback, an empty id gets the
// anonymous label. Injected into the content service so it can be tested
// without the authentication backend.
type DisplayNameResolver interface {
	ResolveDisplayName(ctx context.Context, userID string) string
}

type profileResolver struct {
	profiles domain.ProfileRepository
}

// NewDisplayNameResolver resolves names through the profiles collection, the
// single source of truth for display names.
func NewDisplayNameResolver(profiles domain.ProfileRepository) DisplayNameResolver {
	return &profileResolver{profiles: profiles}
}

func (r *profileResolver) ResolveDisplayName(ctx context.Context, userID string) string {
	if userID == "" {
		return anonymousLabel
	}

	profile, err := r.profiles.GetProfile(ctx, userID)
	if err != nil {
		if !domain.IsNotFound(err) {
			log.Warn().Err(err).Str("userID", userID).Msg("Failed to resolve display name")
		}
		return FallbackLabel(userID)
	}
	if profile.Name == "" {
		return FallbackLabel(userID)
	}

	return profile.Name
}

// FallbackLabel derives the label shown for users without a profile:
// "User-" plus the first four characters of the user id.
func FallbackLabel(userID string) string {
	short := userID
	if len(short) > fallbackLabelChars {
		short = short[:fallbackLabelChars]
	}
	return "User-" + short
}
