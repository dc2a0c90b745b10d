package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/edushare/edushare/edushare/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// LoginResult is what a successful login hands back: the session, a signed
// bearer token referencing it, and the sanitized user.
type LoginResult struct {
	Token   string
	Session *domain.Session
	User    *domain.User
}

// AuthService wraps account, session, and profile management. Display names
// live in the profiles collection, decoupled from the identity record, so
// they can diverge from account names later without a migration.
type AuthService struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
	profiles domain.ProfileRepository

	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(
	accounts domain.AccountRepository,
	sessions domain.SessionRepository,
	profiles domain.ProfileRepository,
	secret []byte,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		accounts:   accounts,
		sessions:   sessions,
		profiles:   profiles,
		secret:     secret,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// CreateAccount registers a new identity, creates the matching profile, and
// logs the new user in. Profile creation is best-effort: the account stands
// even if the denormalized record could not be written.
func (s *AuthService) CreateAccount(ctx context.Context, email, password, name string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	if !strings.Contains(email, "@") {
		return nil, domain.Validation("invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, domain.Validation("password must be at least %d characters", minPasswordLength)
	}
	if name == "" {
		return nil, domain.Validation("name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:    account.ID,
		Name:      name,
		CreatedAt: account.CreatedAt,
	}
	if err := s.profiles.CreateProfile(ctx, profile); err != nil {
		// The account already exists; a missing profile only degrades the
		// author label, so log and move on.
		log.Error().Err(err).Str("userID", account.ID).Msg("Failed to create profile")
	}

	return s.Login(ctx, email, password)
}

// Login verifies the credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.Validation("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return nil, domain.Validation("invalid email or password")
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    account.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.signToken(session)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &LoginResult{
		Token:   token,
		Session: session,
		User:    account.User(),
	}, nil
}

// CurrentUser resolves the user behind a bearer token. A missing, invalid,
// expired, or revoked session is the normal signed-out outcome and yields
// (nil, nil); only backend failures are errors.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessionFromToken(ctx, token)
	if err != nil || session == nil {
		return nil, err
	}

	account, err := s.accounts.GetAccount(ctx, session.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return account.User(), nil
}

// Logout deletes every session for the token's user, signing them out of all
// clients. It reports success rather than raising.
func (s *AuthService) Logout(ctx context.Context, token string) bool {
	session, err := s.sessionFromToken(ctx, token)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve session for logout")
		return false
	}
	if session == nil {
		return false
	}

	if _, err := s.sessions.DeleteSessionsForUser(ctx, session.UserID); err != nil {
		log.Error().Err(err).Str("userID", session.UserID).Msg("Failed to delete sessions")
		return false
	}

	return true
}

// GetUserByID looks up the profile for a user id. Absence is the normal
// (nil, nil) outcome.
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, nil
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return profile, nil
}

func (s *AuthService) signToken(session *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   session.UserID,
		ID:        session.ID,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// sessionFromToken validates the token and loads its session document.
// Returns (nil, nil) for anything that just means "not signed in".
func (s *AuthService) sessionFromToken(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, nil
	}

	session, err := s.sessions.GetSession(ctx, claims.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if session.Expired(s.now().UTC()) {
		return nil, nil
	}

	return session, nil
}
