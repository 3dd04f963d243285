package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/logging"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

// ProviderIdentity is what a verifier extracts from a provider ID token.
type ProviderIdentity struct {
	Subject    string
	Email      string
	GivenName  string
	FamilyName string
}

// TokenVerifier validates a raw provider token and returns the identity it
// asserts. Implementations: GoogleVerifier, AppleVerifier.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*ProviderIdentity, error)
}

type SocialAuthUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	verifiers   map[domain.Provider]TokenVerifier
	jwtSecret   string
	sessionTTL  time.Duration
	log         logging.Logger
	now         func() time.Time
}

func NewSocialAuthUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	verifiers map[domain.Provider]TokenVerifier,
	jwtSecret string,
	sessionTTL time.Duration,
	log logging.Logger,
) *SocialAuthUseCase {
	return &SocialAuthUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		verifiers:   verifiers,
		jwtSecret:   jwtSecret,
		sessionTTL:  sessionTTL,
		log:         log,
		now:         time.Now,
	}
}

// AuthResult is returned to the handler after a successful sign-in.
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// SignIn verifies a provider ID token, upserts the user keyed by the
// provider subject, and opens a session.
func (uc *SocialAuthUseCase) SignIn(ctx context.Context, provider domain.Provider, rawToken, deviceInfo, ipAddress string) (*AuthResult, error) {
	verifier, ok := uc.verifiers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderNotConfigured, provider)
	}

	ident, err := verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProviderToken, err)
	}

	user, err := uc.userRepo.GetByProvider(ctx, provider, ident.Subject)
	isNewUser := false

	switch {
	case err == nil:
		// Keep the email current if the provider rotated it.
		if ident.Email != "" && ident.Email != user.Email {
			user.Email = ident.Email
			if err := uc.userRepo.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
		}
	case err == domain.ErrUserNotFound:
		user, err = uc.createUser(ctx, provider, ident)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		isNewUser = true
	default:
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID, deviceInfo, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		IsNewUser: isNewUser,
	}, nil
}

func (uc *SocialAuthUseCase) createUser(ctx context.Context, provider domain.Provider, ident *ProviderIdentity) (*domain.User, error) {
	user := &domain.User{
		Email:          ident.Email,
		OnboardingStep: domain.FirstStep,
	}
	subject := ident.Subject
	switch provider {
	case domain.ProviderGoogle:
		user.GoogleID = &subject
	case domain.ProviderApple:
		user.AppleID = &subject
	}
	if ident.GivenName != "" {
		name := ident.GivenName
		user.DisplayName = &name
	}
	if ident.FamilyName != "" {
		surname := ident.FamilyName
		user.Surname = &surname
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.profileRepo.Create(ctx, &domain.Profile{UserID: user.ID}); err != nil {
		// The profile row is created lazily elsewhere, so a failure here
		// does not invalidate the new account.
		uc.log.Warn(ctx, "failed to create profile row", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// createSession generates a JWT and stores a hashed session row.
func (uc *SocialAuthUseCase) createSession(ctx context.Context, userID int, deviceInfo, ipAddress string) (string, time.Time, error) {
	expiresAt := uc.now().Add(uc.sessionTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     uc.now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	session := &domain.Session{
		UserID:     userID,
		TokenHash:  uc.hashToken(tokenString),
		DeviceInfo: &deviceInfo,
		IPAddress:  &ipAddress,
		ExpiresAt:  expiresAt,
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// VerifyToken verifies a session JWT and returns the user ID.
func (uc *SocialAuthUseCase) VerifyToken(ctx context.Context, tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	session, err := uc.sessionRepo.GetByTokenHash(ctx, uc.hashToken(tokenString))
	if err != nil {
		return 0, domain.ErrSessionNotFound
	}
	if session.IsExpired() {
		return 0, domain.ErrSessionExpired
	}

	return int(userID), nil
}

// Logout revokes the session for the given token.
func (uc *SocialAuthUseCase) Logout(ctx context.Context, tokenString string) error {
	return uc.sessionRepo.DeleteByTokenHash(ctx, uc.hashToken(tokenString))
}

func (uc *SocialAuthUseCase) hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
