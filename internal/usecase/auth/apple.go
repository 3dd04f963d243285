package auth

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

const (
	appleIssuer  = "https://appleid.apple.com"
	appleJWKSURL = appleIssuer + "/auth/keys"
)

// AppleVerifier validates Sign in with Apple identity tokens against
// Apple's published JWKS.
type AppleVerifier struct {
	audience string
	keys     jwt.Keyfunc
}

// NewAppleVerifier fetches Apple's JWKS; the key set refreshes itself in the
// background for the lifetime of the process.
func NewAppleVerifier(ctx context.Context, audience string) (*AppleVerifier, error) {
	kf, err := keyfunc.NewDefaultCtx(ctx, []string{appleJWKSURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load apple JWKS: %w", err)
	}
	return &AppleVerifier{audience: audience, keys: kf.Keyfunc}, nil
}

func (v *AppleVerifier) Verify(ctx context.Context, rawToken string) (*ProviderIdentity, error) {
	token, err := jwt.Parse(rawToken, v.keys,
		jwt.WithIssuer(appleIssuer),
		jwt.WithAudience(v.audience),
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("apple token validation: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("apple token validation: unexpected claims type")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("apple token validation: missing subject")
	}
	email, _ := claims["email"].(string)

	// Apple only sends the name on first authorization and not inside the
	// identity token, so GivenName/FamilyName stay empty here.
	return &ProviderIdentity{Subject: sub, Email: email}, nil
}
