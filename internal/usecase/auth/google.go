package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleVerifier validates Google ID tokens against the app's OAuth client
// ID (the expected audience).
type GoogleVerifier struct {
	audience string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{
		audience: audience,
		validate: idtoken.Validate,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*ProviderIdentity, error) {
	payload, err := v.validate(ctx, rawToken, v.audience)
	if err != nil {
		return nil, fmt.Errorf("google token validation: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	given, _ := payload.Claims["given_name"].(string)
	family, _ := payload.Claims["family_name"].(string)

	return &ProviderIdentity{
		Subject:    payload.Subject,
		Email:      email,
		GivenName:  given,
		FamilyName: family,
	}, nil
}
