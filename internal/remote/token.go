package remote

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired indicates the configured bearer token's exp claim has passed.
	ErrTokenExpired = errors.New("remote: bearer token expired")
)

// TokenSource yields the bearer token attached to outbound API requests.
type TokenSource interface {
	Token() (string, error)
}

type staticTokenSource struct {
	token string
	clock func() time.Time
}

// NewStaticTokenSource returns a TokenSource for a fixed bearer token. When
// the token is a JWT its exp claim is inspected (without signature
// verification, the device has no key) so a known-dead token fails fast
// instead of producing a guaranteed 401. Opaque tokens pass through.
func NewStaticTokenSource(token string) TokenSource {
	return &staticTokenSource{token: token, clock: time.Now}
}

func (s *staticTokenSource) Token() (string, error) {
	if s.token == "" {
		return "", nil
	}

	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(s.token, &claims)
	if err != nil {
		// Not a JWT; let the server judge it.
		return s.token, nil
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(s.clock()) {
		return "", fmt.Errorf("%w: at %s", ErrTokenExpired, claims.ExpiresAt.Format(time.RFC3339))
	}
	return s.token, nil
}
