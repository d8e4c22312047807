package vikunja

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// checkTokenExpiry rejects a board token that is a JWT with an expiry in
// the past. Signature verification is impossible client-side (we do not
// hold the board's signing key) and opaque non-JWT tokens are accepted
// as-is; the point is to fail fast on a stale credential instead of
// failing every API call mid-pass.
func checkTokenExpiry(token string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Not a JWT; some board deployments issue opaque API tokens.
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(now) {
		return fmt.Errorf("%w: expired at %s", ErrExpiredToken, exp.Format(time.RFC3339))
	}
	return nil
}
