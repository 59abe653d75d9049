// Package identity resolves the authenticated caller identity for a request.
// Key management and token issuance live outside this system; the resolvers
// here only consume what the submission layer already authenticated.
package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated is returned when no caller identity can be resolved.
var ErrUnauthenticated = errors.New("caller identity not resolved")

// Resolver yields the authenticated identity for the current request.
type Resolver interface {
	Resolve(r *http.Request) (string, error)
}

// HeaderResolver trusts the identity asserted in a request header. It is meant
// for development and tests, where the submission layer is simulated.
type HeaderResolver struct {
	Header string
}

// DefaultIdentityHeader is the header HeaderResolver reads when none is set.
const DefaultIdentityHeader = "X-Caller-Identity"

func (h HeaderResolver) Resolve(r *http.Request) (string, error) {
	header := h.Header
	if header == "" {
		header = DefaultIdentityHeader
	}
	id := strings.TrimSpace(r.Header.Get(header))
	if id == "" {
		return "", fmt.Errorf("identity: missing %s header: %w", header, ErrUnauthenticated)
	}
	return id, nil
}

// TokenResolver verifies an HS256 bearer token and takes the subject claim as
// the caller identity.
type TokenResolver struct {
	Secret []byte
}

func (t TokenResolver) Resolve(r *http.Request) (string, error) {
	const op = "identity: bearer token"

	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return "", fmt.Errorf("%s: missing: %w", op, ErrUnauthenticated)
	}

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%s: %v: %w", op, err, ErrUnauthenticated)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("%s: missing subject claim: %w", op, ErrUnauthenticated)
	}
	return claims.Subject, nil
}
