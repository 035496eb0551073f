package auth

import (
	"context"
	"net/http"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type contextKey string

const identityKey = contextKey("identity")

// Verifier verifies raw tokens.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Resolver maps an inbound request to the caller's identity.
type Resolver struct {
	verifier Verifier
}

// NewResolver creates a resolver backed by the given verifier.
func NewResolver(v Verifier) *Resolver {
	return &Resolver{verifier: v}
}

// Resolve returns the identity of the request's caller. A request that was
// already resolved (see WithIdentity) is answered from its context.
func (r *Resolver) Resolve(req *http.Request) (Identity, error) {
	if id, ok := IdentityFromContext(req.Context()); ok {
		return id, nil
	}
	token, present := TokenFromRequest(req)
	return r.ResolveToken(token, present)
}

// ResolveToken resolves an already-extracted token.
func (r *Resolver) ResolveToken(token string, present bool) (Identity, error) {
	if !present {
		return Identity{}, ErrNotAuthenticated
	}
	claims, err := r.verifier.Verify(token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// WithIdentity stores a resolved identity in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
