package auth

import "strings"

// SignatureVerifier is the part of the codec the resolver depends on.
type SignatureVerifier interface {
	VerifySignatureOnly(token string) (Principal, error)
}

// Resolver recovers the requester's user id from an Authorization header.
type Resolver struct {
	verifier SignatureVerifier
}

// NewResolver returns a resolver delegating to v.
func NewResolver(v SignatureVerifier) *Resolver {
	return &Resolver{verifier: v}
}

// RequesterID returns the sid claim of the bearer token in header, which has
// the shape "<scheme> <token>". Only the second whitespace-separated segment
// is inspected and expiry is ignored.
func (r *Resolver) RequesterID(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return "", ErrInvalidAuthHeader
	}
	p, err := r.verifier.VerifySignatureOnly(parts[1])
	if err != nil {
		return "", err
	}
	if !p.HasSubject() {
		return "", ErrNoIdentityClaim
	}
	return p.SubjectID, nil
}
