package auth

import (
	"fmt"

	"github.com/iliyamo/universe-repo/internal/common"
)

var (
	// ErrInvalidToken is returned when a token cannot be parsed, its signature
	// does not verify, or it was signed with an unexpected algorithm.
	ErrInvalidToken = fmt.Errorf("invalid token: %w", common.ErrUnauthorized)

	// ErrInvalidAuthHeader is returned when the Authorization value has no
	// token segment after the scheme.
	ErrInvalidAuthHeader = fmt.Errorf("invalid authorization header: %w", common.ErrUnauthorized)

	// ErrNoIdentityClaim is returned when a genuine token carries no sid claim.
	ErrNoIdentityClaim = fmt.Errorf("token has no identity claim: %w", common.ErrInvalidOperation)
)
