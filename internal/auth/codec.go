// Package auth issues and verifies the signed bearer tokens used by the API
// and resolves the caller's identity from an Authorization header.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/universe-repo/internal/config"
	"github.com/iliyamo/universe-repo/internal/model"
)

// signingMethod is the only algorithm the codec signs with or accepts.
var signingMethod = jwt.SigningMethodHS256

// LoginResponse is what a successful login returns to the client.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expiration_date"`
}

// Codec mints and parses access tokens. It holds an immutable copy of the
// token configuration and is safe for concurrent use.
type Codec struct {
	cfg config.TokenConfig
	key []byte
	now func() time.Time
}

// NewCodec validates cfg and returns a codec bound to it.
func NewCodec(cfg config.TokenConfig) (*Codec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Codec{cfg: cfg, key: []byte(cfg.Secret), now: time.Now}, nil
}

// Issue signs an access token for user. The refresh token is passed through
// unchanged; rotation is not implemented. ExpiresAt is the token's exp claim
// in local time.
func (c *Codec) Issue(user model.User) (LoginResponse, error) {
	exp := jwt.NewNumericDate(c.now().Add(time.Duration(c.cfg.AccessTokenExpiration) * time.Minute))
	claims := Claims{
		Name: user.Email,
		Sid:  user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.cfg.Issuer,
			Audience:  jwt.ClaimStrings{c.cfg.Audience},
			ExpiresAt: exp,
		},
	}
	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(c.key)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}
	return LoginResponse{
		AccessToken:  signed,
		RefreshToken: user.RefreshToken,
		ExpiresAt:    exp.Time.Local(),
	}, nil
}

// VerifySignatureOnly checks that token was signed with the configured
// secret using HS256. Audience, issuer and expiry are NOT checked: expired
// tokens are accepted. Use VerifyFresh to authorize a request.
func (c *Codec) VerifySignatureOnly(token string) (Principal, error) {
	return c.parse(token, jwt.WithoutClaimsValidation())
}

// VerifyFresh checks the signature and also requires a matching issuer and
// audience and an unexpired exp claim.
func (c *Codec) VerifyFresh(token string) (Principal, error) {
	return c.parse(token,
		jwt.WithIssuer(c.cfg.Issuer),
		jwt.WithAudience(c.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
}

func (c *Codec) parse(token string, opts ...jwt.ParserOption) (Principal, error) {
	claims := &Claims{}
	opts = append(opts, jwt.WithValidMethods([]string{signingMethod.Alg()}))
	tok, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != signingMethod.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return c.key, nil
	}, opts...)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return Principal{}, ErrInvalidToken
	}
	return principalFrom(claims), nil
}
