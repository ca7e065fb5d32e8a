package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by access tokens: the user's email as
// "name" and the user id as "sid", plus the registered claims.
type Claims struct {
	Name string `json:"name,omitempty"`
	Sid  string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the decoded identity of a verified token. It is built once by
// the codec; nothing downstream re-parses the token.
type Principal struct {
	SubjectID   string    // sid claim, empty when absent
	DisplayName string    // name claim, empty when absent
	Issuer      string    // iss claim
	Audience    []string  // aud claim
	ExpiresAt   time.Time // exp claim, zero when absent
}

// HasSubject reports whether the token carried an identity claim.
func (p Principal) HasSubject() bool { return p.SubjectID != "" }

func principalFrom(c *Claims) Principal {
	p := Principal{
		SubjectID:   c.Sid,
		DisplayName: c.Name,
		Issuer:      c.Issuer,
		Audience:    []string(c.Audience),
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	return p
}
