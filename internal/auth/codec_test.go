package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/universe-repo/internal/common"
	"github.com/iliyamo/universe-repo/internal/config"
	"github.com/iliyamo/universe-repo/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		Issuer:                 "universe-repo",
		Audience:               "universe-clients",
		Secret:                 testSecret,
		AccessTokenExpiration:  30,
		RefreshTokenExpiration: 7,
	}
}

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(testTokenConfig())
	require.NoError(t, err)
	return c
}

func testUser() model.User {
	return model.User{ID: uuid.New(), Email: "ada@example.com", RefreshToken: "rt-123"}
}

func TestNewCodec_RejectsShortSecret(t *testing.T) {
	cfg := testTokenConfig()
	cfg.Secret = "short"
	_, err := NewCodec(cfg)
	assert.Error(t, err)
}

func TestIssue_ClaimsAndExpiry(t *testing.T) {
	c := newTestCodec(t)
	fixed := time.Date(2030, 5, 1, 12, 0, 0, 500, time.UTC)
	c.now = func() time.Time { return fixed }
	u := testUser()

	resp, err := c.Issue(u)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "rt-123", resp.RefreshToken)
	assert.Equal(t, time.Local, resp.ExpiresAt.Location())
	assert.True(t, resp.ExpiresAt.Equal(fixed.Add(30*time.Minute).Truncate(time.Second)))

	p, err := c.VerifySignatureOnly(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), p.SubjectID)
	assert.Equal(t, "ada@example.com", p.DisplayName)
	assert.Equal(t, "universe-repo", p.Issuer)
	assert.Equal(t, []string{"universe-clients"}, p.Audience)
	assert.True(t, p.ExpiresAt.Equal(resp.ExpiresAt))
}

func TestVerifySignatureOnly_AcceptsExpiredToken(t *testing.T) {
	c := newTestCodec(t)
	c.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	u := testUser()
	resp, err := c.Issue(u)
	require.NoError(t, err)
	c.now = time.Now

	p, err := c.VerifySignatureOnly(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), p.SubjectID)

	_, err = c.VerifyFresh(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySignatureOnly_IgnoresIssuerAndAudience(t *testing.T) {
	issuer := newTestCodec(t)
	resp, err := issuer.Issue(testUser())
	require.NoError(t, err)

	cfg := testTokenConfig()
	cfg.Issuer = "someone-else"
	cfg.Audience = "other-clients"
	verifier, err := NewCodec(cfg)
	require.NoError(t, err)

	_, err = verifier.VerifySignatureOnly(resp.AccessToken)
	assert.NoError(t, err)

	_, err = verifier.VerifyFresh(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySignatureOnly_RejectsWrongSecret(t *testing.T) {
	c := newTestCodec(t)
	resp, err := c.Issue(testUser())
	require.NoError(t, err)

	cfg := testTokenConfig()
	cfg.Secret = "ffffffffffffffffffffffffffffffff"
	other, err := NewCodec(cfg)
	require.NoError(t, err)

	_, err = other.VerifySignatureOnly(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestVerifySignatureOnly_RejectsOtherAlgorithms(t *testing.T) {
	c := newTestCodec(t)
	claims := Claims{Sid: uuid.NewString()}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = c.VerifySignatureOnly(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.VerifySignatureOnly(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySignatureOnly_RejectsGarbage(t *testing.T) {
	c := newTestCodec(t)
	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		_, err := c.VerifySignatureOnly(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, tok)
	}
}

func TestVerifyFresh_AcceptsCurrentToken(t *testing.T) {
	c := newTestCodec(t)
	u := testUser()
	resp, err := c.Issue(u)
	require.NoError(t, err)

	p, err := c.VerifyFresh(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), p.SubjectID)
}

func TestVerifyFresh_RequiresExpiry(t *testing.T) {
	c := newTestCodec(t)
	claims := Claims{
		Sid: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   "universe-repo",
			Audience: jwt.ClaimStrings{"universe-clients"},
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = c.VerifyFresh(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = c.VerifySignatureOnly(tok)
	assert.NoError(t, err)
}

func TestCodec_ConcurrentUse(t *testing.T) {
	c := newTestCodec(t)
	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			u := testUser()
			resp, err := c.Issue(u)
			if err != nil {
				done <- err
				return
			}
			_, err = c.VerifySignatureOnly(resp.AccessToken)
			done <- err
		}()
	}
	for i := 0; i < 16; i++ {
		assert.NoError(t, <-done)
	}
}
