package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morleaf/leaf_chain/internal/models"
)

func TestCodec_AccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-jwt-secret"))

	token, err := codec.IssueAccessToken("alice", "a@x.com", 42, models.RoleCentra, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.ParseAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleCentra, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestCodec_RefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-jwt-secret"))

	token, err := codec.IssueRefreshToken(7, 7*24*time.Hour)
	require.NoError(t, err)

	claims, err := codec.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestCodec_WrongSecret_Rejected(t *testing.T) {
	t.Parallel()

	issuer := NewCodec([]byte("secret-one"))
	verifier := NewCodec([]byte("secret-two"))

	token, err := issuer.IssueAccessToken("alice", "a@x.com", 1, models.RoleCentra, time.Hour)
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_ExpiredToken_Rejected(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-jwt-secret"))

	token, err := codec.IssueAccessToken("alice", "a@x.com", 1, models.RoleCentra, -time.Minute)
	require.NoError(t, err)

	_, err = codec.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Garbage_Rejected(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-jwt-secret"))

	_, err := codec.ParseRefreshToken("not-a-valid-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
