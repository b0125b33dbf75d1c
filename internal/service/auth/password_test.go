package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meandevstar/atlas-backend/internal/service/auth"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$2a$"))
	assert.NotContains(t, digest, "correct horse")

	assert.NoError(t, hasher.Compare(digest, "correct horse battery staple"))
	assert.Error(t, hasher.Compare(digest, "wrong password"))
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	t.Parallel()

	hasher := auth.NewBcryptHasher(0)
	digest, err := hasher.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasherDigestsDiffer(t *testing.T) {
	t.Parallel()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	a, err := hasher.Hash("pw")
	require.NoError(t, err)
	b, err := hasher.Hash("pw")
	require.NoError(t, err)

	// Salting makes every digest unique.
	assert.NotEqual(t, a, b)
	assert.NoError(t, hasher.Compare(a, "pw"))
	assert.NoError(t, hasher.Compare(b, "pw"))
}
