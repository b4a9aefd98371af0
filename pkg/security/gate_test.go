package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminGate_Check(t *testing.T) {
	gate, err := NewAdminGate("admin123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, gate.Enabled())
	assert.True(t, gate.Check("admin123"))
	assert.False(t, gate.Check("admin124"))
	assert.False(t, gate.Check(""))
}

func TestAdminGate_NoPasswordRejectsEverything(t *testing.T) {
	gate, err := NewAdminGate("", bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, gate.Enabled())
	assert.False(t, gate.Check(""))
	assert.False(t, gate.Check("anything"))
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	long := strings.Repeat("a", 80)

	hash, err := h.Hash(long)
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, long))
	assert.Error(t, h.Compare(hash, long[:72]))
}
