package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountPasswordHashing(t *testing.T) {
	var account Account
	require.NoError(t, account.SetPassword("swordfish"))

	assert.NotEqual(t, "swordfish", account.Password)
	assert.True(t, account.CheckPassword("swordfish"))
	assert.False(t, account.CheckPassword("Swordfish"))
	assert.False(t, account.CheckPassword(""))
}

func TestAccountPasswordRehash(t *testing.T) {
	var account Account
	require.NoError(t, account.SetPassword("first"))
	firstHash := account.Password

	require.NoError(t, account.SetPassword("second"))
	assert.NotEqual(t, firstHash, account.Password)
	assert.False(t, account.CheckPassword("first"))
	assert.True(t, account.CheckPassword("second"))
}
