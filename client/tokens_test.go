package client

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)
	local := NewTokenStoreWith(ring, "http://localhost:8080")
	remote := NewTokenStoreWith(ring, "https://todos.example.com")

	token, err := local.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, local.Save("tok-local"))
	require.NoError(t, remote.Save("tok-remote"))

	token, err = local.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-local", token)

	require.NoError(t, local.Clear())
	token, err = local.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = remote.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-remote", token)
}
