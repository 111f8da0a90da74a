package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyring_StoreAndFetch(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvKey, "")
	k := NewKeyring()

	_, err := k.GetKey()
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	require.NoError(t, k.SetKey("s3cret"))
	key, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", key)
	assert.True(t, k.IsAvailable())

	require.NoError(t, k.DeleteKey())
	assert.Error(t, k.DeleteKey())
}

func TestKeyring_EnvOverride(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvKey, "from-env")
	k := NewKeyring()

	require.NoError(t, k.SetKey("stored"))
	key, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}

func TestKeyring_RejectsEmpty(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, NewKeyring().SetKey(""))
}
