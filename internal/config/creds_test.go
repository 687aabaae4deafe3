package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parishworks/vestry/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCredentialStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "credentials.json")
	store := NewFileCredentialStore(path)

	t.Run("empty store reports no credentials", func(t *testing.T) {
		_, err := store.APIKey()
		assert.ErrorIs(t, err, common.ErrNoCredentials)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, store.SetAPIKey("pk_test_123"))

		key, err := store.APIKey()
		require.NoError(t, err)
		assert.Equal(t, "pk_test_123", key)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("clear removes the key", func(t *testing.T) {
		require.NoError(t, store.Clear())
		_, err := store.APIKey()
		assert.ErrorIs(t, err, common.ErrNoCredentials)
	})

	t.Run("clearing twice is fine", func(t *testing.T) {
		assert.NoError(t, store.Clear())
	})

	t.Run("empty key rejected", func(t *testing.T) {
		assert.ErrorIs(t, store.SetAPIKey(""), common.ErrInvalidConfig)
	})
}
