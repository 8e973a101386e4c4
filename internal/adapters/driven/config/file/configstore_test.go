package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("forge.owner", "zenith-framework")
	require.NoError(t, err)

	val, ok := store.Get("forge.owner")
	assert.True(t, ok)
	assert.Equal(t, "zenith-framework", val)
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("history.limit", 42))

	assert.Equal(t, "", store.GetString("history.limit"))
	assert.Equal(t, "", store.GetString("nonexistent"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("history.limit", 42))
	assert.Equal(t, 42, store.GetInt("history.limit"))

	assert.Equal(t, 0, store.GetInt("nonexistent"))

	require.NoError(t, store.Set("forge.owner", "not an int"))
	assert.Equal(t, 0, store.GetInt("forge.owner"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("watch.extensions", []string{".py", ".toml"}))
	assert.Equal(t, []string{".py", ".toml"}, store.GetStringSlice("watch.extensions"))

	assert.Nil(t, store.GetStringSlice("nonexistent"))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("watch.debounce_seconds", 5))
	require.NoError(t, store.Set("forge.repo", "zenith"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 5, reloaded.GetInt("watch.debounce_seconds"))
	assert.Equal(t, "zenith", reloaded.GetString("forge.repo"))
}

func TestNewConfigStore_CorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("not = [valid toml"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := []byte("[forge]\nowner = \"zenith-framework\"\nrepo = \"zenith\"\n")
	require.NoError(t, os.WriteFile(configPath, content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "zenith-framework", store.GetString("forge.owner"))
	assert.Equal(t, "zenith", store.GetString("forge.repo"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("forge.token", "ghp_secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
