package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte("DB_DRIVER: sqlite\nDB_PATH: test.db\nJWT_SECRET: from-file\n"), 0o600)
	assert.NoError(t, err)

	LoadConfigFile(path)
	t.Cleanup(func() { config = Config{} })

	t.Run("file value", func(t *testing.T) {
		assert.Equal(t, "sqlite", GetConfig("DB_DRIVER"))
		assert.Equal(t, "test.db", GetConfig("DB_PATH"))
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "from-env")
		assert.Equal(t, "from-env", GetConfig("JWT_SECRET"))
	})

	t.Run("default", func(t *testing.T) {
		assert.Equal(t, "8080", GetConfig("APP_PORT"))
	})

	t.Run("unknown key", func(t *testing.T) {
		assert.Equal(t, "", GetConfig("NOPE"))
	})
}

func TestLoadConfigFileMissing(t *testing.T) {
	LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Equal(t, "json", GetConfig("LOG_FORMAT"))
}
