package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"RUN_ADDRESS", "SEED_FILE", "KNOWN_USERS", "LOG_LEVEL", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	// .env из рабочей директории пакета не должен влиять на тесты.
	t.Chdir(t.TempDir())
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	conf, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultRunAddress, conf.RunAddress)
	assert.Empty(t, conf.SeedFile)
	assert.Empty(t, conf.KnownUsers)
	assert.Equal(t, defaultShutdownTimeout, conf.ShutdownTimeout)
}

func TestLoadConfig_Flags(t *testing.T) {
	clearEnv(t)

	conf, err := LoadConfig([]string{
		"-a", ":9090",
		"-s", "seed.yaml",
		"-u", "user1, user2,,",
		"-l", "warn",
		"-t", "2s",
	})
	require.NoError(t, err)
	assert.Equal(t, ":9090", conf.RunAddress)
	assert.Equal(t, "seed.yaml", conf.SeedFile)
	assert.Equal(t, []string{"user1", "user2"}, conf.KnownUsers)
	assert.Equal(t, "warn", conf.LogLevel)
	assert.Equal(t, 2*time.Second, conf.ShutdownTimeout)
}

func TestLoadConfig_EnvOverridesFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("RUN_ADDRESS", ":7070")
	t.Setenv("KNOWN_USERS", "alice,bob")
	t.Setenv("SHUTDOWN_TIMEOUT", "10s")

	conf, err := LoadConfig([]string{"-a", ":9090", "-u", "carol", "-t", "1s"})
	require.NoError(t, err)
	assert.Equal(t, ":7070", conf.RunAddress)
	assert.Equal(t, []string{"alice", "bob"}, conf.KnownUsers)
	assert.Equal(t, 10*time.Second, conf.ShutdownTimeout)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	t.Cleanup(func() { _ = os.Unsetenv("SEED_FILE") })

	require.NoError(t, os.WriteFile(filepath.Join(".", dotEnvFile), []byte("SEED_FILE=from-dotenv.toml\n"), 0o600))

	conf, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.toml", conf.SeedFile)
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig([]string{"-t", "0s"})
	require.Error(t, err)

	_, err = LoadConfig([]string{"-unknown"})
	require.Error(t, err)

	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	_, err = LoadConfig(nil)
	require.Error(t, err)
}
