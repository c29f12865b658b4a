package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupConfigEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(tmp, "run"))
	t.Setenv(EnvPrefix+"CONFIG_PATH", "")
	reset()
	return tmp
}

func TestLoadDefaults(t *testing.T) {
	tmp := setupConfigEnv(t)
	Load()

	require.Equal(t, filepath.Join(tmp, "run", "volume.id"), Get("record_path", ""))
	require.Equal(t, 512, GetInt("interval", 0))
	require.Equal(t, "@DEFAULT_SINK@", Get("sink", ""))
	require.Equal(t, "pactl", Get("audio_tool", ""))
	require.Equal(t, "notify-send", Get("notify_tool", ""))
	require.Equal(t, "Volume", Get("notification_title", ""))
	require.False(t, GetBool("logging_enabled", true))
	require.Equal(t, "default", Get("missing", "default"))
}

func TestRuntimeDirFallsBackToRunUser(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	require.Equal(t, filepath.Join("/run/user", strconv.Itoa(os.Getuid())), RuntimeDir())
}

func TestConfigLoadingPrecedence(t *testing.T) {
	tmp := setupConfigEnv(t)

	configFile := filepath.Join(tmp, "custom.toml")
	content := `
interval = 1024
sink = "alsa_output.usb"
notify_tool = "dunstify"
logging_enabled = true
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	t.Setenv(EnvPrefix+"CONFIG_PATH", configFile)
	t.Setenv(EnvPrefix+"INTERVAL", "256")

	Load()

	require.Equal(t, 256, GetInt("interval", 0), "environment should override config file")
	require.Equal(t, "alsa_output.usb", Get("sink", ""))
	require.Equal(t, "dunstify", Get("notify_tool", ""))
	require.True(t, GetBool("logging_enabled", false))
}

func TestConfigFileInConfigDir(t *testing.T) {
	tmp := setupConfigEnv(t)
	dir := filepath.Join(tmp, "config", "volume-notify")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`record_path = "/tmp/vol.id"`), 0644))

	Load()

	require.Equal(t, "/tmp/vol.id", Get("record_path", ""))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	setupConfigEnv(t)
	t.Setenv(EnvPrefix+"INTERVAL", "-3")
	t.Setenv(EnvPrefix+"LOGGING_LEVEL", "verbose")
	t.Setenv(EnvPrefix+"DEBUG", "maybe")
	t.Setenv(EnvPrefix+"AUDIO_TOOL", "   ")

	Load()

	require.Equal(t, 512, GetInt("interval", 0))
	require.Equal(t, "info", Get("logging_level", ""))
	require.False(t, GetBool("debug", true))
	require.Equal(t, "pactl", Get("audio_tool", ""))
}

func TestMalformedConfigFileIsIgnored(t *testing.T) {
	tmp := setupConfigEnv(t)
	configFile := filepath.Join(tmp, "broken.toml")
	require.NoError(t, os.WriteFile(configFile, []byte("interval = = 3"), 0644))
	t.Setenv(EnvPrefix+"CONFIG_PATH", configFile)

	Load()

	require.Equal(t, 512, GetInt("interval", 0))
}
