package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, InputRaw, cfg.Input)
	assert.Equal(t, DisplayLine, cfg.Display)
	assert.False(t, cfg.Sound)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.True(t, cfg.Color)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "ticktock.yaml", `
input: line
sound: true
logDir: /tmp/tt
keys:
  toggle: "p"
  quit: "x"
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, InputLine, cfg.Input)
	assert.Equal(t, DisplayLine, cfg.Display)
	assert.True(t, cfg.Sound)
	assert.Equal(t, "/tmp/tt", cfg.LogDir)
	assert.Equal(t, "p", cfg.Keys.Toggle)
	assert.Equal(t, "x", cfg.Keys.Quit)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "ticktock.toml", "display = \"SCREEN\"\ncolor = false\n")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, DisplayScreen, cfg.Display)
	assert.False(t, cfg.Color)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "ticktock.yaml", "input: line\n")
	t.Setenv("TICKTOCK_INPUT", "raw")
	t.Setenv("TICKTOCK_DEBUG", "true")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, InputRaw, cfg.Input)
	assert.True(t, cfg.Debug)
}

func TestLoadEnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "TICKTOCK_SOUND=true\nTICKTOCK_KEYS_QUIT=z\n")

	// godotenv sets process env; register cleanup for the keys it writes
	t.Setenv("TICKTOCK_SOUND", "")
	t.Setenv("TICKTOCK_KEYS_QUIT", "")
	os.Unsetenv("TICKTOCK_SOUND")
	os.Unsetenv("TICKTOCK_KEYS_QUIT")

	cfg, err := Load("", envFile)
	require.NoError(t, err)

	assert.True(t, cfg.Sound)
	assert.Equal(t, "z", cfg.Keys.Quit)
}

func TestLoadMissingFiles(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.Error(t, err)

	_, err = Load("", filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", Config{Input: InputRaw, Display: DisplayLine}, true},
		{"line input", Config{Input: InputLine, Display: DisplayLine}, true},
		{"screen", Config{Input: InputRaw, Display: DisplayScreen}, true},
		{"unknown input", Config{Input: "mouse", Display: DisplayLine}, false},
		{"unknown display", Config{Input: InputRaw, Display: "gui"}, false},
		{"screen with line input", Config{Input: InputLine, Display: DisplayScreen}, false},
		{"extra keys", Config{Input: InputRaw, Display: DisplayLine, Keys: KeysConfig{Toggle: "pP", Quit: "x"}}, true},
		{"key conflict", Config{Input: InputRaw, Display: DisplayLine, Keys: KeysConfig{Toggle: "px", Quit: "x"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}
