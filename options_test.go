package shiftmate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "shiftmate.yaml")
	require.NoError(t, os.WriteFile(location, []byte(`
baseURL: https://api.shiftmate.test/v1
timeout: 5s
tokenStorageURL: sqlite:///var/lib/shiftmate/tokens.db
authPaths:
  - /auth/
log:
  level: debug
  format: text
`), 0o644))

	options, err := LoadOptions(location)
	require.NoError(t, err)
	assert.Equal(t, "https://api.shiftmate.test/v1", options.BaseURL)
	assert.Equal(t, 5*time.Second, options.Timeout)
	assert.Equal(t, 10*time.Second, options.RefreshTimeout)
	assert.Equal(t, "sqlite:///var/lib/shiftmate/tokens.db", options.TokenStorageURL)
	assert.Equal(t, []string{"/auth/"}, options.AuthPaths)
	assert.Equal(t, "debug", options.Log.Level)
	assert.Equal(t, "shiftmate", options.Metrics.Namespace)

	t.Setenv("SHIFTMATE_TIMEOUT", "45s")
	options, err = LoadOptions(location)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, options.Timeout, "env overrides yaml")
}

func TestLoadOptions_Fallbacks(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "explicit missing file")

	t.Setenv(ConfigEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = LoadOptions("")
	assert.Error(t, err, "missing file named by env")

	t.Setenv(ConfigEnv, "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("SHIFTMATE_BASE_URL", "http://127.0.0.1:9000")
	options, err := LoadOptions("")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", options.BaseURL)
	assert.Equal(t, 30*time.Second, options.Timeout)
	assert.Equal(t, "json", options.Log.Format)
}

func TestClientOptions_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		options     ClientOptions
		expectError bool
	}{
		{description: "valid", options: ClientOptions{BaseURL: "https://api.test", Timeout: time.Second, RefreshTimeout: time.Second}},
		{description: "relative url", options: ClientOptions{BaseURL: "/api", Timeout: time.Second, RefreshTimeout: time.Second}, expectError: true},
		{description: "unsupported scheme", options: ClientOptions{BaseURL: "ftp://api.test", Timeout: time.Second, RefreshTimeout: time.Second}, expectError: true},
		{description: "zero timeout", options: ClientOptions{BaseURL: "https://api.test", RefreshTimeout: time.Second}, expectError: true},
	}
	for _, testCase := range testCases {
		err := testCase.options.Validate()
		if testCase.expectError {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
	}
}
