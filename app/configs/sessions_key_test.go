package configs

import (
	"bytes"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndPrintSessionKeys_KeepsExistingLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_PASSWORD=secret\nDB_NAME=bloomie\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, GenerateAndPrintSessionKeys(&out, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.HasPrefix(text, "DB_PASSWORD=secret\nDB_NAME=bloomie\n"))
	assert.Contains(t, text, "APP_AUTH_KEY=")
	assert.Contains(t, text, "APP_ENC_KEY=")
	assert.Contains(t, text, "CSRF_KEY=")
	assert.Contains(t, out.String(), "APP_AUTH_KEY=")
}

func TestGenerateAndPrintSessionKeys_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultKeysFile)

	require.NoError(t, GenerateAndPrintSessionKeys(io.Discard, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	values := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		k, v, ok := strings.Cut(line, "=")
		require.True(t, ok)
		values[k] = v
	}

	keys, err := LoadSessionKeysFromEnv(ENV{
		AppAuthKey: values["APP_AUTH_KEY"],
		AppEncKey:  values["APP_ENC_KEY"],
		CSRFKey:    values["CSRF_KEY"],
	})
	require.NoError(t, err)
	assert.Len(t, keys.EncKey, 32)
	assert.Len(t, keys.CSRFKey, 32)
	assert.Equal(t, values["CSRF_KEY"], base64.URLEncoding.EncodeToString(keys.CSRFKey))
}
