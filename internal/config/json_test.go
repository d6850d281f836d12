package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_FullDocument(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{"version": "1.0.0"},
		"storage": map[string]any{
			"db":    map[string]any{"dsn": "forms.db"},
			"files": map[string]any{"attachments_dir": "/tmp/attachments"},
			"cache": map[string]any{"enabled": true, "ttl": "1m"},
		},
		"server": map[string]any{
			"http_address":    "127.0.0.1:8423",
			"request_timeout": "15s",
		},
		"templates": map[string]any{"dir": "/tmp/templates"},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "forms.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/tmp/attachments", cfg.Storage.Files.AttachmentsDir)
	assert.True(t, cfg.Storage.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Storage.Cache.TTL)
	assert.Equal(t, "127.0.0.1:8423", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/tmp/templates", cfg.Templates.Dir)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON("/no/such/file.json")
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "string form", input: `"30s"`, expected: 30 * time.Second},
		{name: "numeric nanoseconds", input: `1000000000`, expected: time.Second},
		{name: "bad string", input: `"soon"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, time.Duration(d))
		})
	}
}
