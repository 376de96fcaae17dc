package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"database": {"host": "localhost", "user": "docchat", "db_name": "docchat"},
		"ai": {"provider": "gemini", "chat_model": "gemini-2.0-flash", "embed_model": "text-embedding-004"}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "info", cfg.LogConfig.Level)
	require.Equal(t, "local", cfg.FileStore.Type)
	require.Equal(t, 120, cfg.AI.Timeout)
	require.Equal(t, 1000, cfg.Chat.ChunkSize)
	require.Equal(t, 1, cfg.Chat.TopK)
	require.Equal(t, int64(32<<20), cfg.Chat.UploadMaxBytes)
	require.Equal(t, "0 3 * * *", cfg.Jobs.CleanupSpec)
	require.Equal(t, 90, cfg.Jobs.SessionRetentionDays)
	require.Equal(t, 30, cfg.Jobs.EmbedCacheRetentionDays)
}

func TestLoad_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing port", content: `{"database": {"host": "h"}, "ai": {"provider": "p", "chat_model": "c", "embed_model": "e"}}`},
		{name: "missing database", content: `{"port": 8080, "ai": {"provider": "p", "chat_model": "c", "embed_model": "e"}}`},
		{name: "missing provider", content: `{"port": 8080, "database": {"host": "h"}, "ai": {"chat_model": "c", "embed_model": "e"}}`},
		{name: "missing chat model", content: `{"port": 8080, "database": {"host": "h"}, "ai": {"provider": "p", "embed_model": "e"}}`},
		{name: "missing embed model", content: `{"port": 8080, "database": {"host": "h"}, "ai": {"provider": "p", "chat_model": "c"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoad_BadJSON(t *testing.T) {
	_, err := Load(writeConfig(t, `{not json`))
	require.Error(t, err)
}
