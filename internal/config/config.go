package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int              `json:"port"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Database      DatabaseConfig   `json:"database"`
	FileStore     FileStoreConfig  `json:"file_store"`
	AI            AIConfig         `json:"ai"`
	Chat          ChatConfig       `json:"chat"`
	Jobs          JobsConfig       `json:"jobs"`
	CORSAllowlist []string         `json:"cors_allowlist"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type AIConfig struct {
	Provider   string      `json:"provider"`
	Data       interface{} `json:"data"`
	ChatModel  string      `json:"chat_model"`
	EmbedModel string      `json:"embed_model"`
	Timeout    int         `json:"timeout"`

	EmbedCacheSize       int  `json:"embed_cache_size"`
	EmbedCacheTTLMinutes int  `json:"embed_cache_ttl_minutes"`
	EnableDBEmbedCache   bool `json:"enable_db_embed_cache"`

	// Price per 1K tokens, used only for the usage estimate in responses.
	PromptCostPer1K     float64 `json:"prompt_cost_per_1k"`
	CompletionCostPer1K float64 `json:"completion_cost_per_1k"`
}

type ChatConfig struct {
	ChunkSize       int    `json:"chunk_size"`
	TopK            int    `json:"top_k"`
	MaxHistoryTurns int    `json:"max_history_turns"`
	TempDir         string `json:"temp_dir"`
	UploadMaxBytes  int64  `json:"upload_max_bytes"`
}

type JobsConfig struct {
	CleanupSpec             string `json:"cleanup_spec"`
	SessionRetentionDays    int    `json:"session_retention_days"`
	EmbedCacheRetentionDays int    `json:"embed_cache_retention_days"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	if cfg.AI.Provider == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	if cfg.AI.ChatModel == "" {
		return nil, fmt.Errorf("ai.chat_model is required")
	}
	if cfg.AI.EmbedModel == "" {
		return nil, fmt.Errorf("ai.embed_model is required")
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 120
	}
	if cfg.Chat.ChunkSize == 0 {
		cfg.Chat.ChunkSize = 1000
	}
	if cfg.Chat.TopK == 0 {
		cfg.Chat.TopK = 1
	}
	if cfg.Chat.TempDir == "" {
		cfg.Chat.TempDir = os.TempDir()
	}
	if cfg.Chat.UploadMaxBytes == 0 {
		cfg.Chat.UploadMaxBytes = 32 << 20
	}
	if cfg.Jobs.CleanupSpec == "" {
		cfg.Jobs.CleanupSpec = "0 3 * * *"
	}
	if cfg.Jobs.SessionRetentionDays == 0 {
		cfg.Jobs.SessionRetentionDays = 90
	}
	if cfg.Jobs.EmbedCacheRetentionDays == 0 {
		cfg.Jobs.EmbedCacheRetentionDays = 30
	}
	return &cfg, nil
}
