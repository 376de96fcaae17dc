package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/docchat/internal/ai"
	"github.com/xxxsen/docchat/internal/chat"
	"github.com/xxxsen/docchat/internal/config"
	"github.com/xxxsen/docchat/internal/db"
	"github.com/xxxsen/docchat/internal/embedcache"
	"github.com/xxxsen/docchat/internal/filestore"
	"github.com/xxxsen/docchat/internal/handler"
	"github.com/xxxsen/docchat/internal/job"
	"github.com/xxxsen/docchat/internal/middleware"
	"github.com/xxxsen/docchat/internal/repo"
	"github.com/xxxsen/docchat/internal/schedule"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "docchat",
		Short: "docchat backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run docchat server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	sessionRepo := repo.NewSessionRepo(conn)
	cacheRepo := repo.NewEmbeddingCacheRepo(conn)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	chatProvider, err := ai.NewChatProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	embedProvider, err := ai.NewEmbedProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai embed provider: %w", err)
	}
	generator := ai.NewGenerator(chatProvider, cfg.AI.ChatModel)
	embedder := ai.NewEmbedder(embedProvider, cfg.AI.EmbedModel)
	if cfg.AI.EnableDBEmbedCache {
		embedder = embedcache.WrapDBCacheToEmbedder(embedder, cacheRepo)
	}
	embedder = embedcache.WrapLRUCacheToEmbedder(
		embedder,
		cfg.AI.EmbedCacheSize,
		time.Duration(cfg.AI.EmbedCacheTTLMinutes)*time.Minute,
	)

	chatService := chat.NewService(store, sessionRepo, embedder, generator, chat.Config{
		ChunkSize:           cfg.Chat.ChunkSize,
		TopK:                cfg.Chat.TopK,
		MaxHistoryTurns:     cfg.Chat.MaxHistoryTurns,
		TempDir:             cfg.Chat.TempDir,
		Timeout:             time.Duration(cfg.AI.Timeout) * time.Second,
		PromptCostPer1K:     cfg.AI.PromptCostPer1K,
		CompletionCostPer1K: cfg.AI.CompletionCostPer1K,
	})

	deps := handler.RouterDeps{
		Chat:  handler.NewChatHandler(chatService),
		Files: handler.NewFileHandler(store, cfg.Chat.UploadMaxBytes),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewSessionCleanupJob(sessionRepo, cfg.Jobs.SessionRetentionDays), cfg.Jobs.CleanupSpec); err != nil {
		return err
	}
	if cfg.AI.EnableDBEmbedCache {
		if err := scheduler.AddJob(job.NewEmbeddingCacheCleanupJob(cacheRepo, cfg.Jobs.EmbedCacheRetentionDays), cfg.Jobs.CleanupSpec); err != nil {
			return err
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
