package bootstrap

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aihub/docqa-go/app/controllers"
	"github.com/aihub/docqa-go/internal/auth"
	"github.com/aihub/docqa-go/internal/config"
	"github.com/aihub/docqa-go/internal/database"
	"github.com/aihub/docqa-go/internal/docqa"
	"github.com/aihub/docqa-go/internal/llm"
	"github.com/aihub/docqa-go/internal/logger"
	"github.com/aihub/docqa-go/internal/services"
	"github.com/aihub/docqa-go/internal/storage"
)

// App encapsulates lifecycle resources that need to be cleaned up on shutdown.
type App struct {
	cleanupTasks []func() error
}

// Init bootstraps configuration, logger, database connections and the
// document QA pipeline required by the Beego application.
func Init() (*App, error) {
	// Load environment variables from .env if present (non-fatal if missing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize structured logger.
	if err := logger.InitLogger(); err != nil {
		return nil, err
	}

	// Load dynamic configuration.
	if err := config.LoadConfig(); err != nil {
		return nil, err
	}
	cfg := config.AppConfig

	app := &App{}

	// Initialize database.
	db, err := database.InitDB()
	if err != nil {
		return nil, err
	}
	app.cleanupTasks = append(app.cleanupTasks, func() error {
		return database.CloseDB()
	})

	// Initialize Redis (optional). Failure shouldn't block the app.
	var recordStore docqa.RecordStore
	if cfg.Redis.Enabled {
		if client, err := database.InitRedis(); err != nil {
			logger.Warn("Failed to initialize Redis, falling back to file records", zap.Error(err))
		} else {
			recordStore = docqa.NewRedisRecordStore(client)
			app.cleanupTasks = append(app.cleanupTasks, func() error {
				return database.CloseRedis()
			})
		}
	}
	if recordStore == nil {
		recordStore = docqa.NewFileRecordStore(cfg.Storage.DataDir)
	}

	// Initialize MinIO (optional). Failure shouldn't block the app.
	var archiver docqa.UploadArchiver
	if minioStorage, err := storage.InitMinIO(); err != nil {
		logger.Warn("MinIO not available, uploads will not be archived", zap.Error(err))
	} else {
		logger.Info("MinIO initialized successfully")
		archiver = minioStorage
	}

	// Vector store backend.
	var vectorStore docqa.VectorStore
	switch cfg.VectorStore.Driver {
	case "milvus":
		milvusStore, err := docqa.NewMilvusVectorStore(docqa.MilvusOptions{
			Address:          cfg.VectorStore.Milvus.Address,
			Username:         cfg.VectorStore.Milvus.Username,
			Password:         cfg.VectorStore.Milvus.Password,
			Database:         cfg.VectorStore.Milvus.Database,
			CollectionPrefix: cfg.VectorStore.Milvus.CollectionPrefix,
			UseTLS:           cfg.VectorStore.Milvus.TLS,
		})
		if err != nil {
			return nil, err
		}
		vectorStore = milvusStore
		logger.Info("Milvus vector store initialized",
			zap.String("address", cfg.VectorStore.Milvus.Address))
	default:
		vectorStore = docqa.NewLocalVectorStore(cfg.Storage.DataDir)
		logger.Info("Local vector store initialized",
			zap.String("data_dir", cfg.Storage.DataDir))
	}

	// Embedding backends and LLM client.
	primary := docqa.NewGeminiEmbedder(cfg.Embedding.GeminiAPIKey, cfg.Embedding.GeminiModel)
	fallback := docqa.NewLocalEmbedder(cfg.Embedding.LocalEndpoint, cfg.Embedding.LocalModel)
	selector := docqa.NewSelector(primary, fallback)

	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, err
	}

	docService := docqa.NewService(
		docqa.NewParserManager(),
		docqa.NewChunker(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap),
		selector,
		docqa.NewIndexWriter(vectorStore, recordStore),
		docqa.NewRetriever(vectorStore, recordStore, selector, cfg.Ingest.TopK),
		docqa.NewSynthesizer(llmClient),
		archiver,
	)

	jwtService := auth.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		time.Duration(cfg.JWT.ExpiresMinutes)*time.Minute,
	)
	userService := services.NewUserService(db)

	controllers.InitControllers(jwtService, docService, userService)

	return app, nil
}

// Shutdown flushes logs and closes resources gracefully.
func (a *App) Shutdown() {
	// Execute cleanup tasks in reverse order (best effort).
	for i := len(a.cleanupTasks) - 1; i >= 0; i-- {
		if err := a.cleanupTasks[i](); err != nil {
			log.Printf("Cleanup error: %v\n", err)
		}
	}

	logger.Sync()
}
