package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/arjunmehta/tastemap/internal/analyzer"
	"github.com/arjunmehta/tastemap/internal/api"
	"github.com/arjunmehta/tastemap/internal/core"
	"github.com/arjunmehta/tastemap/internal/corpus"
	"github.com/arjunmehta/tastemap/internal/embed"
	"github.com/arjunmehta/tastemap/internal/extract"
	"github.com/arjunmehta/tastemap/internal/gemini"
	"github.com/arjunmehta/tastemap/internal/index"
	"github.com/arjunmehta/tastemap/internal/logger"
)

// Config represents the application configuration.
type Config struct {
	GeminiAPIKey       string
	GeminiEmbedModel   string
	GeminiExtractModel string
	MilvusHost         string
	MilvusPort         string
	EmbeddingDim       int
	HTTPHost           string
	HTTPPort           int
	AllowOrigin        string
	SeedOnStart        bool
	IngestParallelism  int
}

// loadConfig loads configuration from environment variables.
func loadConfig() *Config {
	return &Config{
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiEmbedModel:   getEnvWithDefault("GEMINI_EMBED_MODEL", "gemini-embedding-001"),
		GeminiExtractModel: getEnvWithDefault("GEMINI_EXTRACT_MODEL", "gemini-2.0-flash"),
		MilvusHost:         os.Getenv("MILVUS_HOST"),
		MilvusPort:         getEnvWithDefault("MILVUS_PORT", "19530"),
		EmbeddingDim:       getEnvIntWithDefault("EMBEDDING_DIM", core.DefaultEmbeddingDim),
		HTTPHost:           getEnvWithDefault("HTTP_HOST", "0.0.0.0"),
		HTTPPort:           getEnvIntWithDefault("HTTP_PORT", 8000),
		AllowOrigin:        getEnvWithDefault("ALLOW_ORIGIN", "http://localhost:3000"),
		SeedOnStart:        getEnvWithDefault("SEED_ON_START", "false") == "true",
		IngestParallelism:  getEnvIntWithDefault("INGEST_PARALLELISM", 4),
	}
}

// getEnvWithDefault gets an environment variable or returns a default value.
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvIntWithDefault gets an integer environment variable or returns a
// default value.
func getEnvIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func main() {
	// Parse command line flags
	debug := flag.Bool("debug", false, "Enable debug logging")
	seed := flag.Bool("seed", false, "Ingest the built-in starter catalog on startup")
	flag.Parse()

	// Initialize logger
	logger.Init(*debug)

	logger.Info("Starting music taste analyzer...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("Warning: No .env file found or error loading it")
	}

	// Load configuration
	config := loadConfig()

	if logger.IsDebugEnabled() {
		logger.Debug("Configuration loaded: GeminiAPIKey=%v, EmbedModel=%s, ExtractModel=%s, MilvusHost=%s, EmbeddingDim=%d",
			config.GeminiAPIKey != "", config.GeminiEmbedModel, config.GeminiExtractModel, config.MilvusHost, config.EmbeddingDim)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	logger.Info("Initializing services...")

	var (
		labelExtractor core.LabelExtractor
		embedder       core.Embedder
	)
	if config.GeminiAPIKey != "" {
		client := gemini.NewClient(config.GeminiAPIKey)
		labelExtractor = extract.NewGeminiExtractor(client, config.GeminiExtractModel)
		embedder = embed.NewGeminiEmbedder(client, config.GeminiEmbedModel, config.EmbeddingDim)
		logger.Info("Using Gemini extraction and embedding (dim=%d)", config.EmbeddingDim)
	} else {
		// Offline stack: rule-based labels, deterministic hash embeddings.
		labelExtractor = extract.NewRuleExtractor()
		embedder = embed.NewStubEmbedder(config.EmbeddingDim)
		logger.Warn("GEMINI_API_KEY not set, using the offline rule-based extractor and stub embedder")
	}

	var trackIndex core.TrackIndex
	if config.MilvusHost != "" {
		milvusAddr := config.MilvusHost + ":" + config.MilvusPort
		milvusIndex, err := index.NewMilvusIndex(ctx, milvusAddr, config.EmbeddingDim)
		if err != nil {
			logger.Error("Failed to initialize Milvus index: %v", err)
			os.Exit(1)
		}
		trackIndex = milvusIndex
	} else {
		logger.Warn("MILVUS_HOST not set, using the in-memory index")
		trackIndex = index.NewMemoryIndex(config.EmbeddingDim)
	}
	defer trackIndex.Close()

	a := analyzer.NewAnalyzer(labelExtractor, embedder, trackIndex, config.IngestParallelism)

	// Optionally seed the index with the built-in catalog
	if *seed || config.SeedOnStart {
		logger.Info("Seeding index with the built-in catalog...")
		result, err := a.Ingest(ctx, corpus.SeedPairs())
		if err != nil {
			logger.Error("Failed to seed catalog: %v", err)
			os.Exit(1)
		}
		logger.Info("Seeded %d of %d tracks", result.Processed, result.Total)
	}

	// Initialize the HTTP server
	server, err := api.NewServer(a, &api.Config{
		Host:        config.HTTPHost,
		Port:        config.HTTPPort,
		AllowOrigin: config.AllowOrigin,
	})
	if err != nil {
		logger.Error("Failed to initialize HTTP server: %v", err)
		os.Exit(1)
	}

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("HTTP server error: %v", err)
			cancel()
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case <-ctx.Done():
	}
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server: %v", err)
	}

	logger.Info("Server has been shut down")
}
