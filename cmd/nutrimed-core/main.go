package main

// @title           NutriMed Core API
// @version         1.0
// @description     Clinical nutrition assistant API. NutriMed Core answers patient diet questions with evidence retrieved from indexed clinical guidelines.

// @contact.name   NutriMed OSS
// @contact.url    https://github.com/nutrimed-labs/nutrimed-core/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nutrimed-labs/nutrimed-core/docs"
	"github.com/nutrimed-labs/nutrimed-core/internal/adapters/driven/ai"
	"github.com/nutrimed-labs/nutrimed-core/internal/adapters/driven/auth"
	"github.com/nutrimed-labs/nutrimed-core/internal/adapters/driven/chroma"
	"github.com/nutrimed-labs/nutrimed-core/internal/adapters/driven/postgres"
	redisqueue "github.com/nutrimed-labs/nutrimed-core/internal/adapters/driven/queue/redis"
	redisadapter "github.com/nutrimed-labs/nutrimed-core/internal/adapters/driven/redis"
	"github.com/nutrimed-labs/nutrimed-core/internal/adapters/driven/sqlite"
	"github.com/nutrimed-labs/nutrimed-core/internal/adapters/driving/http"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driving"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/services"
	"github.com/nutrimed-labs/nutrimed-core/internal/extractors"
	"github.com/nutrimed-labs/nutrimed-core/internal/runtime"
	"github.com/nutrimed-labs/nutrimed-core/internal/textproc"
	"github.com/nutrimed-labs/nutrimed-core/internal/worker"
	"github.com/redis/go-redis/v9"
)

var version = "dev"

func main() {
	// Get run mode from environment (RUN_MODE) or command line arg
	mode := getEnv("RUN_MODE", "all")
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	log.Printf("nutrimed-core %s starting in %s mode", version, mode)

	// Configuration from environment
	jwtSecret := getEnv("JWT_SECRET", "development-secret-change-in-production")
	port := getEnvInt("PORT", 8080)
	sqlitePath := getEnv("SQLITE_PATH", "./data/nutrimed.db")
	databaseURL := getEnv("DATABASE_URL", "")
	redisURL := getEnv("REDIS_URL", "")
	chromaURL := getEnv("CHROMA_URL", "http://localhost:8000")
	chromaCollection := getEnv("CHROMA_COLLECTION", "clinical_guidelines")
	guidelinesDir := getEnv("GUIDELINES_DIR", "./guidelines")

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Initialize SQLite =====
	// SQLite always runs: it backs settings, and patients plus sessions
	// unless PostgreSQL or Redis take those over.
	log.Println("Opening SQLite database...")
	db, err := sqlite.Open(ctx, sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	log.Println("SQLite ready")

	// ===== Initialize PostgreSQL (optional) =====
	var pgDB *postgres.DB
	if databaseURL != "" {
		log.Println("Connecting to PostgreSQL...")
		cfg := postgres.DefaultConfig(databaseURL)
		pgDB, err = postgres.Connect(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer pgDB.Close()

		if err := pgDB.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		log.Println("PostgreSQL connected and schema initialized")
	}

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	if redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Driven adapters (infrastructure) =====
	authAdapter := auth.NewAdapter(jwtSecret)
	aiFactory := ai.NewFactory()

	// ===== Patient Store (PostgreSQL if available, otherwise SQLite) =====
	var patientStore driven.PatientStore
	patientBackend := "sqlite"
	if pgDB != nil {
		patientStore = postgres.NewPatientStore(pgDB)
		patientBackend = "postgres"
		log.Println("Using PostgreSQL patient store")
	} else {
		patientStore = sqlite.NewPatientStore(db)
		log.Println("Using SQLite patient store")
	}

	// ===== Session Store (Redis if available, otherwise SQLite) =====
	var sessionStore driven.SessionStore
	sessionBackend := "sqlite"
	if redisClient != nil {
		sessionStore = redisadapter.NewSessionStore(redisClient)
		sessionBackend = "redis"
		log.Println("Using Redis session store")
	} else {
		sessionStore = sqlite.NewSessionStore(db)
		log.Println("Using SQLite session store")
	}

	settingsStore := sqlite.NewSettingsStore(db)

	// ===== Task Queue (Redis only; without it ingestion is synchronous) =====
	var taskQueue driven.TaskQueue
	if redisClient != nil {
		taskQueue, err = redisqueue.NewQueue(redisClient, fmt.Sprintf("worker-%d", os.Getpid()))
		if err != nil {
			log.Fatalf("Failed to create task queue: %v", err)
		}
		log.Println("Using Redis task queue")
	} else {
		log.Println("No Redis configured, background ingestion disabled")
	}

	// Runtime configuration
	runtimeConfig := domain.NewRuntimeConfig(sessionBackend, patientBackend)
	runtimeServices := runtime.NewServices(runtimeConfig)

	// ===== Initialize Chroma =====
	log.Println("Connecting to Chroma...")
	var vectorStore driven.VectorStore
	if vs, err := chroma.NewVectorStore(ctx, chromaURL, chromaCollection); err != nil {
		log.Printf("Warning: Chroma unavailable: %v (answers degrade to static guidance)", err)
	} else {
		vectorStore = vs
		runtimeConfig.SetRetrievalAvailable(true)
		log.Println("Chroma connected")
	}

	// ===== Bootstrap model settings and AI services =====
	seed := seedSettings()
	settingsService := services.NewSettingsService(settingsStore, aiFactory, runtimeServices)
	if err := settingsService.Bootstrap(ctx, seed); err != nil {
		log.Fatalf("Failed to bootstrap settings: %v", err)
	}

	// Services (core business logic)
	authService := services.NewAuthService(patientStore, sessionStore, authAdapter)
	patientService := services.NewPatientService(patientStore, sessionStore, authAdapter)
	consultationService := services.NewConsultationService(patientStore, vectorStore, runtimeServices)
	ingestService := services.NewIngestService(
		extractors.DefaultRegistry(),
		textproc.DefaultPipeline(),
		nil, // default chunker
		nil, // default classifier
		vectorStore,
		taskQueue,
		runtimeServices,
	)

	// Log startup configuration
	log.Printf("Runtime config: session_backend=%s, patient_backend=%s, embedding=%t, llm=%t, retrieval=%t",
		runtimeConfig.SessionBackend,
		runtimeConfig.PatientBackend,
		runtimeConfig.EmbeddingAvailable(),
		runtimeConfig.LLMAvailable(),
		runtimeConfig.RetrievalAvailable())

	switch mode {
	case "api":
		// API-only mode: HTTP server, no worker
		runAPI(port, authService, patientService, consultationService, ingestService, settingsService, runtimeServices, db, redisClient)

	case "worker":
		// Worker-only mode: task processing, no HTTP server
		runWorkerMode(ctx, taskQueue, ingestService)

	case "ingest":
		// One-shot mode: index the guideline directory and exit
		runIngest(ctx, ingestService, guidelinesDir)

	case "all":
		// Combined mode: run both API and worker
		if taskQueue != nil {
			go runWorkerMode(ctx, taskQueue, ingestService)
		}
		runAPI(port, authService, patientService, consultationService, ingestService, settingsService, runtimeServices, db, redisClient)

	default:
		log.Fatalf("Unknown mode: %s (use: api, worker, ingest, or all)", mode)
	}
}

func runAPI(
	port int,
	authService driving.AuthService,
	patientService driving.PatientService,
	consultationService driving.ConsultationService,
	ingestService driving.IngestService,
	settingsService driving.SettingsService,
	runtimeServices *runtime.Services,
	db http.Pinger,
	redisClient *redis.Client,
) {
	cfg := http.Config{
		Host:    "0.0.0.0",
		Port:    port,
		Version: version,
	}

	var redisPinger http.Pinger
	if redisClient != nil {
		redisPinger = redisPing{redisClient}
	}

	server := http.NewServer(
		cfg,
		authService,
		patientService,
		consultationService,
		ingestService,
		settingsService,
		runtimeServices,
		db,
		redisPinger,
	)

	log.Printf("API server starting on :%d", port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runWorkerMode starts the worker and processes ingest tasks from the queue.
func runWorkerMode(ctx context.Context, taskQueue driven.TaskQueue, ingestService driving.IngestService) {
	if taskQueue == nil {
		log.Fatal("Worker mode requires Redis (set REDIS_URL)")
	}

	log.Println("Starting worker mode...")

	w := worker.New(worker.Config{
		TaskQueue:      taskQueue,
		IngestService:  ingestService,
		Logger:         slog.Default(),
		Concurrency:    getEnvInt("WORKER_CONCURRENCY", 1),
		DequeueTimeout: getEnvInt("WORKER_DEQUEUE_TIMEOUT", 5),
	})

	if err := w.Start(ctx); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}

	log.Println("Worker started, processing ingest_guidelines tasks...")

	// Wait for context cancellation
	<-ctx.Done()

	log.Println("Stopping worker...")
	w.Stop()
	log.Println("Worker stopped")
}

// runIngest indexes the guideline directory once and exits.
func runIngest(ctx context.Context, ingestService driving.IngestService, dir string) {
	log.Printf("Ingesting guidelines from %s...", dir)

	report, err := ingestService.Ingest(ctx, dir, true)
	if err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}

	log.Printf("Ingest finished: %d documents seen, %d indexed, %d chunks",
		report.DocumentsSeen, report.Indexed, report.ChunksIndexed)
	for _, failure := range report.Failures {
		log.Printf("  failed: %s: %s", failure.File, failure.Error)
	}
}

// seedSettings builds the first-run model settings from the environment.
// Persisted settings win on later runs.
func seedSettings() domain.ModelSettings {
	seed := domain.DefaultModelSettings()
	seed.BaseURL = getEnv("OLLAMA_BASE_URL", seed.BaseURL)
	seed.Model = getEnv("OLLAMA_MODEL", seed.Model)
	seed.EmbedModel = getEnv("OLLAMA_EMBED_MODEL", seed.EmbedModel)
	seed.Temperature = getEnvFloat("MODEL_TEMPERATURE", seed.Temperature)
	seed.TopP = getEnvFloat("MODEL_TOP_P", seed.TopP)
	seed.TopK = getEnvInt("MODEL_TOP_K", seed.TopK)
	seed.NumPredict = getEnvInt("NUM_PREDICT", seed.NumPredict)
	return seed
}

// redisPing adapts the Redis client to the health check interface
type redisPing struct {
	client *redis.Client
}

func (p redisPing) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var result float64
		if _, err := fmt.Sscanf(value, "%f", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
