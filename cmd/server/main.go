package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/devyanshh69/feedback-box-backend/internal/auth"
	"github.com/devyanshh69/feedback-box-backend/internal/board"
	"github.com/devyanshh69/feedback-box-backend/internal/config"
	"github.com/devyanshh69/feedback-box-backend/internal/handlers"
	"github.com/devyanshh69/feedback-box-backend/internal/identity"
	"github.com/devyanshh69/feedback-box-backend/internal/middleware"
	"github.com/devyanshh69/feedback-box-backend/internal/routes"
	"github.com/devyanshh69/feedback-box-backend/internal/storage"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.AdminPasswordHash == "" {
		log.Println("⚠️  WARNING: ADMIN_PASSWORD_HASH not set; falling back to the plaintext ADMIN_PASSWORD pair.")
		log.Println("   Generate a hash and set ADMIN_PASSWORD_HASH to avoid storing the password in config.")
	}

	// Open the storage backend
	log.Printf("Opening %s storage backend...", cfg.StorageBackend)
	backend, redisClient, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage backend: %v", cfg.StorageBackend, err)
	}
	defer backend.Close()

	ctx := context.Background()

	boardStore, err := board.New(ctx, backend)
	if err != nil {
		log.Fatal("Failed to load feedback collection:", err)
	}

	allocator := identity.NewAllocator(backend)
	verifier := newVerifier(cfg)
	sessions := auth.NewSessions(backend, allocator, verifier)

	handlers.Init(boardStore, sessions)

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only (pass-through without Redis)
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimit(redisClient))
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/student/signin")
	log.Println("  POST /api/auth/admin/signin")
	log.Println("  POST /api/auth/signout")
	log.Println("  GET  /api/auth/me")
	log.Println("  POST /api/feedback")
	log.Println("  GET  /api/feedback")
	log.Println("  POST /api/feedback/vote")
	log.Println("  POST /api/feedback/comment")
	log.Println("  PUT  /api/admin/feedback/status")
	log.Println("  GET  /api/admin/summary")
	log.Println("  GET  /ws/board")

	log.Printf("🚀 Feedback Box backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// openBackend builds the configured storage backend. The Redis client is
// returned separately when available so the rate limiter can share it.
func openBackend(cfg *config.Config) (storage.Store, *redis.Client, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil, nil
	case config.BackendFile:
		fs, err := storage.NewFileStore(cfg.DataFile)
		return fs, nil, err
	case config.BackendRedis:
		rs, err := storage.NewRedisStore(cfg.RedisURI)
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Client(), nil
	case config.BackendPostgres:
		ps, err := storage.NewPostgresStore(cfg.PostgresURI)
		return ps, nil, err
	case config.BackendMongo:
		ms, err := storage.NewMongoStore(cfg.MongoURI)
		return ms, nil, err
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func newVerifier(cfg *config.Config) auth.Verifier {
	if cfg.AdminPasswordHash != "" {
		return auth.HashVerifier{
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
		}
	}
	return auth.StaticVerifier{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	}
}
