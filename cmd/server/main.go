package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"blog-service/internal/access"
	"blog-service/internal/api"
	"blog-service/internal/config"
	"blog-service/internal/events"
	"blog-service/internal/jwt"
	"blog-service/internal/ratelimit"
	"blog-service/internal/repository"
	"blog-service/internal/seed"
	"blog-service/internal/service"
	"blog-service/internal/tracing"
	"blog-service/internal/validation"
	"blog-service/internal/view"
	_ "blog-service/migrations"
)

const serviceName = "blog-service"

func main() {
	cfg := config.Load()

	api.SetupGlobalHandler(serviceName, cfg.LogLevel)

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "migrate":
		handleMigrations(cfg)
	case "seed":
		handleSeed(cfg)
	case "serve":
		serve(cfg)
	default:
		log.Fatalf("unknown command %q (expected serve, migrate or seed)", command)
	}
}

func serve(cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	policy, err := access.ParsePolicy(cfg.PostMutationPolicy)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	shutdownTracer, err := tracing.InitTracerProvider(ctx, serviceName, cfg.OtelEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	db := connectDB(cfg)
	defer db.Close()

	var publisher events.EventPublisher = events.NoopPublisher{}
	if cfg.NatsURL != "" {
		natsPublisher, nc, err := events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer nc.Drain()
		publisher = natsPublisher
		slog.Info("Successfully connected to NATS", slog.String("url", cfg.NatsURL))
	}

	var limiterStorage fiber.Storage
	if cfg.RedisAddr != "" {
		redisClient, err := ratelimit.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("%v", err)
		}
		storage := ratelimit.NewRedisStorage(redisClient)
		defer storage.Close()
		limiterStorage = storage
		slog.Info("Rate limiting backed by Redis", slog.String("addr", cfg.RedisAddr))
	}

	tokens := jwt.NewTokenService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry, jwt.EnrichIdentity)
	projector := view.NewProjector(view.DefaultScopes)

	userRepo := repository.NewPostgresUserRepository(db)
	postRepo := repository.NewPostgresPostRepository(db)
	tokenRepo := repository.NewPostgresTokenRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo, tokens)
	postService := service.NewPostService(
		postRepo,
		userRepo,
		access.NewGate(postRepo, policy),
		validation.NewPostValidator(),
		publisher,
		service.NewPostMetrics(prometheus.DefaultRegisterer),
	)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": serviceName})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(api.RateLimiter(cfg.RateLimitMax, cfg.RateLimitExpiration, limiterStorage))

	api.SetupRoutes(app, tokens, api.NewAuthHandler(authService, projector), api.NewPostHandler(postService, projector))

	slog.Info("Listening", slog.String("service", serviceName), slog.String("port", cfg.Port), slog.String("mutation_policy", string(policy)))
	log.Fatal(app.Listen(":" + cfg.Port))
}

func connectDB(cfg *config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("Successfully connected to the database")
	return db
}

func handleMigrations(cfg *config.Config) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}

func handleSeed(cfg *config.Config) {
	db := connectDB(cfg)
	defer db.Close()

	seeder := seed.NewSeeder(
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresPostRepository(db),
		time.Now().UnixNano(),
	)

	if err := seeder.Run(context.Background()); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	fmt.Printf("Seeded database. Every user logs in with password %q; admin is %s\n", seed.DefaultPassword, seed.AdminEmail)
}
