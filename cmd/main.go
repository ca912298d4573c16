package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	_ "github.com/sbilibin2017/gw-transactions/docs"
	"github.com/sbilibin2017/gw-transactions/internal/handlers"
	"github.com/sbilibin2017/gw-transactions/internal/logger"
	"github.com/sbilibin2017/gw-transactions/internal/middlewares"
	"github.com/sbilibin2017/gw-transactions/internal/repositories"
	"github.com/sbilibin2017/gw-transactions/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-transactions API
// @version 1.0.0
// @description Microservice for recording financial transactions and tracking their status
// @host localhost:5000
// @BasePath /api
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// storage bundles the selected backend with its health probe and cleanup.
type storage struct {
	writer services.TransactionWriter
	reader services.TransactionReader
	ping   func(ctx context.Context) error
	// updateMiddlewares wrap the status update route.
	updateMiddlewares []func(http.Handler) http.Handler
	close             func()
}

// run initializes the logger, storage, cache, event publisher and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to storage
	var (
		store *storage
		err   error
	)
	switch cfg.StorageDriver {
	case storagePostgres:
		store, err = openPostgres(ctx, cfg)
	default:
		store, err = openMongo(ctx, cfg)
	}
	if err != nil {
		return err
	}
	defer store.close()

	// Connect to Redis, cache is optional
	var cache services.TransactionCache
	if cfg.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return fmt.Errorf("redis connection error: %w", err)
		}
		defer rdb.Close()
		cache = repositories.NewTransactionCacheRepository(rdb, cfg.RedisExp)
		logger.Log.Infof("Redis cache enabled at %s:%d", cfg.RedisHost, cfg.RedisPort)
	}

	// Kafka event publisher is optional
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		kw := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
		defer kw.Close()
		kafkaWriter = kw
		logger.Log.Infof("Kafka publishing enabled to topic %s", cfg.KafkaTopic)
	}

	// Initialize services
	transactionService := services.NewTransactionService(store.writer, store.reader, cache, kafkaWriter)

	// Initialize handlers
	createHandler := handlers.NewCreateTransactionHandler(transactionService)
	listHandler := handlers.NewListTransactionsHandler(transactionService)
	getHandler := handlers.NewGetTransactionHandler(transactionService)
	updateStatusHandler := handlers.NewUpdateTransactionStatusHandler(transactionService)
	healthHandler := handlers.NewHealthHandler(store.ping)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Get("/health", healthHandler)

	r.Route("/api/transactions", func(r chi.Router) {
		r.Post("/", createHandler)
		r.Get("/", listHandler)
		r.Get("/{id}", getHandler)
		r.With(store.updateMiddlewares...).Put("/{id}", updateStatusHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// openMongo connects to MongoDB and builds the document-store repositories.
func openMongo(ctx context.Context, cfg *config) (*storage, error) {
	logger.Log.Infof("Connecting to MongoDB: %s", cfg.MongoURI)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongodb connection error: %w", err)
	}
	disconnect := func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		if err := client.Disconnect(dctx); err != nil {
			logger.Log.Errorw("mongodb disconnect error", "error", err)
		}
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		disconnect()
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	coll := client.Database(cfg.MongoDB).Collection(cfg.MongoCollection)
	if err := repositories.EnsureTransactionIndexes(connectCtx, coll); err != nil {
		disconnect()
		return nil, err
	}

	return &storage{
		writer: repositories.NewTransactionMongoWriteRepository(coll),
		reader: repositories.NewTransactionMongoReadRepository(coll),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: disconnect,
	}, nil
}

// openPostgres connects to PostgreSQL, applies the schema and builds the relational repositories.
func openPostgres(ctx context.Context, cfg *config) (*storage, error) {
	logger.Log.Infof("Connecting to PostgreSQL: %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.postgresDSN())
	if err != nil {
		return nil, fmt.Errorf("postgresql connection error: %w", err)
	}
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if _, err := db.ExecContext(ctx, repositories.TransactionsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgresql schema error: %w", err)
	}

	return &storage{
		writer:            repositories.NewTransactionPostgresWriteRepository(db, middlewares.GetTxFromContext),
		reader:            repositories.NewTransactionPostgresReadRepository(db, middlewares.GetTxFromContext),
		ping:              db.PingContext,
		updateMiddlewares: []func(http.Handler) http.Handler{middlewares.TxMiddleware(db)},
		close:             func() { db.Close() },
	}, nil
}
