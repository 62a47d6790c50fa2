// Command server wires the student records hub together: configuration,
// logging, PostgreSQL with embedded migrations, optional Redis caching,
// and the command/query handlers, then waits for a shutdown signal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/uni-hub/student-records-hub/config"
	"github.com/uni-hub/student-records-hub/internal/application/command"
	"github.com/uni-hub/student-records-hub/internal/application/query"
	"github.com/uni-hub/student-records-hub/internal/domain/emaildomain"
	"github.com/uni-hub/student-records-hub/internal/domain/phonenumber"
	"github.com/uni-hub/student-records-hub/internal/domain/student"
	"github.com/uni-hub/student-records-hub/internal/infrastructure/persistence/postgres"
	"github.com/uni-hub/student-records-hub/internal/infrastructure/persistence/redis"
	"github.com/uni-hub/student-records-hub/pkg/retry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting student records hub",
		"env", cfg.App.Environment,
		"version", cfg.App.Version,
		"timezone", cfg.App.Timezone,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. DATABASE CONNECTION
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	var dbConn *postgres.Connection
	err = retry.StartupRetrier().Do(ctx, func(ctx context.Context) error {
		var connErr error
		dbConn, connErr = postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		if connErr != nil {
			return retry.Retryable(connErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. MIGRATIONS
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Database.MigrateOnStart {
		log.Info("running database migrations...")
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("migrations completed")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. REDIS (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var redisCache *redis.Cache
	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis...")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		redisCache, err = redis.NewCache(redisCfg)
		if err != nil {
			log.Warn("failed to connect to Redis, caching disabled", "error", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
			log.Info("Redis connection established")
		}
	}

	var studentCache student.Cache
	var registryCache command.RegistryCache
	if redisCache != nil {
		studentCache = redis.NewStudentCache(redisCache)
		registryCache = redis.NewRegistryCache(redisCache)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. REPOSITORIES AND DOMAIN SERVICES
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing repositories...")
	studentRepo := postgres.NewStudentRepository(dbConn)
	facultyRepo := postgres.NewFacultyRepository(dbConn)
	emailDomainRepo := postgres.NewEmailDomainRepository(dbConn)
	phoneConfigRepo := postgres.NewPhoneConfigRepository(dbConn)

	allowList := emaildomain.NewAllowList(emailDomainRepo)
	phoneMatcher := phonenumber.NewMatcher(phoneConfigRepo)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer...")
	handlers := &Handlers{
		RegisterStudent: command.NewRegisterStudentHandler(studentRepo, facultyRepo, allowList, phoneMatcher),
		UpdateStudent:   command.NewUpdateStudentHandler(studentRepo, studentCache),
		CreateFaculty:   command.NewCreateFacultyHandler(facultyRepo),
		RenameFaculty:   command.NewRenameFacultyHandler(facultyRepo),
		AddEmailDomain:  command.NewAddEmailDomainHandler(emailDomainRepo, registryCache),
		AddPhoneConfig:  command.NewAddPhoneConfigHandler(phoneConfigRepo, registryCache, log),

		GetStudent:    query.NewGetStudentHandler(studentRepo, studentCache),
		ListStudents:  query.NewListStudentsHandler(studentRepo),
		ValidateEmail: query.NewValidateEmailHandler(allowList),
		MatchPhone:    query.NewMatchPhoneHandler(phoneMatcher),
	}
	_ = handlers // handed to the transport layer once one is mounted

	log.Info("student records hub is running")

	// ─────────────────────────────────────────────────────────────────────────
	// 8. SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		log.Info("context cancelled")
	}

	log.Info("starting graceful shutdown...", "timeout", cfg.App.ShutdownTimeout.String())

	// Database and Redis connections close via defer.
	log.Info("shutdown completed successfully")
	return nil
}

// Handlers groups the application's command and query handlers for a
// transport layer to consume.
type Handlers struct {
	RegisterStudent *command.RegisterStudentHandler
	UpdateStudent   *command.UpdateStudentHandler
	CreateFaculty   *command.CreateFacultyHandler
	RenameFaculty   *command.RenameFacultyHandler
	AddEmailDomain  *command.AddEmailDomainHandler
	AddPhoneConfig  *command.AddPhoneConfigHandler

	GetStudent    *query.GetStudentHandler
	ListStudents  *query.ListStudentsHandler
	ValidateEmail *query.ValidateEmailHandler
	MatchPhone    *query.MatchPhoneHandler
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupLogger builds the structured logger.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}
