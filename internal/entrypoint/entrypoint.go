package entrypoint

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	auditRepo "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/bookinstances"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/genres"
	"github.com/mrlokans/library/internal/database/stats"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/session"
	"github.com/mrlokans/library/internal/tasks"
	"github.com/mrlokans/library/internal/validation"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, Ctrl+C sends SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Background work is stopped once no request can add more of it.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// csrfSecret decodes the configured secret (hex or raw) or generates a
// random one for this process.
func csrfSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	log.Printf("Generated session secret (set SESSION_SECRET to keep forms valid across restarts)")
	return secret, nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Local Library v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditService := audit.NewService(auditRepo.NewRepository(db.DB))

	var taskClient *tasks.Client
	healthChecks := map[string]http_controllers.HealthCheck{}
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(
			cfg.Database.Path,
			tasks.FromSettings(cfg.Tasks),
			tasks.NewCleanupAuditEventsQueue(auditService),
		)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		healthChecks["tasks"] = taskClient.Ping

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		cleanupScheduler = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
		if err := cleanupScheduler.Start(taskCtx); err != nil {
			log.Printf("WARNING: audit cleanup scheduler not started: %v", err)
		} else {
			healthChecks["audit_cleanup"] = cleanupScheduler.Check
		}
	} else {
		log.Printf("Task queue disabled; run 'cleanup-audit' to prune the audit trail")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessions, err := session.NewManager(sqlDB, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	secret, err := csrfSecret(cfg.Session.Secret)
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}

	router, err := http_controllers.NewRouter(http_controllers.RouterConfig{
		Genres:        genres.NewRepository(db.DB),
		Books:         books.NewRepository(db.DB),
		Authors:       authors.NewRepository(db.DB),
		BookInstances: bookinstances.NewRepository(db.DB),
		Stats:         stats.NewRepository(db.DB),
		Database:      db,
		HealthChecks:  healthChecks,
		Validator:     validation.New(),
		Auditor:       auditService,
		Sessions:      sessions,
		CSRFSecret:    secret,
		SecureCookies: cfg.Session.SecureCookies,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		Version:       version,
	})
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	Serve(router, cfg, func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if !auditService.Drain(ctx) {
			log.Printf("Shutdown timed out with audit events still being written")
		}
	})
}
