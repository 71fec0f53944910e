package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client runs the catalog's background queues on a dedicated SQLite file,
// so that long-running jobs never hold locks on the catalog database.
type Client struct {
	backlite *backlite.Client
	db       *sql.DB
	workers  int
	running  atomic.Bool
}

// NewClient opens (and installs, if needed) the queue database that belongs
// to the catalog database at catalogPath and registers the given queues.
func NewClient(catalogPath string, cfg Config, queues ...backlite.Queue) (*Client, error) {
	db, err := sql.Open("sqlite3", DatabasePath(catalogPath)+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open task database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Workers + 5)
	db.SetMaxIdleConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	bl, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          queueLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create task client: %w", err)
	}
	if err := bl.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("install task schema: %w", err)
	}

	c := &Client{backlite: bl, db: db, workers: cfg.Workers}
	c.Register(queues...)
	return c, nil
}

// Register adds queues. Queues must be registered before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.backlite.Register(q)
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (c *Client) Start(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		return
	}
	log.Printf("Task queue started with %d workers", c.workers)
	c.backlite.Start(ctx)
}

// Stop waits for in-flight tasks until ctx expires and reports whether
// every worker finished in time.
func (c *Client) Stop(ctx context.Context) bool {
	if !c.running.Load() {
		return true
	}
	ok := c.backlite.Stop(ctx)
	if ok {
		log.Println("Task queue stopped")
	} else {
		log.Println("Task queue stopped before all tasks completed")
	}
	return ok
}

// Ping checks the queue database.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close releases the queue database. Call it after Stop.
func (c *Client) Close() error {
	return c.db.Close()
}

// Add starts an operation to enqueue one or more tasks.
func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.backlite.Add(tasks...)
}

// EnqueueAuditCleanup schedules removal of audit events older than retentionDays.
func (c *Client) EnqueueAuditCleanup(retentionDays int) (string, error) {
	ids, err := c.Add(CleanupAuditEventsTask{RetentionDays: retentionDays}).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue audit cleanup: %w", err)
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

// queueLogger routes backlite's logging through the standard logger.
type queueLogger struct{}

func (queueLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (queueLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
