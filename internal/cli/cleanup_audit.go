package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	auditRepo "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/tasks"
)

// CleanupAuditCommand removes expired audit events once, without the task queue.
type CleanupAuditCommand struct {
	DatabasePath  string
	RetentionDays int
}

func NewCleanupAuditCommand() *CleanupAuditCommand {
	return &CleanupAuditCommand{}
}

// ParseFlags parses command line flags
func (cmd *CleanupAuditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("cleanup-audit", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.IntVar(&cmd.RetentionDays, "days", tasks.DefaultAuditRetentionDays, "Keep audit events newer than this many days")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s cleanup-audit [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete audit events older than the retention period.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.RetentionDays <= 0 {
		return fmt.Errorf("-days must be positive, got %d", cmd.RetentionDays)
	}
	return nil
}

// Run executes the cleanup and reports how many events were removed.
func (cmd *CleanupAuditCommand) Run() (int64, error) {
	db, err := database.NewDatabase(cmd.DatabasePath, database.WithLogLevel(logger.Warn))
	if err != nil {
		return 0, err
	}
	defer db.Close()

	service := audit.NewService(auditRepo.NewRepository(db.DB))
	return tasks.RunAuditCleanup(context.Background(), service, cmd.RetentionDays)
}
