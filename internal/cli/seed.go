package cli

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
)

// SeedCommand loads a small sample catalog into an empty database.
type SeedCommand struct {
	DatabasePath string
	Verbose      bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

// ParseFlags parses command line flags
func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Log every SQL statement")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load sample genres, authors, books and copies. Does nothing when books already exist.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the seed command
func (cmd *SeedCommand) Run() error {
	level := logger.Warn
	if cmd.Verbose {
		level = logger.Info
	}

	db, err := database.NewDatabase(cmd.DatabasePath, database.WithLogLevel(level))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Seed(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	log.Printf("Catalog at %s is seeded", cmd.DatabasePath)
	return nil
}
