// Package cli is the driving adapter exposing Libris over a command
// line. Commands map engine results to user-facing output; rule
// rejections print their reason code and are not treated as command
// errors.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tanelv/libris/internal/adapters/driven/config/file"
	"github.com/tanelv/libris/internal/adapters/driven/storage/sqlite"
	"github.com/tanelv/libris/internal/core/ports/driving"
	"github.com/tanelv/libris/internal/core/services"
	"github.com/tanelv/libris/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag bool
	dataDir     string
	configDir   string

	lendingService driving.LendingService
	catalogService driving.CatalogService
	reportService  driving.ReportService

	store *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "libris",
	Short: "Library lending management",
	Long: `Libris manages a library catalogue: borrowing, returns with
reservation hand-off, FIFO reservation queues, and member records.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return wireServices()
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if store != nil {
			err := store.Close()
			store = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.libris/data)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.libris)")
}

// wireServices builds the dependency graph: SQLite stores, TOML config,
// core services. Tests inject their own services via SetServices, in
// which case wiring is skipped.
func wireServices() error {
	if lendingService != nil {
		return nil
	}

	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening data store: %w", err)
	}

	books := store.BookStore()
	members := store.MemberStore()
	policy := services.PolicyFromConfig(cfg)

	lendingService = services.NewLendingService(books, members, policy)
	catalogService = services.NewCatalogService(books, members)
	reportService = services.NewReportService(books, members)
	return nil
}

// SetServices injects pre-built services, bypassing store wiring.
// Used by tests and alternate entry points.
func SetServices(
	lending driving.LendingService,
	catalog driving.CatalogService,
	reports driving.ReportService,
) {
	lendingService = lending
	catalogService = catalog
	reportService = reports
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
