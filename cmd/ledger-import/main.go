package main

import (
	"flag"
	"fmt"
	"os"

	"ledger/internal/config"
	"ledger/internal/database"
	"ledger/internal/ingest"
	"ledger/internal/logger"
	"ledger/internal/services"
)

func main() {
	file := flag.String("file", "", "path to the CSV file to import")
	kind := flag.String("kind", "purchases", "record kind: purchases or payperiods")
	flag.Parse()

	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()
	log := logger.Named("import")

	if *file == "" {
		log.Fatal("-file is required")
	}

	if err := run(*file, *kind); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
}

func run(path, kind string) error {
	log := logger.Named("import")

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.AutoMigrate(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	db := dbManager.DB()
	var summary *services.ImportSummary

	switch kind {
	case "purchases":
		categoryService := services.NewCategoryService(db)
		purchaseService := services.NewPurchaseService(db, categoryService)
		summary, err = purchaseService.AddPurchases(ingest.NewPurchaseCSV(f))
	case "payperiods":
		payPeriodService := services.NewPayPeriodService(db)
		summary, err = payPeriodService.AddPayPeriods(ingest.NewPayPeriodCSV(f))
	default:
		return fmt.Errorf("unknown record kind %q (want purchases or payperiods)", kind)
	}
	if err != nil {
		return err
	}

	log.Infow("Import committed",
		"import_id", summary.ImportID,
		"records", summary.Records,
		"created_categories", summary.CreatedCategories,
	)
	return nil
}
