package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"ledger/internal/config"
	"ledger/internal/database"
	"ledger/internal/logger"
	"ledger/internal/services"
)

const dateFormat = "2006-01-02"

func main() {
	description := flag.String("description", "", "filter: exact purchase description")
	category := flag.String("category", "", "filter: category name")
	from := flag.String("from", "", "filter: inclusive start date (YYYY-MM-DD)")
	to := flag.String("to", "", "filter: inclusive end date (YYYY-MM-DD)")
	top := flag.Int("top", 0, "rank by most common description, keeping the top N (0 lists all matching purchases instead)")
	flag.Parse()

	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()
	log := logger.Named("report")

	if err := run(*description, *category, *from, *to, *top); err != nil {
		log.Fatalf("Report failed: %v", err)
	}
}

func run(description, category, from, to string, top int) error {
	filter, err := buildFilter(description, category, from, to)
	if err != nil {
		return err
	}

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	db := dbManager.DB()
	purchaseService := services.NewPurchaseService(db, services.NewCategoryService(db))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if top > 0 {
		ranked, err := purchaseService.MostCommonPurchases(filter, &top)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "COUNT\tLATEST\tDESCRIPTION\tAMOUNT")
		for _, r := range ranked {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.Occurrences, r.Date.Format(dateFormat), r.Description, formatCents(r.Amount))
		}
		return nil
	}

	purchases, err := purchaseService.ListPurchases(filter)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "DATE\tDESCRIPTION\tAMOUNT")
	for _, p := range purchases {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Date.Format(dateFormat), p.Description, formatCents(p.Amount))
	}
	return nil
}

// buildFilter translates CLI flags into a PurchaseFilter. An empty flag is
// an absent predicate; there is no way to filter on an empty description
// from this CLI, which is fine for reporting.
func buildFilter(description, category, from, to string) (services.PurchaseFilter, error) {
	var filter services.PurchaseFilter
	if description != "" {
		filter.Description = &description
	}
	if category != "" {
		filter.Category = &category
	}
	if from != "" {
		t, err := time.Parse(dateFormat, from)
		if err != nil {
			return filter, fmt.Errorf("invalid -from date %q: %w", from, err)
		}
		filter.StartDate = &t
	}
	if to != "" {
		t, err := time.Parse(dateFormat, to)
		if err != nil {
			return filter, fmt.Errorf("invalid -to date %q: %w", to, err)
		}
		filter.EndDate = &t
	}
	return filter, nil
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
