package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/arthsutra/bazaar-harvester/internal/archive"
	"github.com/arthsutra/bazaar-harvester/internal/config"
	"github.com/arthsutra/bazaar-harvester/internal/domain"
	"github.com/arthsutra/bazaar-harvester/internal/enrich"
	"github.com/arthsutra/bazaar-harvester/internal/export"
	"github.com/arthsutra/bazaar-harvester/internal/harvester"
	"github.com/arthsutra/bazaar-harvester/internal/logger"
	"github.com/arthsutra/bazaar-harvester/internal/relevance"
	"github.com/arthsutra/bazaar-harvester/pkg/gdelt"
	"github.com/arthsutra/bazaar-harvester/pkg/httpclient"
	"github.com/arthsutra/bazaar-harvester/pkg/publishers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "harvester: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	// Credentials for publishers ride in through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log, err := logger.NewZapLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := relevance.NewEngine(cfg.Keywords)
	if err != nil {
		return err
	}

	client := gdelt.NewClient(
		httpclient.NewRestyClient(cfg.GDELT.Timeout),
		cfg.GDELT.BaseURL,
		cfg.GDELT.MaxRecords,
	)

	fetcher, err := harvester.NewGDELTFetcher(client, engine)
	if err != nil {
		return err
	}

	orch := harvester.NewOrchestrator(fetcher, harvester.Options{
		StartDate:    cfg.StartDate,
		EndDate:      cfg.EndDate,
		CompanyQuery: cfg.CompanyQuery,
		SectorQuery:  cfg.SectorQuery,
		CompanyLimit: cfg.CompanyLimit,
		SectorLimit:  cfg.SectorLimit,
		RequestDelay: cfg.RequestDelay,
	}, log)

	accumulated, totals, err := orch.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		log.WarnObj("harvest interrupted, exporting partial accumulation", "harvest_interrupted", map[string]any{
			"accumulated": len(accumulated),
		})
	}

	rows := export.Dedupe(accumulated)
	export.SortBySeenDate(rows)

	var store *archive.Store
	if cfg.Archive.Path != "" {
		store, err = archive.Open(cfg.Archive.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		rows, err = store.FilterUnseen(rows)
		if err != nil {
			return err
		}
	}

	writer := export.NewWriter(cfg.OutputFile, log)
	saved, err := writer.Write(rows)
	if errors.Is(err, export.ErrNoArticles) {
		fmt.Println("No articles fetched.")
		return nil
	}
	if err != nil {
		return err
	}

	if store != nil {
		if err := store.MarkAll(rows); err != nil {
			log.WarnObj("failed to record exported articles", "archive_mark_error", map[string]any{
				"error": err.Error(),
			})
		}
	}

	if err := publish(ctx, cfg, rows, log); err != nil {
		return err
	}

	fmt.Printf("Total saved: %d | company %d | sector %d\n", saved, totals.Company, totals.Sector)
	fmt.Printf("File: %s\n", cfg.OutputFile)
	return nil
}

// publish runs the optional enrich and publish stages over the exported rows.
func publish(ctx context.Context, cfg *config.Config, rows []domain.Article, log logger.Logger) error {
	if cfg.PublishersFile == "" {
		return nil
	}

	reg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return err
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), reg.Enabled(), log)
	if err != nil {
		return err
	}
	if len(pubs) == 0 {
		return nil
	}

	if cfg.Enrich.Enabled {
		enricher := enrich.NewEnricher(
			httpclient.NewRestyClient(cfg.GDELT.Timeout),
			cfg.Enrich.UserAgent,
			log,
		)
		rows = enricher.Enrich(ctx, rows, cfg.Enrich.Delay)
	}

	delivered := publishers.PublishArticles(ctx, pubs, rows, log)
	log.InfoObj("publish complete", "publish_done", map[string]any{
		"publishers": len(pubs),
		"delivered":  delivered,
	})
	return nil
}
