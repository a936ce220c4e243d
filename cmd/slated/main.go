package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slate/internal/analysis/simulated"
	"slate/internal/config"
	"slate/internal/daemon"
	"slate/internal/indexing"
	"slate/internal/logging"
	"slate/internal/pipeline"
	"slate/internal/search"
	"slate/internal/takes"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	ingestPath := flag.String("ingest", "", "ingest a moment export JSON file into the index and exit")
	flag.Parse()

	if err := run(*configPath, *ingestPath); err != nil {
		fmt.Fprintln(os.Stderr, "slated:", err)
		os.Exit(1)
	}
}

func run(configPath, ingestPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if exists {
		logger.Info("configuration loaded", logging.String("path", resolved))
	} else {
		logger.Info("no config file found, using defaults", logging.String("search_path", resolved))
	}

	store, err := takes.Open(cfg)
	if err != nil {
		return fmt.Errorf("open take store: %w", err)
	}

	index, err := search.NewFileIndex(cfg.MomentIndexPath())
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("open moment index: %w", err)
	}
	logger.Info("moment index ready",
		logging.String("path", index.Path()),
		logging.Int("moments", index.Len()),
	)

	if ingestPath != "" {
		defer store.Close()
		count, err := search.IngestExport(ctx, ingestPath, index, logger)
		if err != nil {
			return fmt.Errorf("ingest export: %w", err)
		}
		fmt.Printf("Ingested %d moments from %s\n", count, ingestPath)
		return nil
	}

	tracker := pipeline.NewTracker(
		time.Duration(cfg.Pipeline.ProgressTTLMinutes)*time.Minute,
		cfg.Pipeline.ProgressMaxRecords,
	)
	adapter := indexing.NewAdapter(
		search.NewLocalEmbedder(0),
		index,
		store,
		cfg.Indexing.SnippetLimit,
		logger,
	)
	orch := pipeline.New(store, cfg, tracker, pipeline.Dependencies{
		Visual:  simulated.Visual{},
		Audio:   simulated.Audio{},
		Aligner: simulated.Aligner{},
		Indexer: adapter,
	}, logger)

	d, err := daemon.New(cfg, store, orch, tracker, logger)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("create daemon: %w", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close daemon: %v", err)
		}
	}()

	if err := d.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("slated shutting down")
	return nil
}
