// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/lexfeed"
	"github.com/poiesic/lexfeed/config"
)

func main() {
	app := &cli.App{
		Name:  "lexfeed",
		Usage: "Regulatory document feed ingestion daemon",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the ingestion daemon with scheduled collection",
				Action: runCommand,
			},
			{
				Name:   "collect",
				Usage:  "Run one collection cycle and exit",
				Action: collectCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Limit the cycle to the given source IDs",
					},
				},
			},
			{
				Name:   "backfill",
				Usage:  "Repair knowledge records missing embeddings and exit",
				Action: backfillCommand,
			},
			{
				Name:   "status",
				Usage:  "Print 24h processing statistics and configured sources",
				Action: statusCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down")
	svc.Stop()
	return nil
}

func collectCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.TriggerCollection(context.Background(), c.StringSlice("source")...)
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	fmt.Printf("Cycle %s: %d feeds, %d items, %d new, %d updated, %d errors in %v\n",
		result.ID, result.FeedsProcessed, result.ItemsTotal,
		result.NewDocuments, result.UpdatedDocs, result.Errors, result.Duration.Round(time.Millisecond))
	for _, sr := range result.Sources {
		fmt.Printf("  %-24s new=%d updated=%d skipped=%d errors=%d", sr.Source,
			sr.NewDocuments, sr.UpdatedDocs, sr.Skipped, sr.Errors)
		if sr.Error != "" {
			fmt.Printf("  (%s)", sr.Error)
		}
		fmt.Println()
	}
	if result.Errors > 0 {
		return fmt.Errorf("cycle finished with %d errors", result.Errors)
	}
	return nil
}

func backfillCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Backfill(context.Background())
	if err != nil {
		return fmt.Errorf("backfill failed: %w", err)
	}
	fmt.Printf("Repaired %d items and %d chunks, %d failures in %v\n",
		result.ItemsRepaired, result.ChunksRepaired, result.Failures, result.Elapsed.Round(time.Millisecond))
	return nil
}

func statusCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	stats, err := svc.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read statistics: %w", err)
	}
	fmt.Printf("Last 24h: %d operations, %d created, %d updated, %d skipped, %d errors\n",
		stats.Operations, stats.Created, stats.Updated, stats.Skipped, stats.Errors)

	fmt.Println("Sources:")
	for _, src := range svc.Registry().All() {
		state := "enabled"
		if !src.Enabled {
			state = "disabled"
		}
		fmt.Printf("  %-24s %-10s %s\n", src.ID, state, src.URL)
	}

	entries, err := svc.RecentLog(context.Background(), 10)
	if err != nil {
		return fmt.Errorf("failed to read processing log: %w", err)
	}
	if len(entries) > 0 {
		fmt.Println("Recent operations:")
		for _, e := range entries {
			fmt.Printf("  %s  %-10s %-8s %s\n",
				e.Timestamp.Format(time.RFC3339), e.Operation, e.Status, e.DocumentURL)
		}
	}
	return nil
}

func newService(c *cli.Context) (*lexfeed.Service, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	return lexfeed.NewService(cfg)
}

func setup(c *cli.Context) error {
	// A local .env is optional.
	_ = godotenv.Load()

	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
