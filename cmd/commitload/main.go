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
	"github.com/poiesic/commitload/ingestion"
	"github.com/poiesic/commitload/source"
	"github.com/poiesic/commitload/storage/elastic"
	"github.com/urfave/cli/v2"
)

// healthTimeout bounds the final cluster-health poll.
const healthTimeout = 1 * time.Second

func main() {
	// Load optional .env credentials before flag parsing so the EnvVars
	// defaults on --username/--password see them.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("failed to load .env file: %v", err)
	}

	app := newApp()

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "commitload",
		Usage:  "Import code-review commit metrics into Elasticsearch",
		Before: setup,
		Action: importCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Usage:    "File-glob pattern for metrics export files",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "max_workers",
				Usage: "Worker pool size; in-flight budget is twice this",
				Value: ingestion.DefaultPoolSize,
			},
			&cli.StringFlag{
				Name:    "username",
				Usage:   "Store username",
				EnvVars: []string{"ES_USERNAME"},
			},
			&cli.StringFlag{
				Name:    "password",
				Usage:   "Store password",
				EnvVars: []string{"ES_PASSWORD"},
			},
			&cli.StringFlag{
				Name:  "cluster",
				Usage: "Store host",
				Value: "127.0.0.1",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Store port",
				Value: 9002,
			},
			&cli.BoolFlag{
				Name:  "sniff",
				Usage: "Enable cluster node auto-discovery on connect",
			},
			&cli.BoolFlag{
				Name:  "cleanup",
				Usage: "Delete the target index before recreating it",
			},
			&cli.IntFlag{
				Name:  "report_interval",
				Usage: "Report progress every N records",
				Value: 1000,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
	}
}

func importCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := elastic.Connect(ctx, &elastic.Config{
		Cluster:  c.String("cluster"),
		Port:     c.Int("port"),
		Username: c.String("username"),
		Password: c.String("password"),
		Sniff:    c.Bool("sniff"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if c.Bool("cleanup") {
		slog.Info("deleting index", "index", elastic.IndexName)
		if err := store.DeleteIndex(ctx); err != nil {
			return err
		}
	}

	if err := store.EnsureIndex(ctx); err != nil {
		return err
	}

	loader, err := ingestion.NewLoader(store,
		ingestion.WithPoolSize(c.Int("max_workers")),
		ingestion.WithProgress(os.Stderr, c.Int("report_interval")),
	)
	if err != nil {
		return err
	}
	defer loader.Release()

	stats, runErr := loader.Run(ctx, source.NewScanner(c.String("input")))
	slog.Info("import finished",
		"submitted", stats.Submitted,
		"created", stats.Created,
		"conflicts", stats.Conflicts,
		"failed", stats.Failed)

	// The health check gets its own context: a run interrupted by a
	// signal should still report the state the cluster was left in.
	healthCtx, cancel := context.WithTimeout(context.Background(), 2*healthTimeout)
	defer cancel()

	status, err := store.Health(healthCtx, "yellow", healthTimeout)
	if err != nil {
		slog.Warn("cluster health check failed", "err", err)
	} else {
		fmt.Printf("cluster health: %s\n", status)
	}

	// Per-record failures were already logged; only source or
	// cancellation errors make the run fail.
	return runErr
}

// setup configures logging from the log-level flag.
func setup(c *cli.Context) error {
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
