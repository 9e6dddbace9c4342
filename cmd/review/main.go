// Command review runs a batch review over a directory of PDFs and writes the
// spreadsheet report to disk. It needs no database or blob storage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JaimeStill/revisor/internal/config"
	"github.com/JaimeStill/revisor/internal/oracle"
	"github.com/JaimeStill/revisor/internal/policy"
	"github.com/JaimeStill/revisor/internal/report"
	"github.com/JaimeStill/revisor/internal/signature"
	"github.com/JaimeStill/revisor/internal/workflow"
)

func main() {
	var (
		dir     = flag.String("dir", ".", "Directory containing the PDFs to review")
		out     = flag.String("out", report.Filename, "Path of the xlsx report to write")
		workers = flag.Int("workers", 0, "Concurrent oracle calls (default from config)")
		level   = flag.String("level", "info", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*level)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -level %q\n", *level)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	loadDotenv(logger)

	cfg, err := config.LoadOffline()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Review.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *dir, *out, logger); err != nil {
		logger.Error("review failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dir, out string, logger *slog.Logger) error {
	inputs, err := readInputs(dir)
	if err != nil {
		return err
	}
	logger.Info("reviewing documents", "dir", dir, "files", len(inputs), "workers", cfg.Review.Workers)

	rt := &workflow.Runtime{
		Oracle:     oracle.New(&cfg.Oracle, logger),
		Signatures: signature.Default,
		Policy:     policy.New(policy.Options{MaxRecordAge: cfg.Review.MaxRecordAge}),
		Logger:     logger.With("workflow", "review"),
		Workers:    cfg.Review.Workers,
	}

	result, err := workflow.Execute(ctx, rt, inputs)
	if err != nil {
		return fmt.Errorf("execute review: %w", err)
	}

	for _, c := range result.Classifications {
		logger.Debug("classified",
			"file", c.File,
			"role", c.Role,
			"identifier", c.Identifier,
		)
	}

	data, err := report.Write(result.Rows)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	logger.Info("review complete",
		"out", out,
		"pairs", result.Pairs,
		"orphans", result.Orphans,
		"approved", result.Count(policy.Approved),
		"needs_review", result.Count(policy.NeedsReview),
		"rejected", result.Count(policy.Rejected),
	)
	return nil
}

// readInputs loads every .pdf file directly under dir, sorted by name.
func readInputs(dir string) ([]workflow.Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var inputs []workflow.Input
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		inputs = append(inputs, workflow.Input{Name: e.Name(), Data: data})
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w in %s", workflow.ErrNoInputs, dir)
	}

	slices.SortFunc(inputs, func(a, b workflow.Input) int {
		return strings.Compare(a.Name, b.Name)
	})
	return inputs, nil
}

// loadDotenv applies .env files when present. A missing file is normal; any
// other failure is logged and the environment is used as-is.
func loadDotenv(logger *slog.Logger, files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("dotenv load failed", "error", err)
	}
}
