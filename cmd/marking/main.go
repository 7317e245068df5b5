// Command marking runs a cooperative exam marking session.
//
//	marking [-config marking.yaml] [-unsynchronized] [-trace spans.json] <number_of_TAs>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/viant/marking"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("marking", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configURL := flags.String("config", "", "YAML config location")
	unsynchronized := flags.Bool("unsynchronized", false, "run without locks (race baseline)")
	traceFile := flags.String("trace", "", "OpenTelemetry span output file")
	verbose := flags.Bool("v", false, "debug logging")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	workers, err := marking.ParseWorkers(flags.Args())
	if err != nil {
		if errors.Is(err, marking.ErrInvalidWorkers) {
			fmt.Fprintln(stdout, "Number of TAs must be at least 2")
		} else {
			fmt.Fprintf(stdout, "Usage: %s <number_of_TAs>\n", flags.Name())
		}
		return 1
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config := marking.DefaultConfig()
	if *configURL != "" {
		if config, err = marking.LoadConfig(ctx, *configURL, nil); err != nil {
			logger.Error("failed to load config", "error", err)
			return 1
		}
	}
	config.Workers = workers
	if *unsynchronized {
		config.Unsynchronized = true
	}
	if *traceFile != "" {
		config.TraceFile = *traceFile
	}

	srv := marking.New(marking.WithConfig(config), marking.WithOutput(stdout), marking.WithLogger(logger))
	report, err := srv.Run(ctx)
	if err != nil {
		logger.Error("marking failed", "error", err)
		return 1
	}
	logger.Info("run summary",
		"run", report.RunID,
		"exams", report.ExamsProcessed,
		"corrections", report.Corrections,
		"duplicates", len(report.Duplicates),
		"finishedBy", report.FinishedBy,
		"elapsed", report.Elapsed)
	if report.RubricDiff != "" {
		logger.Debug("rubric changes\n" + report.RubricDiff)
	}
	return 0
}
