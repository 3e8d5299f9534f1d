package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/damwatch/gridcheck/internal/app"
	"github.com/damwatch/gridcheck/internal/htmltable"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		inputPath   string
		tableID     string
		sourceLabel string
		samples     int
		outputPath  string
		pdfPath     string
		recordsPath string
		inspectOnly bool
		verbose     bool
		logFile     string
		configPath  string
		showVersion bool
	)

	flag.StringVar(&inputPath, "input", "", "Path to the saved HTML document to check")
	flag.StringVar(&tableID, "table.id", app.DefaultTableID, "id attribute of the table to extract")
	flag.StringVar(&sourceLabel, "source.label", app.DefaultSourceLabel, "Source label stamped on every record")
	flag.IntVar(&samples, "samples", app.DefaultSampleCount, "Number of sample records to print in the report")
	flag.StringVar(&outputPath, "output", "", "Optional path to write the Markdown report")
	flag.StringVar(&pdfPath, "output.pdf", "", "Optional path to write a PDF rendering of the report")
	flag.StringVar(&recordsPath, "output.records", "", "Optional path to write extracted records as JSON")
	flag.BoolVar(&inspectOnly, "inspect", false, "Print a document overview (title, table count, table ids) and exit")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.StringVar(&logFile, "log.file", "", "Optional rotating log file in addition to stderr")
	flag.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	flag.BoolVar(&showVersion, "version", false, "Print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("gridcheck %s (commit %s, built %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return
	}

	cfg := app.Config{
		InputPath:   inputPath,
		TableID:     tableID,
		SourceLabel: sourceLabel,
		SampleCount: samples,
		OutputPath:  outputPath,
		PDFPath:     pdfPath,
		RecordsPath: recordsPath,
		InspectOnly: inspectOnly,
		Verbose:     verbose,
		LogFile:     logFile,
	}

	// Precedence: flags, then environment, then config file.
	if err := app.LoadEnvFiles(".env"); err != nil {
		log.Warn().Err(err).Msg("env file load failed")
	}
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file load failed")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		flag.Usage()
		os.Exit(1)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if cfg.LogFile != "" {
		console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		sink := zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
		log.Logger = zerolog.New(sink).With().Timestamp().Logger()
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: a missing table is the one condition callers
		// script against, so it gets a distinct code.
		if errors.Is(err, htmltable.ErrTableNotFound) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a := app.New(cfg)
	defer a.Close()

	return a.Run(ctx)
}
