package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/toolhub/internal/cache"
	"github.com/iwvelando/toolhub/internal/calculator"
	"github.com/iwvelando/toolhub/internal/config"
	"github.com/iwvelando/toolhub/internal/logging"
	"github.com/iwvelando/toolhub/pkg/constants"
	"github.com/iwvelando/toolhub/pkg/output"
	"github.com/iwvelando/toolhub/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Environment overrides may live in a .env file; it is optional.
	_ = godotenv.Load()

	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	schedule := flag.Bool("schedule", false, "include amortization schedules and yearly breakdowns in pretty output")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx := context.Background()

	// A one-shot run gains little from a shared cache, but a redis backend
	// lets repeated runs reuse earlier results.
	resultCache, err := cache.New(ctx, conf.Cache)
	if err != nil {
		logger.Warn("result cache unavailable, continuing without it",
			zap.String("op", "main"),
			zap.Error(err),
		)
		resultCache = cache.Nop{}
	}
	defer func() {
		_ = resultCache.Close()
	}()

	service := calculator.New(logger, resultCache)
	results, calcWarnings, err := service.Batch(ctx, conf)
	if err != nil {
		logger.Fatal("failed to run calculations",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range calcWarnings {
		logger.Warn("Calculation skipped: "+warning,
			zap.String("op", "main"),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(os.Stdout, results, *schedule || conf.Output.Schedule)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, results)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
