package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/batch"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/config"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/crawler"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/enrich"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/fetch"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/setup"
)

func main() {
	// --- Early Initialization & Flags ---
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel) // Default level

	configFileFlag := flag.String("config", "config.yaml", "Path to YAML config file")
	inputFlag := flag.String("input", "", "Input table of businesses (.xlsx or .csv, required)")
	outputFlag := flag.String("output", "results.xlsx", "Output workbook path")
	logLevelFlag := flag.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")
	noEnrichFlag := flag.Bool("no-enrich", false, "Disable AI enrichment regardless of config")
	flag.Parse()

	// --- Logger Configuration ---
	level, err := logrus.ParseLevel(*logLevelFlag)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", *logLevelFlag, err)
	} else {
		log.SetLevel(level)
	}

	if *inputFlag == "" {
		log.Fatal("Error: -input flag is required.")
	}

	// --- Load Application Configuration ---
	var appCfg config.AppConfig
	if yamlFile, err := os.ReadFile(*configFileFlag); err == nil {
		if err := yaml.Unmarshal(yamlFile, &appCfg); err != nil {
			log.Fatalf("Parse config file '%s' error: %v", *configFileFlag, err)
		}
		log.Infof("Loaded configuration from %s", *configFileFlag)
	} else if !os.IsNotExist(err) {
		log.Fatalf("Read config file '%s' error: %v", *configFileFlag, err)
	} else {
		log.Infof("No config file at %s, using defaults", *configFileFlag)
	}

	warnings, err := appCfg.Validate()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	for _, w := range warnings {
		log.Warn(w)
	}

	if *noEnrichFlag {
		appCfg.Enrich.Enabled = false
	}
	logAppConfig(&appCfg, log)

	// --- Environment ---
	if err := setup.ValidateEnv(appCfg.Enrich.Enabled, log); err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}

	// --- Global Context & Signal Handling ---
	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		sig := <-sigChan
		log.Warnf("Received signal: %v. Initiating graceful shutdown...", sig)
		cancelRun()

		select {
		case sig = <-sigChan:
			log.Warnf("Received second signal: %v. Forcing exit.", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			log.Warn("Graceful shutdown period exceeded after signal. Forcing exit.")
			os.Exit(1)
		}
	}()

	// --- Initialize Components ---
	log.Info("Initializing components...")

	httpClient := fetch.NewClient(appCfg.HTTPClientSettings, log)
	fetcher := fetch.NewFetcher(httpClient, appCfg.Crawl.MaxBodySizeBytes, log)
	pacer := fetch.NewPacer(appCfg.Crawl.PageDelay, log)
	siteCrawler := crawler.New(fetcher, pacer, appCfg.Crawl, log)

	usage := enrich.NewUsageTracker(log)
	var enricher batch.Enricher
	if appCfg.Enrich.Enabled {
		e, err := enrich.New(appCfg.Enrich, usage, log)
		if err != nil {
			log.Fatalf("Failed to initialize enrichment: %v", err)
		}
		enricher = e
	} else {
		log.Info("AI enrichment disabled.")
	}

	runner := batch.NewRunner(siteCrawler, enricher, appCfg.Batch, log)

	// --- Load Input & Run ---
	businesses, err := batch.ReadBusinesses(*inputFlag, appCfg.Batch.SheetName)
	if err != nil {
		log.Fatalf("Failed to read input table: %v", err)
	}
	log.Infof("Loaded %d businesses from %s", len(businesses), *inputFlag)

	results := runner.Run(runCtx, businesses)

	// --- Write Results ---
	if err := batch.WriteResultsXLSX(*outputFlag, appCfg.Batch.SheetName, results); err != nil {
		log.Errorf("Failed to write results workbook: %v", err)
	} else {
		log.Infof("Wrote results to %s", *outputFlag)
	}

	jsonlPath := strings.TrimSuffix(*outputFlag, filepath.Ext(*outputFlag)) + ".jsonl"
	if err := batch.WriteResultsJSONL(jsonlPath, results); err != nil {
		log.Errorf("Failed to write JSONL results: %v", err)
	} else {
		log.Infof("Wrote structured results to %s", jsonlPath)
	}

	if appCfg.Enrich.Enabled {
		summary := usage.Summary()
		log.Infof("Token usage: %d tokens over %d calls, $%.4f total",
			summary.TotalTokens, summary.NumberOfCalls, summary.TotalCost)
	}

	// --- Exit ---
	if err := runCtx.Err(); errors.Is(err, context.Canceled) {
		log.Warn("Run cancelled gracefully.")
		os.Exit(0)
	}
	log.Info("Run completed successfully.")
}

// logAppConfig logs the effective global configuration
func logAppConfig(appCfg *config.AppConfig, log *logrus.Logger) {
	log.Infof("Crawl Config: MaxPages:%d, PageDelay:%v, FetchTimeout:%v, MaxBodySize:%d bytes",
		appCfg.Crawl.MaxPages, appCfg.Crawl.PageDelay, appCfg.Crawl.FetchTimeout, appCfg.Crawl.MaxBodySizeBytes)
	log.Infof("Batch Config: Concurrency:%d, BusinessDelay:%v-%v, Sheet:'%s'",
		appCfg.Batch.Concurrency, appCfg.Batch.MinBusinessDelay, appCfg.Batch.MaxBusinessDelay, appCfg.Batch.SheetName)
	log.Infof("Enrich Config: Enabled:%t, Model:'%s', Temperature:%.1f, MaxContentChars:%d",
		appCfg.Enrich.Enabled, appCfg.Enrich.Model, appCfg.Enrich.Temperature, appCfg.Enrich.MaxContentChars)
	log.Infof("HTTP Client: Timeout:%v, MaxIdle:%d, MaxIdlePerHost:%d",
		appCfg.HTTPClientSettings.Timeout, appCfg.HTTPClientSettings.MaxIdleConns, appCfg.HTTPClientSettings.MaxIdleConnsPerHost)
}
