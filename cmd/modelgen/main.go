package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/apiforge/modelgen/internal/cache"
	"github.com/apiforge/modelgen/internal/crawler"
	"github.com/apiforge/modelgen/internal/fetch"
	"github.com/apiforge/modelgen/internal/logger"
	"github.com/apiforge/modelgen/internal/model"
)

var (
	version = "1.0.0"

	// Global flags
	configFile string
	logFile    string
	verbose    bool
	debug      bool

	// Generate flags
	indexURL    string
	docsBase    string
	concurrency int
	batchDelay  time.Duration
	timeout     time.Duration
	stream      bool
	keepMinimal bool
	cachePath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "modelgen",
		Short: "modelgen - API documentation model generator",
		Long: `modelgen - Generate typed model source files from REST API documentation.

Crawls a documentation site's resource index, follows each resource's
detail page, and emits one Go model file per resource grouped by service.`,
		Version: version,
	}

	generateCmd := &cobra.Command{
		Use:   "generate [output-dir]",
		Short: "Generate model files",
		Long:  "Crawl the documentation site and generate model source files into the given directory.",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write structured logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug mode")

	// Generate flags
	generateCmd.Flags().StringVar(&indexURL, "index-url", crawler.DefaultIndexURL, "URL of the resource index page")
	generateCmd.Flags().StringVar(&docsBase, "docs-base", crawler.DefaultDocsBase, "Base URL for resolving relative detail links")
	generateCmd.Flags().IntVarP(&concurrency, "concurrency", "n", 8, "Detail pages fetched concurrently per batch")
	generateCmd.Flags().DurationVar(&batchDelay, "batch-delay", 500*time.Millisecond, "Pause between detail batches")
	generateCmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Per-request timeout")
	generateCmd.Flags().BoolVar(&stream, "stream", false, "Write each model file as soon as its resource is parsed")
	generateCmd.Flags().BoolVar(&keepMinimal, "keep-minimal", false, "Keep index-only models for resources whose detail fetch failed")
	generateCmd.Flags().StringVar(&cachePath, "cache", "", "Path to a page cache file (disabled when empty)")

	rootCmd.AddCommand(generateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	config := crawler.DefaultConfig()

	// Load config file first; command-line flags take precedence.
	if configFile != "" {
		fileConfig, err := crawler.LoadFromFile(configFile)
		if err != nil {
			return err
		}
		config = fileConfig
	}

	config.OutputDir = args[0]

	if cmd.Flags().Changed("index-url") || config.IndexURL == "" {
		config.IndexURL = indexURL
	}
	if cmd.Flags().Changed("docs-base") || config.DocsBase == "" {
		config.DocsBase = docsBase
	}
	if cmd.Flags().Changed("concurrency") {
		config.Concurrency = concurrency
	}
	if cmd.Flags().Changed("batch-delay") {
		config.BatchDelay = batchDelay
	}
	if cmd.Flags().Changed("timeout") {
		config.Timeout = timeout
	}
	if cmd.Flags().Changed("stream") {
		config.Stream = stream
	}
	if cmd.Flags().Changed("keep-minimal") {
		config.KeepMinimalOnError = keepMinimal
	}
	if cmd.Flags().Changed("cache") {
		config.CachePath = cachePath
	}
	config.Verbose = verbose
	config.Debug = debug

	if err := config.Validate(); err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	if verbose {
		logCfg.Level = logger.DebugLevel
	}
	if debug {
		logCfg.Level = logger.DebugLevel
		logCfg.Pretty = false
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		// Structured JSON to both destinations when teeing to a file.
		logCfg.Output = io.MultiWriter(os.Stderr, f)
		logCfg.Pretty = false
	}
	log := logger.New(logCfg)

	fetchCfg := fetch.DefaultConfig()
	fetchCfg.Timeout = config.Timeout
	client := fetch.NewClient(fetchCfg, log)
	defer client.Close()

	if config.CachePath != "" {
		pageCache, err := cache.Open(config.CachePath)
		if err != nil {
			return fmt.Errorf("failed to open page cache: %w", err)
		}
		defer pageCache.Close()
		client.SetCache(pageCache)
	}

	c, err := crawler.New(
		crawler.WithConfig(config),
		crawler.WithLogger(log),
		crawler.WithFetcher(client),
	)
	if err != nil {
		return fmt.Errorf("failed to create crawler: %w", err)
	}

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
		cancel()
	}()

	printBanner(config)

	startTime := time.Now()
	result, err := c.Run(ctx)
	duration := time.Since(startTime)

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if result != nil {
		printSummary(result, duration)
	}

	return nil
}

func printBanner(config *crawler.Config) {
	fmt.Println()
	fmt.Printf("modelgen v%s\n", version)
	fmt.Println()
	fmt.Printf("Index:       %s\n", config.IndexURL)
	fmt.Printf("Output:      %s\n", config.OutputDir)
	fmt.Printf("Concurrency: %d\n", config.Concurrency)
	fmt.Printf("Batch delay: %v\n", config.BatchDelay)
	fmt.Println()
	fmt.Println("Starting crawl...")
	fmt.Println()
}

func printSummary(result *model.CrawlResult, duration time.Duration) {
	fmt.Println()
	fmt.Println("Generation Summary")
	fmt.Println("------------------")
	fmt.Printf("Duration:             %v\n", duration.Round(time.Millisecond))
	fmt.Printf("Resources discovered: %d\n", result.Stats.ResourcesDiscovered)
	fmt.Printf("Detail pages parsed:  %d\n", result.Stats.ResourcesDetailed)
	fmt.Printf("Files generated:      %d\n", result.Stats.FilesGenerated)
	fmt.Printf("Errors:               %d\n", result.Stats.Errors)
	fmt.Println()

	if len(result.GeneratedFiles) > 0 {
		fmt.Println("Generated files:")
		count := 10
		if len(result.GeneratedFiles) < count {
			count = len(result.GeneratedFiles)
		}
		for i := 0; i < count; i++ {
			fmt.Printf("  %s\n", result.GeneratedFiles[i])
		}
		if len(result.GeneratedFiles) > 10 {
			fmt.Printf("  ... and %d more\n", len(result.GeneratedFiles)-10)
		}
		fmt.Println()
	}

	if !result.Success {
		fmt.Printf("Crawl failed: %s\n", result.Error)
	}
}
