package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/grocerly/receipt-scan/internal/extract"
	"github.com/grocerly/receipt-scan/internal/heuristics"
	"github.com/grocerly/receipt-scan/internal/receipt"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("receipt-scan")
	var (
		port           = fs.IntLong("port", 8080, "HTTP server port")
		heuristicsPath = fs.StringLong("heuristics", "", "YAML file overlaying the built-in heuristic tables")
		fallbackMin    = fs.IntLong("fallback-threshold", 0, "Item count below which the fallback scan runs (0 = table default)")
		inputPath      = fs.StringLong("input", "", "Extract a single transcript file, print JSON, and exit")
		authUser       = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass       = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion    = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_SCAN"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Load heuristic tables
	tables := heuristics.Default()
	if *heuristicsPath != "" {
		slog.Info("Loading heuristics overlay...", "path", *heuristicsPath)
		var err error
		tables, err = heuristics.Load(*heuristicsPath)
		if err != nil {
			slog.Error("Failed to load heuristics", "error", err)
			os.Exit(1)
		}
	}
	if *fallbackMin > 0 {
		tables.FallbackThreshold = *fallbackMin
	}

	extractor := extract.New(tables)
	service := receipt.NewService(extractor)

	// One-shot mode: extract a transcript file and print the summary
	if *inputPath != "" {
		data, err := os.ReadFile(*inputPath)
		if err != nil {
			slog.Error("Failed to read input file", "path", *inputPath, "error", err)
			os.Exit(1)
		}
		summary, err := service.ExtractReceipt(string(data), 0)
		if err != nil {
			slog.Error("Extraction failed", "path", *inputPath, "error", err)
			os.Exit(1)
		}
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			slog.Error("Failed to encode summary", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	// Initialize server
	basicAuth := receipt.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := receipt.NewServer(service, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
