package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/meltforce/repforge/internal/sync"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	// Optional .env for REPFORGE_SERVER / REPFORGE_API_KEY
	_ = godotenv.Load()

	serverURL := flag.String("server", os.Getenv("REPFORGE_SERVER"), "RepForge server URL (e.g. https://repforge.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("REPFORGE_API_KEY"), "API key for session ingest")
	dir := flag.String("path", "", "directory of exported session .json files")
	dryRun := flag.Bool("dry-run", false, "parse and validate but don't send to server")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("repforge-sync", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *dir == "" {
		fmt.Fprintf(os.Stderr, "Usage: repforge-sync -server <URL> -api-key <KEY> -path <session dir> [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *serverURL == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
		os.Exit(1)
	}

	*serverURL = strings.TrimRight(*serverURL, "/")

	info, err := os.Stat(*dir)
	if err != nil || !info.IsDir() {
		log.Error("session directory not found", "path", *dir)
		os.Exit(1)
	}

	// Open state database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	stateDir := filepath.Join(homeDir, ".repforge-sync")

	state, err := sync.OpenStateDB(stateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	var client *sync.Client
	if !*dryRun {
		client = sync.NewClient(*serverURL, *apiKey)
	}

	if *dryRun {
		log.Info("DRY RUN mode — files will be parsed but not sent")
	}

	syncer := sync.New(client, state, *dir, *dryRun, log)
	stats, err := syncer.Run()
	if err != nil {
		log.Error("sync failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("sync complete")
}

func printStats(stats *sync.Stats) {
	fmt.Println()
	fmt.Println("=== Sync Summary ===")
	fmt.Printf("  Files total:    %d\n", stats.FilesTotal)
	fmt.Printf("  Files synced:   %d\n", stats.FilesSynced)
	fmt.Printf("  Files skipped:  %d (already synced)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:  %d\n", stats.FilesErrored)
	fmt.Println()
	fmt.Printf("  Sessions sent:  %d\n", stats.SessionsSent)
	fmt.Printf("  Sets sent:      %d\n", stats.SetsSent)
	fmt.Println()
}
