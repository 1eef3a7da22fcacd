package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/media-fetcher/internal/config"
	"github.com/handiism/media-fetcher/internal/download"
)

func main() {
	// Command line flags
	var (
		outputFlag   = flag.String("output", "", "Output directory (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		envFlag      = flag.String("env", "", "Path to .env file (default ./.env)")
		ffmpegFlag   = flag.String("ffmpeg", "", "ffmpeg executable used for M3U8 streams")
		noOpenFlag   = flag.Bool("no-open", false, "Do not open downloaded media")
		noNotifyFlag = flag.Bool("no-notify", false, "Do not print notification placeholders")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Media Fetcher - download files, zip archives and M3U8 streams")
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "Usage:")
		fmt.Fprintln(flag.CommandLine.Output(), "  media-fetch [options] [URL...]")
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "Without URLs the configured list is processed.")
		fmt.Fprintln(flag.CommandLine.Output(), "For interactive mode, use: media-fetch-tui")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
	flag.Parse()

	out := newConsole(os.Stdout, *verboseFlag)

	// Load config; failures fall back to defaults
	settings, err := config.LoadWithEnv(*configFlag, *envFlag)
	if err != nil {
		out.Event(download.ProgressEvent{Message: fmt.Sprintf("Error loading config: %v", err), Level: download.LevelWarning})
	}

	// Apply flags
	if *outputFlag != "" {
		settings.DownloadDir = *outputFlag
	}
	if *ffmpegFlag != "" {
		settings.FFmpegPath = *ffmpegFlag
	}
	if *noOpenFlag {
		settings.OpenFiles = false
	}
	if *noNotifyFlag {
		settings.Notify = false
	}

	urls := settings.URLs
	if flag.NArg() > 0 {
		urls = flag.Args()
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		out.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	manager := download.NewManager(settings, out.Event, download.WithByteProgress(out.Bytes))

	out.Header()
	results := manager.Run(ctx, urls)
	out.Summary(results)
}
