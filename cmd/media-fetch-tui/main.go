package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/media-fetcher/internal/config"
	"github.com/handiism/media-fetcher/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	envFlag := flag.String("env", "", "Path to .env file (default ./.env)")
	flag.Parse()

	settings, err := config.LoadWithEnv(*configFlag, *envFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config, using defaults: %v\n", err)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
