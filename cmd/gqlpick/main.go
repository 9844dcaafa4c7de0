package main

import (
	"flag"
	"fmt"
	"os"

	"gqlpick/internal/app"
)

func main() {
	var opts app.CLIOptions
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to config file")
	flag.StringVar(&opts.Endpoint, "endpoint", "", "GraphQL endpoint URL (overrides config)")
	flag.StringVar(&opts.QueryFile, "query", "", "Path to a GraphQL query document (overrides config)")
	flag.IntVar(&opts.PageSize, "page-size", 0, "Page size (overrides config)")
	flag.StringVar(&opts.LogPath, "log", "gqlpick.log", "Log file path")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	key, err := app.Run(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gqlpick: %v\n", err)
		os.Exit(1)
	}
	if key != "" {
		fmt.Println(key)
	}
}
