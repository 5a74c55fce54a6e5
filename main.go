package main

import (
	"fmt"
	"os"

	"fjacquet/doc-extract-csv/cmd/root"
	"fjacquet/doc-extract-csv/internal/config"
	"fjacquet/doc-extract-csv/internal/logging"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv()

	// 2. Set the global level before anything logs. An unparsable LOG_LEVEL
	// falls back to info.
	level, _ := logging.ParseLevel(config.GetEnv("LOG_LEVEL", "info"))
	logging.SetGlobalLevel(level)

	// 3. Initialize root command flags
	root.Init()
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
