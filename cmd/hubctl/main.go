// Command hubctl inspects and manages the llmhub catalog.
//
//	hubctl providers                     list providers
//	hubctl instructions -o json          list instruction sets as JSON
//	hubctl validate                      check both catalogs
//	hubctl chat -p claude -i terse hello one-shot chat through the engine
//	hubctl import --dsn postgres://...   copy the JSON catalog into PostgreSQL
//
// Configuration is shared with the server: --config, LLMHUB_CONFIG,
// ./llmhub.yaml and environment overrides. A .env file is loaded first.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
