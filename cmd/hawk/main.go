package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/hawklabs/hawk/internal/cli"
)

func main() {
	// Pick up HAWK_* overrides from a local .env, if any.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
