package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is the common case.
	_ = godotenv.Load()

	runner := NewRunner(RunnerOpts{})
	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		runner.logger.Fatalf("application error: %v", err)
	}
}
