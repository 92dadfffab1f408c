package main

import (
	"fmt"
	"os"

	"token-bridge/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; configuration may come entirely from the
	// environment or a config file.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
