package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/finchat-dev/finchat/internal/commands"
)

func main() {
	// Optional; credentials may also come from the real environment.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
