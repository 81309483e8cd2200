package main

import (
	"os"
)

// version is set at build time.
var version = "dev"

// main is the entry point of the application.
func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
