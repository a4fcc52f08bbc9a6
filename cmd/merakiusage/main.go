package main

import (
	"os"

	"github.com/awheeler/merakiusage/internal/exitcode"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
