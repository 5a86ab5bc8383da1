package main

import (
	"os"

	"github.com/yourname/healthcoach/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
