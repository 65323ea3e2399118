package main

import (
	"os"

	"github.com/silverstar-dev/silverstar/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
