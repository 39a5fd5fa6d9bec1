package main

import (
	"os"

	"github.com/quantmuse/tradecouncil/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
