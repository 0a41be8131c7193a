package main

import (
	"os"

	"github.com/theogravity/config-ready/cmd/config-ready/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
