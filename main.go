package main

import (
	"os"

	"github.com/relcheck/relcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
