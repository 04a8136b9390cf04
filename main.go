package main

import (
	"os"

	"github.com/keyfold/keyfold/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
