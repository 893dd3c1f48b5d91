package main

import (
	"os"

	"github.com/maelc07/gridsig/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
