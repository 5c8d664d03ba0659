package main

import (
	"os"

	"github.com/contentvet/contentvet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
