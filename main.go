package main

import (
	"os"

	"github.com/mkravets/cv-match/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
