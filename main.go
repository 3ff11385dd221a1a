package main

import (
	"os"

	"github.com/adaptivemath/mathgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
