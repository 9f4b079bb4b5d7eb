package main

import (
	"os"

	"github.com/bitrise-io/ai-deobfuscator/cmd"
	_ "go.uber.org/automaxprocs" // Match GOMAXPROCS to the container CPU quota
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
