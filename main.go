package main

import (
	"os"

	"github.com/shioubi0216/ToneMasterAI/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
