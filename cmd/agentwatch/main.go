package main

import (
	"fmt"
	"os"

	"github.com/Mnafierce/agentwatch/cmd/handlers"
	"github.com/Mnafierce/agentwatch/internal/logger"
)

func main() {
	logger.Init()
	if err := handlers.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
