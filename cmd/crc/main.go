package main

import (
	"os"

	"github.com/iamNilotpal/crc/pkg/logger"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)

	// Exit codes for usage errors and mismatches are handled inside Run;
	// whatever reaches here is unexpected.
	if err := app.Run(os.Args); err != nil {
		log := logger.New(serviceName)
		log.Errorw("crc failed", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}
}
