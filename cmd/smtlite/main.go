package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info("shutting down", logging.Fields{"signal": sig.String()})
		cancel()
	}()

	// Config path may be provided via SMTLITE_CONFIG; otherwise config.yaml
	// is looked up in ./config and the working directory.
	configPath := os.Getenv(constants.EnvConfigFile)
	if err := run(ctx, configPath); err != nil {
		logging.Fatal("server stopped with error", err, logging.Fields{constants.LogFieldConfigPath: configPath})
	}
}
