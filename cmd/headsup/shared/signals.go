package shared

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
)

// SignalContext returns a context cancelled on SIGINT or SIGTERM. The
// signal is logged; a second signal exits immediately.
func SignalContext(parent context.Context, logger zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info().Str("signal", sig.String()).Msg("Received signal, stopping the match")
			cancel()
		case <-ctx.Done():
			return
		}
		sig := <-sigChan
		logger.Warn().Str("signal", sig.String()).Msg("Received second signal, exiting")
		os.Exit(130)
	}()

	return ctx, cancel
}
