package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// cmdContext returns a context canceled on SIGINT or SIGTERM.
func cmdContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx
}
