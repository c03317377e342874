package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/manav03panchal/tabguard/internal/logging"
)

// SignalHandler handles OS signals for graceful shutdown.
type SignalHandler struct {
	signals chan os.Signal
	done    chan struct{}
}

// NewSignalHandler creates a new signal handler.
func NewSignalHandler() *SignalHandler {
	return &SignalHandler{
		signals: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
}

// Setup registers signal handlers.
func (h *SignalHandler) Setup() {
	signal.Notify(h.signals,
		syscall.SIGINT,  // Ctrl+C
		syscall.SIGTERM, // Termination request
		syscall.SIGHUP,  // Host closed the pipe
	)
}

// Wait blocks until a shutdown signal is received, the context is cancelled
// or Stop is called.
func (h *SignalHandler) Wait(ctx context.Context) os.Signal {
	select {
	case sig := <-h.signals:
		return sig
	case <-ctx.Done():
		return nil
	case <-h.done:
		return nil
	}
}

// Stop stops waiting for signals.
func (h *SignalHandler) Stop() {
	signal.Stop(h.signals)
	close(h.done)
}

// WithShutdown returns a context that is cancelled when a shutdown signal
// arrives. The returned stop function releases the handler.
func WithShutdown(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	h := NewSignalHandler()
	h.Setup()

	go func() {
		if sig := h.Wait(ctx); sig != nil {
			logging.Info("received signal", "signal", sig.String())
		}
		cancel()
	}()

	return ctx, func() {
		h.Stop()
		cancel()
	}
}
