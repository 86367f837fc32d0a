// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// withSignals cancels the context when SIGINT or SIGTERM is received.
//
// An upload in progress is interrupted: the edit is never committed and eventually expires.
func withSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
