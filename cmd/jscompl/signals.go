package main

import (
	"context"
	"os/signal"
	"syscall"
)

// cancelOnSigintSigterm returns a context cancelled on reception of SIGINT or SIGTERM.
// Calling the returned function stops the signal handling.
func cancelOnSigintSigterm(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
