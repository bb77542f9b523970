package testutil

import (
	"context"
	"testing"
	"time"
)

const defaultTimeout = 10 * time.Second

// Context is cancelled when the test ends or after a generous timeout, so a hung
// fake server fails the test instead of stalling the run.
func Context(t *testing.T) context.Context {
	t.Helper()

	return ContextWithTimeout(t, defaultTimeout)
}

func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), timeout)
	t.Cleanup(cancel)

	return ctx
}
