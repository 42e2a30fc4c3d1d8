package system

import (
	"context"
	"errors"
)

// Runs operation with its own context so it can finish cleanly even when
// ctx is cancelled part way through.
//
// Returns:
//   - ctx.Err() without running operation if ctx is already done.
//   - the operation's result if it completes first.
//   - ctx.Err() joined with the operation's result if ctx is cancelled
//     first. The operation is signalled to stop and always awaited.
func RunWithContext(ctx context.Context, operation func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	opCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Buffered so the goroutine never blocks on send.
	done := make(chan error, 1)
	go func() {
		done <- operation(opCtx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cancel()
		return errors.Join(ctx.Err(), <-done)
	}
}
