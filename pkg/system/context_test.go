package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunWithContextCompletes(t *testing.T) {
	boom := errors.New("boom")

	assert.NoError(t, RunWithContext(context.Background(), func(context.Context) error { return nil }))
	assert.ErrorIs(t, RunWithContext(context.Background(), func(context.Context) error { return boom }), boom)
}

func TestRunWithContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := RunWithContext(ctx, func(context.Context) error {
		ran = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

func TestRunWithContextInterrupted(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	stopped := make(chan struct{})
	err := RunWithContext(ctx, func(opCtx context.Context) error {
		<-opCtx.Done()
		close(stopped)
		return opCtx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.Canceled)
	select {
	case <-stopped:
	default:
		t.Fatal("operation was not awaited")
	}
}
