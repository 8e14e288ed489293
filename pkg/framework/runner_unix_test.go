// +build !windows

package framework

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunnerHandleSignals(t *testing.T) {
	r := NewRunner().HandleSignals()
	r.Go(RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))
	select {
	case <-r.Context.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not canceled by signal")
	}
	require.NoError(t, r.Wait())
	require.True(t, r.Interrupted())
}
