package operator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDelegator(t *testing.T) *OperatorDelegator {
	t.Helper()
	d := NewOperatorDelegator(1)
	d.Start()
	t.Cleanup(d.Stop)
	return d
}

func TestProcess_RunsAction(t *testing.T) {
	d := newTestDelegator(t)

	ran := false
	err := d.Process(context.Background(), ActionFunc(func(ctx context.Context) error {
		ran = true
		return nil
	}))
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestProcess_ReturnsActionError(t *testing.T) {
	d := newTestDelegator(t)

	boom := errors.New("boom")
	err := d.Process(context.Background(), ActionFunc(func(ctx context.Context) error {
		return boom
	}))
	assert.ErrorIs(t, err, boom)
}

func TestProcess_CancelledContextSkipsAction(t *testing.T) {
	d := newTestDelegator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := d.Process(ctx, ActionFunc(func(ctx context.Context) error {
		ran = true
		return nil
	}))
	assert.ErrorIs(t, err, context.Canceled)

	// A follow-up item proves the worker moved past the cancelled one.
	require.NoError(t, d.Process(context.Background(), ActionFunc(func(ctx context.Context) error {
		return nil
	})))
	assert.False(t, ran, "cancelled action must not be performed")
}
