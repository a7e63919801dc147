package crontab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	olderThan time.Duration
	purged    int64
	err       error
}

func (f *fakePurger) PurgeTemporary(_ context.Context, olderThan time.Duration) (int64, error) {
	f.olderThan = olderThan
	return f.purged, f.err
}

func TestPurgeTemporaryConversations(t *testing.T) {
	purger := &fakePurger{purged: 3}
	c := NewCrontab(purger, Config{PurgeSchedule: "0 * * * *", Retention: 24 * time.Hour})

	assert.Equal(t, int64(3), c.PurgeTemporaryConversations(context.Background()))
	assert.Equal(t, 24*time.Hour, purger.olderThan)

	purger.err = errors.New("db down")
	assert.Zero(t, c.PurgeTemporaryConversations(context.Background()))
}

func TestRunRejectsInvalidSchedule(t *testing.T) {
	c := NewCrontab(&fakePurger{}, Config{PurgeSchedule: "not a schedule", Retention: time.Hour})
	err := c.Run(context.Background())
	require.Error(t, err)
}

func TestRunStopsWithContext(t *testing.T) {
	c := NewCrontab(&fakePurger{}, Config{PurgeSchedule: "0 * * * *", Retention: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("crontab did not stop")
	}
}
