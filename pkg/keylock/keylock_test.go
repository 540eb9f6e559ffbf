package keylock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockSerializesPerKey(t *testing.T) {
	k := New()
	const workers = 20

	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := k.Lock("artist|2025-06-02")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, counter)
}

func TestLockDistinctKeysDoNotBlock(t *testing.T) {
	k := New()

	unlockA := k.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := k.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key should not block")
	}
}

func TestLockCtxTimeout(t *testing.T) {
	k := New()

	unlock := k.Lock("held")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	got, err := k.LockCtx(ctx, "held")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// the abandoned acquisition must not wedge the key for later callers
	unlock()

	got, err = k.LockCtx(context.Background(), "held")
	require.NoError(t, err)
	require.NotNil(t, got)
	got()
}
