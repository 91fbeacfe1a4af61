package llm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	t.Run("basic rate limiting", func(t *testing.T) {
		rl := NewRateLimiter(10)
		defer rl.Close()
		ctx := context.Background()

		// Should be able to make 10 requests immediately
		for i := 0; i < 10; i++ {
			err := rl.Wait(ctx)
			require.NoError(t, err)
		}

		// 11th request should need to wait for a refill
		start := time.Now()
		done := make(chan bool)
		go func() {
			err := rl.Wait(ctx)
			assert.NoError(t, err)
			done <- true
		}()

		select {
		case <-done:
			elapsed := time.Since(start)
			// Allow some tolerance for timing
			assert.True(t, elapsed >= 50*time.Millisecond, "Expected to wait for refill, but completed too quickly")
		case <-time.After(10 * time.Second):
			t.Fatal("Rate limiter wait timed out")
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		rl := NewRateLimiter(1)
		defer rl.Close()

		// Use up the token
		err := rl.Wait(context.Background())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() {
			done <- rl.Wait(ctx)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		err = <-done
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limiter canceled")
	})

	t.Run("tryAcquire", func(t *testing.T) {
		rl := NewRateLimiter(5)
		defer rl.Close()

		for i := 0; i < 5; i++ {
			success := rl.tryAcquire()
			assert.True(t, success, "Expected tryAcquire to succeed for attempt %d", i+1)
		}

		success := rl.tryAcquire()
		assert.False(t, success, "Expected tryAcquire to fail after tokens exhausted")
	})

	t.Run("default rate limit", func(t *testing.T) {
		// Zero should default to 60 requests per minute
		rl := NewRateLimiter(0)
		defer rl.Close()

		for i := 0; i < 50; i++ {
			success := rl.tryAcquire()
			require.True(t, success, "Expected default rate limit to allow many requests")
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		rl := NewRateLimiter(100)
		defer rl.Close()
		ctx := context.Background()

		var acquired int32
		done := make(chan bool, 10)
		mu := sync.Mutex{}

		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 10; j++ {
					if err := rl.Wait(ctx); err == nil {
						mu.Lock()
						acquired++
						mu.Unlock()
					}
				}
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}

		assert.Equal(t, int32(100), acquired)
	})
}
