// internal/progress/progress_test.go
package progress

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fastSimulator() *Stepped {
	return NewStepped(time.Millisecond, 0, rand.New(rand.NewSource(1)))
}

func TestSteppedEmitsAllSteps(t *testing.T) {
	sim := fastSimulator()

	var updates []Update
	err := sim.Run(context.Background(), func(u Update) {
		updates = append(updates, u)
	})
	require.NoError(t, err)

	// Five steps plus the completion tick.
	require.Len(t, updates, 6)
	assert.Equal(t, "Analyzing personal trading patterns...", updates[0].Label)
	assert.Equal(t, 15, updates[0].Percent)
	assert.Equal(t, 40, updates[1].Percent)
	assert.Equal(t, 60, updates[2].Percent)
	assert.Equal(t, 85, updates[3].Percent)
	assert.Equal(t, 100, updates[4].Percent)
	assert.Equal(t, "Analysis complete - insights ready", updates[5].Label)
	assert.Equal(t, 100, updates[5].Percent)
}

func TestSteppedPercentMonotonic(t *testing.T) {
	sim := fastSimulator()

	prev := -1
	err := sim.Run(context.Background(), func(u Update) {
		assert.GreaterOrEqual(t, u.Percent, prev)
		prev = u.Percent
	})
	require.NoError(t, err)
	assert.Equal(t, 100, prev)
}

func TestSteppedCancellationStopsEmissions(t *testing.T) {
	sim := NewStepped(50*time.Millisecond, 0, rand.New(rand.NewSource(1)))
	ctx, cancel := context.WithCancel(context.Background())

	var count int
	done := make(chan error, 1)
	go func() {
		done <- sim.Run(ctx, func(Update) { count++ })
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("simulator did not stop after cancellation")
	}

	after := count
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, after, count, "updates emitted after cancellation")
}

func TestSteppedAlreadyCanceled(t *testing.T) {
	sim := fastSimulator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sim.Run(ctx, func(Update) {
		t.Fatal("emitted after cancellation")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSteppedJitterStaysBounded(t *testing.T) {
	sim := NewStepped(time.Millisecond, time.Millisecond, rand.New(rand.NewSource(3)))

	start := time.Now()
	err := sim.Run(context.Background(), func(Update) {})
	require.NoError(t, err)

	// Six ticks of at most 2ms each, plus scheduling slack.
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestInstant(t *testing.T) {
	var updates []Update
	err := Instant{}.Run(context.Background(), func(u Update) {
		updates = append(updates, u)
	})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, 100, updates[0].Percent)
}

func TestInstantCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Instant{}.Run(ctx, func(Update) {
		t.Fatal("emitted after cancellation")
	})
	assert.ErrorIs(t, err, context.Canceled)
}
