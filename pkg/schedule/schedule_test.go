package schedule_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coconina/storefront/pkg/schedule"
)

func TestScheduler_RunsUntilCancelled(t *testing.T) {
	s := schedule.New()
	var n atomic.Int64
	s.Every(5 * time.Millisecond).Name("tick").Run(func(context.Context) { n.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	assert.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	s.Wait()

	after := n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, n.Load(), "no runs after Wait")
	assert.Equal(t, after, s.Runs("tick"))
}

func TestScheduler_Immediately(t *testing.T) {
	s := schedule.New()
	ran := make(chan struct{}, 1)
	s.Every(time.Hour).Name("warm").Immediately().Run(func(context.Context) {
		select {
		case ran <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("immediate run did not happen")
	}
}

func TestScheduler_WithoutOverlapping(t *testing.T) {
	s := schedule.New()
	var concurrent, peak atomic.Int64
	release := make(chan struct{})

	s.Every(2 * time.Millisecond).Name("slow").WithoutOverlapping().Run(func(context.Context) {
		c := concurrent.Add(1)
		if c > peak.Load() {
			peak.Store(c)
		}
		<-release
		concurrent.Add(-1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	assert.EqualValues(t, 1, s.Runs("slow"), "ticks during a run are skipped")
	cancel()
	close(release)
	s.Wait()

	assert.EqualValues(t, 1, peak.Load())
}

func TestScheduler_PanicIsContained(t *testing.T) {
	s := schedule.New()
	var n atomic.Int64
	s.Every(2 * time.Millisecond).Name("flaky").Run(func(context.Context) {
		n.Add(1)
		panic("warm failed")
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return n.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	s.Wait()
}

func TestScheduler_ListAndDefaults(t *testing.T) {
	s := schedule.New()
	s.Every(time.Minute).Run(func(context.Context) {})
	s.Every(0).Name("disabled").Run(func(context.Context) {})

	assert.Equal(t, []string{"task-1  [every 1m0s]", "disabled  [every 0s]"}, s.List())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()
	s.Wait()
}
