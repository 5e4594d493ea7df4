package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var mu sync.Mutex
	var got []string
	done := make(chan struct{}, 2)

	q := NewQueue("test", func(_ context.Context, job Job) error {
		mu.Lock()
		got = append(got, job.ID)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 4})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "a"}))
	require.NoError(t, q.Enqueue(Job{ID: "b"}))
	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("job not processed")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b"}, got)
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(context.Context, Job) error { return nil }, QueueConfig{})
	assert.Error(t, q.Enqueue(Job{ID: "a"}))
}

func TestQueueStopDropsBufferedJobs(t *testing.T) {
	running := make(chan struct{})
	var dropped []string

	q := NewQueue("test", func(ctx context.Context, _ Job) error {
		running <- struct{}{}
		<-ctx.Done()
		return ctx.Err()
	}, QueueConfig{
		Workers:    1,
		BufferSize: 4,
		OnDrop:     func(job Job) { dropped = append(dropped, job.ID) },
	})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(Job{ID: "a"}))
	select {
	case <-running:
	case <-time.After(time.Second):
		t.Fatal("worker did not pick up the first job")
	}
	require.NoError(t, q.Enqueue(Job{ID: "b"}))
	require.NoError(t, q.Enqueue(Job{ID: "c"}))

	// "a" is in flight and finishes with the cancellation; "b" and "c"
	// never ran and must be handed back.
	q.Stop()
	assert.Equal(t, []string{"b", "c"}, dropped)
}
