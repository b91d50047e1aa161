package stream

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchRecorder struct {
	mu       sync.Mutex
	calls    int
	snapshot []models.ChatMessage
	err      error
}

func (f *fetchRecorder) fetch(ctx context.Context, selfID, peerID string) ([]models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.snapshot, f.err
}

func (f *fetchRecorder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type snapshotCollector struct {
	mu        sync.Mutex
	snapshots [][]models.ChatMessage
}

func (c *snapshotCollector) collect(messages []models.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots = append(c.snapshots, messages)
}

func (c *snapshotCollector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snapshots)
}

func TestPollerFetchesImmediately(t *testing.T) {
	fetcher := &fetchRecorder{snapshot: []models.ChatMessage{{ID: "m1"}}}
	collector := &snapshotCollector{}

	poller := NewConversationPoller("alice", "bob", time.Hour, fetcher.fetch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx, collector.collect)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return collector.count() >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	assert.Equal(t, 1, fetcher.callCount())
}

func TestPollerPollsOnInterval(t *testing.T) {
	fetcher := &fetchRecorder{}
	collector := &snapshotCollector{}

	poller := NewConversationPoller("alice", "bob", 10*time.Millisecond, fetcher.fetch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx, collector.collect)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return collector.count() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestPollerKickForcesRefetch(t *testing.T) {
	fetcher := &fetchRecorder{}
	collector := &snapshotCollector{}

	poller := NewConversationPoller("alice", "bob", time.Hour, fetcher.fetch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx, collector.collect)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return collector.count() >= 1
	}, time.Second, 5*time.Millisecond)

	poller.Kick()

	require.Eventually(t, func() bool {
		return collector.count() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestPollerSkipsSnapshotOnError(t *testing.T) {
	fetcher := &fetchRecorder{err: errors.New("store unavailable")}
	collector := &snapshotCollector{}

	poller := NewConversationPoller("alice", "bob", 10*time.Millisecond, fetcher.fetch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx, collector.collect)
		close(done)
	}()

	// Give it a few cycles to fail.
	require.Eventually(t, func() bool {
		return fetcher.callCount() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	assert.Zero(t, collector.count())
}

func TestPollerStopsOnCancel(t *testing.T) {
	fetcher := &fetchRecorder{}
	collector := &snapshotCollector{}

	poller := NewConversationPoller("alice", "bob", 5*time.Millisecond, fetcher.fetch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx, collector.collect)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancellation")
	}

	calls := fetcher.callCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, fetcher.callCount())
}

func TestKickDoesNotBlockWhenPending(t *testing.T) {
	poller := NewConversationPoller("alice", "bob", time.Hour, func(ctx context.Context, selfID, peerID string) ([]models.ChatMessage, error) {
		return nil, nil
	})

	// No Run loop draining the channel; repeated kicks must not block.
	for i := 0; i < 10; i++ {
		poller.Kick()
	}
}
