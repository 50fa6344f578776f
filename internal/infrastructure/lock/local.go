// Package lock provides the in-process ProjectLocker used by single-replica
// deployments.
package lock

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/sgsm/taskboard/internal/api/metrics"
)

const defaultShards = 32

// Local is a keyed mutex. Project ids are hashed onto a fixed set of shards;
// each shard keeps refcounted per-project entries so idle projects cost
// nothing.
type Local struct {
	shards []*shard
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// entry is a one-slot semaphore; a channel lets waiters honour ctx.
type entry struct {
	sem  chan struct{}
	refs int
}

// NewLocal creates a Local locker with numShards shards.
// If numShards <= 0, defaultShards is used.
func NewLocal(numShards int) *Local {
	if numShards <= 0 {
		numShards = defaultShards
	}
	l := &Local{shards: make([]*shard, numShards)}
	for i := range l.shards {
		l.shards[i] = &shard{entries: make(map[string]*entry)}
	}
	return l
}

// Lock blocks until projectID is held or ctx ends.
func (l *Local) Lock(ctx context.Context, projectID string) (func() error, error) {
	start := time.Now()
	s := l.shards[l.shardIndex(projectID)]

	s.mu.Lock()
	e, ok := s.entries[projectID]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		s.entries[projectID] = e
	}
	e.refs++
	s.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		s.unref(projectID, e)
		return nil, fmt.Errorf("acquire lock %s: %w", projectID, ctx.Err())
	}

	metrics.ProjectLockWaitDuration.WithLabelValues("local").Observe(time.Since(start).Seconds())

	var once sync.Once
	return func() error {
		once.Do(func() {
			<-e.sem
			s.unref(projectID, e)
		})
		return nil
	}, nil
}

// Held reports how many projects currently have holders or waiters.
func (l *Local) Held() int {
	n := 0
	for _, s := range l.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// shardIndex maps a project id deterministically to a shard.
func (l *Local) shardIndex(projectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(projectID))
	return int(h.Sum32() % uint32(len(l.shards)))
}

func (s *shard) unref(projectID string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(s.entries, projectID)
	}
}
