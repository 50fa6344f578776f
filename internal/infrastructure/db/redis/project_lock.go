package redis

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sgsm/taskboard/internal/api/metrics"
	"github.com/sgsm/taskboard/internal/core/ports"
)

const (
	defaultLockTTL = 10 * time.Second
	minBackoff     = 5 * time.Millisecond
	maxBackoff     = 100 * time.Millisecond
)

// Key format: taskboard:lock:project:<project_id>
const lockKeyPrefix = "taskboard:lock:project:"

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript pushes the expiry of the lock out by ARGV[2] milliseconds,
// only while it still holds our token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// ProjectLocker serializes project mutations across API replicas with a
// SET NX PX lease per project. While a lease is held a watchdog extends it
// every ttl/3, so only a crashed or partitioned holder lets it expire.
type ProjectLocker struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewProjectLocker creates a ProjectLocker. If ttl <= 0, defaultLockTTL is used.
func NewProjectLocker(client *redis.Client, ttl time.Duration, log zerolog.Logger) *ProjectLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &ProjectLocker{client: client, ttl: ttl, log: log}
}

// lease is one acquired lock and its renewal goroutine.
type lease struct {
	key   string
	token string
	stop  chan struct{}
	done  chan struct{}
	lost  atomic.Bool
	once  sync.Once
}

// Lock polls until the lease is acquired or ctx ends.
func (l *ProjectLocker) Lock(ctx context.Context, projectID string) (func() error, error) {
	start := time.Now()
	key := lockKeyPrefix + projectID
	token := uuid.NewString()
	backoff := minBackoff

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			metrics.ProjectLockWaitDuration.WithLabelValues("redis").Observe(time.Since(start).Seconds())
			ls := &lease{key: key, token: token, stop: make(chan struct{}), done: make(chan struct{})}
			go l.renew(ls)
			return func() error { return l.release(ls) }, nil
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("acquire lock %s: %w", key, ctx.Err())
		case <-timer.C:
		}
		if backoff *= 2; backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// renew extends the lease every ttl/3 until released. A failed call is
// retried on the next tick; the lease survives two misses.
func (l *ProjectLocker) renew(ls *lease) {
	defer close(ls.done)

	interval := l.ttl / 3
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ls.stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), interval)
		n, err := extendScript.Run(ctx, l.client, []string{ls.key}, ls.token, l.ttl.Milliseconds()).Int()
		cancel()
		if err != nil {
			l.log.Warn().Err(err).Str("key", ls.key).Msg("project lock renewal failed")
			continue
		}
		if n == 0 {
			ls.lost.Store(true)
			l.log.Error().Str("key", ls.key).Msg("project lock lease lost while held")
			return
		}
	}
}

// release stops the watchdog and deletes the key if it is still ours. It
// runs on its own context so a cancelled request still frees the lease.
// Only the first call has any effect.
func (l *ProjectLocker) release(ls *lease) error {
	var err error
	ls.once.Do(func() {
		close(ls.stop)
		<-ls.done

		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()

		n, runErr := releaseScript.Run(ctx, l.client, []string{ls.key}, ls.token).Int()
		switch {
		case runErr != nil:
			// The TTL reclaims the key.
			err = fmt.Errorf("release lock %s: %w", ls.key, runErr)
		case n == 0 || ls.lost.Load():
			metrics.ProjectLockLostTotal.WithLabelValues("redis").Inc()
			err = fmt.Errorf("release lock %s: %w", ls.key, ports.ErrLeaseLost)
		}
	})
	return err
}
