package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrBusy is returned when the scheduling lease could not be acquired
// within the bounded wait. Callers surface it as a retryable condition,
// never queue behind it.
var ErrBusy = errors.New("scheduler: lease busy")

// Locker serializes access to one master's calendar across concurrently
// arriving requests.
type Locker interface {
	// Acquire blocks up to the configured wait and returns a release
	// function, or ErrBusy.
	Acquire(ctx context.Context, key string) (func(), error)
}

// --------------------------------------------------
// Redis lease
// --------------------------------------------------

const (
	leaseTTL      = 5 * time.Second
	retryInterval = 25 * time.Millisecond
)

// Delete only if the lease token is still ours.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`

type RedisLocker struct {
	client *redis.Client
	wait   time.Duration
}

func NewRedisLocker(client *redis.Client, wait time.Duration) *RedisLocker {
	return &RedisLocker{client: client, wait: wait}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, leaseTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				rctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				l.client.Eval(rctx, releaseScript, []string{key}, token)
			}
			return release, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

// --------------------------------------------------
// In-process lease
// --------------------------------------------------

// MemoryLocker is the single-node fallback, also used by tests. Same
// bounded-wait contract as the redis lease.
type MemoryLocker struct {
	held chan map[string]struct{}
	wait time.Duration
}

func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	ch := make(chan map[string]struct{}, 1)
	ch <- make(map[string]struct{})
	return &MemoryLocker{held: ch, wait: wait}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string) (func(), error) {
	deadline := time.Now().Add(l.wait)

	for {
		held := <-l.held
		_, taken := held[key]
		if !taken {
			held[key] = struct{}{}
		}
		l.held <- held

		if !taken {
			release := func() {
				held := <-l.held
				delete(held, key)
				l.held <- held
			}
			return release, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}
