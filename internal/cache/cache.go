// Package cache memoizes report results per owner. Every owner has a
// generation counter; writes bump it, which orphans all cached reports of that
// owner without having to enumerate their keys.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is a byte cache with per-owner generations.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Generation returns the current generation of ownerID. It never goes back
	// to a value already used for that owner.
	Generation(ctx context.Context, ownerID string) (uint64, error)
	// Bump invalidates every entry cached for ownerID.
	Bump(ctx context.Context, ownerID string) error
}

// Locker serializes the computation of one key across processes.
type Locker interface {
	// Lock returns a release func, or ErrNotLocked when the lock is held elsewhere.
	Lock(ctx context.Context, key string, ttl time.Duration) (func(context.Context), error)
}

// ErrNotLocked is returned by Locker when another holder owns the key.
var ErrNotLocked = errors.New("cache: lock not obtained")

const (
	// lockTTL bounds how long a report computation may hold the cross-process lock.
	lockTTL = 30 * time.Second
	// loadTimeout bounds a shared load once it no longer follows a caller's context.
	loadTimeout = time.Minute
)

// Key names one cached report for one owner generation. Filter parts are
// joined in the order given, so callers must pass them canonically.
func Key(ownerID string, generation uint64, report string, filter ...string) string {
	var b strings.Builder
	b.WriteString("report:")
	b.WriteString(ownerID)
	fmt.Fprintf(&b, ":g%d:", generation)
	b.WriteString(report)
	for _, f := range filter {
		b.WriteByte(':')
		b.WriteString(f)
	}
	return b.String()
}

// Reports memoizes report computations on top of a Store.
type Reports struct {
	store Store
	group singleflight.Group
}

// NewReports wraps store. A nil store disables caching.
func NewReports(store Store) *Reports {
	return &Reports{store: store}
}

// Invalidate bumps the owner's generation.
func (r *Reports) Invalidate(ctx context.Context, ownerID string) error {
	if r == nil || r.store == nil {
		return nil
	}
	return r.store.Bump(ctx, ownerID)
}

// Fetch returns the cached value for (owner, report, filter) or computes it
// with load. Concurrent callers for the same key share one load; a caller
// whose ctx ends stops waiting while the load carries on for the rest. Store
// failures degrade to calling load directly.
func Fetch[T any](ctx context.Context, r *Reports, ownerID, report string, filter []string, load func(context.Context) (T, error)) (T, error) {
	if r == nil || r.store == nil {
		return load(ctx)
	}

	gen, err := r.store.Generation(ctx, ownerID)
	if err != nil {
		return load(ctx)
	}
	key := Key(ownerID, gen, report, filter...)

	if v, ok := lookup[T](ctx, r.store, key); ok {
		return v, nil
	}

	ch := r.group.DoChan(key, func() (any, error) {
		// detached from the caller: other waiters share this load
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		if locker, ok := r.store.(Locker); ok {
			release, lockErr := locker.Lock(loadCtx, "lock:"+key, lockTTL)
			if lockErr == nil {
				defer release(loadCtx)
				// another process may have filled it while we waited
				if v, ok := lookup[T](loadCtx, r.store, key); ok {
					return v, nil
				}
			}
		}

		v, err := load(loadCtx)
		if err != nil {
			return v, err
		}
		if raw, err := json.Marshal(v); err == nil {
			_ = r.store.Set(loadCtx, key, raw)
		}
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func lookup[T any](ctx context.Context, store Store, key string) (T, bool) {
	var v T
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}
