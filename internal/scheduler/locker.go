package scheduler

import (
	"context"
	"sync"
)

// Locker guards a sweep against concurrent sweeps. When ok is false another
// holder owns the lock and release is nil.
type Locker interface {
	TryLock(ctx context.Context) (release func(), ok bool, err error)
}

// LocalLocker serializes sweeps within one process.
type LocalLocker struct {
	mu sync.Mutex
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{}
}

func (l *LocalLocker) TryLock(_ context.Context) (func(), bool, error) {
	if !l.mu.TryLock() {
		return nil, false, nil
	}

	var once sync.Once

	return func() { once.Do(l.mu.Unlock) }, true, nil
}
