package lock

import (
	"context"
	"sync"

	"koita-chat-api/internal/domain/chat"
)

type keyedMutex struct {
	ch   chan struct{}
	refs int
}

// LocalLocker serializes work per key inside one process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedMutex
}

var _ chat.Locker = (*LocalLocker)(nil)

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*keyedMutex)}
}

// Lock blocks until key is free or ctx is done.
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	km, ok := l.locks[key]
	if !ok {
		km = &keyedMutex{ch: make(chan struct{}, 1)}
		l.locks[key] = km
	}
	km.refs++
	l.mu.Unlock()

	select {
	case km.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, km)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-km.ch
			l.release(key, km)
		})
	}, nil
}

func (l *LocalLocker) release(key string, km *keyedMutex) {
	l.mu.Lock()
	defer l.mu.Unlock()
	km.refs--
	if km.refs == 0 {
		delete(l.locks, key)
	}
}

func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
