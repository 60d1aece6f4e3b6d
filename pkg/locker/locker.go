package locker

import (
	"context"
	"errors"
	"sync"
)

// ErrNotObtained блокировка не получена за отведённое время
var ErrNotObtained = errors.New("locker: lock not obtained")

// ReleaseFunc освобождает полученную блокировку
type ReleaseFunc func(ctx context.Context) error

// Local блокировки по ключу внутри одного процесса.
// Подходит для одного экземпляра сервиса и для тестов.
type Local struct {
	mu    sync.Mutex
	locks map[string]*localEntry
}

type localEntry struct {
	ch   chan struct{}
	refs int
}

func NewLocal() *Local {
	return &Local{locks: make(map[string]*localEntry)}
}

// Obtain ждёт освобождения ключа или отмены контекста
func (l *Local) Obtain(ctx context.Context, key string) (ReleaseFunc, error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &localEntry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, e)
		return nil, errors.Join(ErrNotObtained, ctx.Err())
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-e.ch
			l.unref(key, e)
		})
		return nil
	}, nil
}

func (l *Local) unref(key string, e *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// size количество ключей, по которым есть владельцы или ожидающие
func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
