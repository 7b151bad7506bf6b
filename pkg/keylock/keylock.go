package keylock

import "sync"

// Locker сериализует операции по ключу (например, по ID поста).
// Операции с разными ключами выполняются параллельно.
// Запись о ключе удаляется, когда её больше никто не держит и не ждёт.
type Locker struct {
	mu    sync.Mutex
	locks map[int64]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New создает пустой Locker
func New() *Locker {
	return &Locker{locks: make(map[int64]*entry)}
}

// Lock блокирует ключ и возвращает функцию разблокировки.
// Функцию разблокировки нужно вызвать ровно один раз.
func (l *Locker) Lock(key int64) (unlock func()) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			l.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(l.locks, key)
			}
			l.mu.Unlock()
		})
	}
}

// Len количество ключей, которые сейчас удерживаются или ожидаются
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
