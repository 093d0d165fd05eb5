package session

import (
	"sync"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// EventKind тип изменения сессии
type EventKind string

const (
	EventCreated      EventKind = "created"
	EventLoggedIn     EventKind = "logged_in"
	EventLoggedOut    EventKind = "logged_out"
	EventThemeChanged EventKind = "theme_changed"
)

// Event уведомление об изменении сессии
type Event struct {
	Kind    EventKind
	Session domain.Session
}

// Listener получает уведомления об изменениях сессий
type Listener func(Event)

type listeners struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]Listener
}

func (l *listeners) add(fn Listener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.items == nil {
		l.items = make(map[int]Listener)
	}
	id := l.nextID
	l.nextID++
	l.items[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.items, id)
	}
}

func (l *listeners) notify(e Event) {
	l.mu.RLock()
	snapshot := make([]Listener, 0, len(l.items))
	for _, fn := range l.items {
		snapshot = append(snapshot, fn)
	}
	l.mu.RUnlock()

	for _, fn := range snapshot {
		fn(e)
	}
}
