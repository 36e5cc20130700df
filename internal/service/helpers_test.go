package service

import (
	"time"

	"github.com/taskdesk/taskdesk-go/internal/repository"
)

var fixedNow = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

// manualTimer holds scheduled callbacks until fire is called.
type manualTimer struct {
	delays []time.Duration
	funcs  []func()
}

func (m *manualTimer) schedule(d time.Duration, f func()) {
	m.delays = append(m.delays, d)
	m.funcs = append(m.funcs, f)
}

func (m *manualTimer) fire() {
	funcs := m.funcs
	m.funcs, m.delays = nil, nil
	for _, f := range funcs {
		f()
	}
}

// clock returns successive times one millisecond apart starting at fixedNow.
func clock() func() time.Time {
	t := fixedNow
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func testOptions(timer *manualTimer) Options {
	return Options{
		DeleteGrace: DefaultDeleteGrace,
		Timer:       timer.schedule,
		Now:         clock(),
	}
}

func newTestSessionService(store repository.Store, opts Options) *SessionService {
	return NewSessionService(
		repository.NewUserRepository(store),
		repository.NewSessionRepository(store),
		opts,
	)
}
