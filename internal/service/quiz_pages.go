package service

import (
	"sync"
	"time"

	"era-quiz/internal/domain"
	"era-quiz/internal/navigation"
)

type mountedPage struct {
	page     *QuizPage
	lastUsed time.Time
}

// QuizPages keeps one mounted QuizPage per browser session. A page lives
// until its session navigates away from it or stays idle longer than the
// idle timeout.
type QuizPages struct {
	api  domain.QuizAPI
	nav  *navigation.Service
	idle time.Duration
	now  func() time.Time

	mu        sync.Mutex
	pages     map[string]*mountedPage
	lastSweep time.Time
}

func NewQuizPages(api domain.QuizAPI, nav *navigation.Service, idle time.Duration) *QuizPages {
	return &QuizPages{
		api:   api,
		nav:   nav,
		idle:  idle,
		now:   time.Now,
		pages: make(map[string]*mountedPage),
	}
}

// Mount returns the session's quiz page, creating a fresh one if needed.
func (r *QuizPages) Mount(sessionID string) *QuizPage {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	if m, ok := r.pages[sessionID]; ok {
		m.lastUsed = now
		return m.page
	}
	page := NewQuizPage(r.api, r.nav.Session(sessionID))
	r.pages[sessionID] = &mountedPage{page: page, lastUsed: now}
	return page
}

// Unmount discards the session's quiz page and with it the email and error.
func (r *QuizPages) Unmount(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pages, sessionID)
}

// Len reports how many pages are mounted.
func (r *QuizPages) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

func (r *QuizPages) sweepLocked(now time.Time) {
	if r.idle <= 0 || now.Sub(r.lastSweep) < r.idle {
		return
	}
	r.lastSweep = now
	for id, m := range r.pages {
		if now.Sub(m.lastUsed) >= r.idle && !m.page.State().Loading {
			delete(r.pages, id)
		}
	}
}
