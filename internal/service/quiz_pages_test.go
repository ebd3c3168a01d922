package service

import (
	"testing"
	"time"

	"era-quiz/internal/adapter"
	"era-quiz/internal/navigation"

	"github.com/stretchr/testify/assert"
)

func TestQuizPages_MountUnmount(t *testing.T) {
	nav := navigation.NewService(adapter.NewMemoryCacheAdapter(), time.Minute)
	pages := NewQuizPages(&MockQuizAPI{}, nav, time.Hour)

	a := pages.Mount("a")
	a.UpdateEmail("a@example.com")
	assert.Same(t, a, pages.Mount("a"))
	assert.NotSame(t, a, pages.Mount("b"))
	assert.Equal(t, 2, pages.Len())

	pages.Unmount("a")
	fresh := pages.Mount("a")
	assert.NotSame(t, a, fresh)
	assert.Empty(t, fresh.State().Email, "a remounted page starts empty")
}

func TestQuizPages_IdleSweep(t *testing.T) {
	nav := navigation.NewService(adapter.NewMemoryCacheAdapter(), time.Minute)
	pages := NewQuizPages(&MockQuizAPI{}, nav, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	pages.now = func() time.Time { return now }

	pages.Mount("idle")
	now = now.Add(30 * time.Second)
	pages.Mount("active")

	now = now.Add(45 * time.Second)
	pages.Mount("active")

	assert.Equal(t, 1, pages.Len())
}
