package service

import (
	"context"
	"sync"

	"era-quiz/internal/domain"
)

// MockQuizAPI
type MockQuizAPI struct {
	FetchResultFunc func(ctx context.Context) (domain.TransitionState, error)

	mu    sync.Mutex
	calls int
}

func (m *MockQuizAPI) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockQuizAPI) FetchResult(ctx context.Context) (domain.TransitionState, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.FetchResultFunc != nil {
		return m.FetchResultFunc(ctx)
	}
	panic("MockQuizAPI.FetchResultFunc not implemented")
}

type forwardCall struct {
	Path    string
	Payload domain.TransitionState
}

// MockNavigator records transitions instead of storing them.
type MockNavigator struct {
	mu         sync.Mutex
	Forwards   []forwardCall
	ForwardErr error
	BackFunc   func(ctx context.Context) (string, bool, error)
	TakeFunc   func(ctx context.Context, path string) (domain.TransitionState, error)
}

func (m *MockNavigator) Forward(ctx context.Context, path string, payload domain.TransitionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForwardErr != nil {
		return m.ForwardErr
	}
	m.Forwards = append(m.Forwards, forwardCall{Path: path, Payload: payload})
	return nil
}

func (m *MockNavigator) Back(ctx context.Context) (string, bool, error) {
	if m.BackFunc != nil {
		return m.BackFunc(ctx)
	}
	panic("MockNavigator.BackFunc not implemented")
}

func (m *MockNavigator) Take(ctx context.Context, path string) (domain.TransitionState, error) {
	if m.TakeFunc != nil {
		return m.TakeFunc(ctx, path)
	}
	panic("MockNavigator.TakeFunc not implemented")
}

var (
	_ domain.QuizAPI   = (*MockQuizAPI)(nil)
	_ domain.Navigator = (*MockNavigator)(nil)
)
