package service

import (
	"context"
	"fmt"
	"sync"

	"era-quiz/internal/domain"
	"era-quiz/internal/logger"

	"go.uber.org/zap"
)

// QuizPage is the request initiator: it holds the email field, tracks the
// loading and error state of the quiz request, and navigates to the results
// page on success.
type QuizPage struct {
	api domain.QuizAPI
	nav domain.Navigator

	mu    sync.Mutex
	state domain.ViewState
}

// NewQuizPage creates a quiz page in the idle state.
func NewQuizPage(api domain.QuizAPI, nav domain.Navigator) *QuizPage {
	return &QuizPage{api: api, nav: nav}
}

// UpdateEmail stores the email as typed. It is not validated.
func (p *QuizPage) UpdateEmail(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Email = value
}

// State returns a snapshot for rendering.
func (p *QuizPage) State() domain.ViewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Request returns what the user has entered so far.
func (p *QuizPage) Request() domain.QuizRequest {
	return domain.QuizRequest{Email: p.State().Email}
}

// Submit fetches a quiz result and hands it to the results page. Failures are
// kept as the inline error message rather than returned. Loading is reset on
// every exit path. Overlapping calls are neither rejected nor ordered.
func (p *QuizPage) Submit(ctx context.Context) {
	p.mu.Lock()
	p.state.Error = ""
	p.state.Loading = true
	email := p.state.Email
	p.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error("Quiz submission panicked", zap.Any("panic", r))
			p.fail(panicError(r))
		}
		p.mu.Lock()
		p.state.Loading = false
		p.mu.Unlock()
	}()

	// The email is not part of the request.
	logger.Get().Debug("Submitting quiz request", zap.Bool("email_present", email != ""))

	payload, err := p.api.FetchResult(ctx)
	if err != nil {
		logger.Get().Info("Quiz request failed", zap.Error(err))
		p.fail(err)
		return
	}

	if err := p.nav.Forward(ctx, domain.ResultsPath, payload); err != nil {
		logger.Get().Error("Failed to navigate to results", zap.Error(err))
		p.fail(err)
	}
}

func (p *QuizPage) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Error = domain.MessageOf(err)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
