package service

import (
	"context"

	"era-quiz/internal/domain"
)

// ResultPage is the result presenter. It renders whatever transition state
// the quiz page handed over, or a fallback message.
type ResultPage struct {
	nav domain.Navigator
}

func NewResultPage(nav domain.Navigator) *ResultPage {
	return &ResultPage{nav: nav}
}

// Mount reads the transition state for the results path, once, and renders it.
func (p *ResultPage) Mount(ctx context.Context) (domain.ResultView, error) {
	state, err := p.nav.Take(ctx, domain.ResultsPath)
	if err != nil {
		return Render(nil), err
	}
	return Render(state), nil
}

// GoBack navigates to the previous history entry. It reports false when
// there is none, in which case nothing changes.
func (p *ResultPage) GoBack(ctx context.Context) (string, bool, error) {
	return p.nav.Back(ctx)
}

// Render projects transition state into a view. It checks field presence
// only and never fails: absent, empty, or malformed state gives the
// NoResultMessage view.
func Render(state domain.TransitionState) domain.ResultView {
	era, ok := state.Field("era")
	if !ok {
		return domain.ResultView{Message: domain.NoResultMessage}
	}

	result := &domain.QuizResult{Era: era}
	imageURL, hasImage := state.Field("image_url")
	if hasImage {
		result.ImageURL = imageURL
	}
	return domain.ResultView{Result: result, ShowImage: hasImage}
}
