package domain

import "context"

// QuizAPI fetches one quiz result from the remote quiz endpoint.
// A non-2xx response fails with a CodeRequestFailed error; transport and
// decode failures fail with CodeNetworkOrDecode.
type QuizAPI interface {
	FetchResult(ctx context.Context) (TransitionState, error)
}

// Navigator is the history-and-location mechanism shared by both pages.
type Navigator interface {
	// Forward pushes path onto the history and attaches payload as its
	// transition state.
	Forward(ctx context.Context, path string, payload TransitionState) error

	// Back moves to the previous history entry without state. It reports
	// false, and changes nothing, when there is no previous entry.
	Back(ctx context.Context) (string, bool, error)

	// Take returns the transition state attached to path and forgets it, so
	// the destination can read it exactly once.
	Take(ctx context.Context, path string) (TransitionState, error)
}
