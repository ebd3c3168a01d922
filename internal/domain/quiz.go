package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// Navigation paths shared by both pages.
const (
	QuizPath    = "/quiz"
	ResultsPath = "/results"
)

// NoResultMessage is rendered when the results page has nothing to show.
const NoResultMessage = "No result data available."

// QuizRequest holds what the quiz page collects from the user.
// The email is kept for display only; it is not sent to the quiz API.
type QuizRequest struct {
	Email string `json:"email"`
}

// QuizResult is the projection of a successful quiz API response.
type QuizResult struct {
	Era      string `json:"era"`
	ImageURL string `json:"image_url,omitempty"`
}

// TransitionState is the decoded response body, kept verbatim, that a forward
// navigation hands to its destination page.
type TransitionState json.RawMessage

// Fields decodes the state as a JSON object. Absent, empty, or non-object
// state yields an empty map, never an error.
func (s TransitionState) Fields() map[string]any {
	fields := map[string]any{}
	if len(s) == 0 {
		return fields
	}
	var decoded map[string]any
	if err := json.Unmarshal(s, &decoded); err != nil || decoded == nil {
		return fields
	}
	return decoded
}

// Field returns the named field rendered as text, and whether it is present
// with a truthy value (non-empty string, non-zero number, true, or any
// object/array).
func (s TransitionState) Field(name string) (string, bool) {
	return Truthy(s.Fields()[name])
}

// Truthy reports whether a decoded JSON value counts as present, and returns
// its text form.
func Truthy(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case bool:
		if !val {
			return "", false
		}
		return "true", true
	case float64:
		if val == 0 || math.IsNaN(val) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		return string(raw), true
	}
}

// ViewState is what the quiz page exposes for rendering.
type ViewState struct {
	Email   string
	Loading bool
	Error   string
}

// HasError reports whether an inline error message should be shown.
func (v ViewState) HasError() bool {
	return v.Error != ""
}

// ResultView is what the results page renders.
type ResultView struct {
	Result    *QuizResult
	ShowImage bool
	Message   string
}

// HasResult reports whether an era label should be shown.
func (v ResultView) HasResult() bool {
	return v.Result != nil
}
