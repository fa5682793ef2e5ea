package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredentials means no API key is available; no upstream call is attempted.
	ErrNoCredentials = errors.New("gemini: no API key configured")

	// ErrEmptyResponse means the model call succeeded but returned no text.
	ErrEmptyResponse = errors.New("gemini: model returned no text")

	// ErrInvalidSchedule means a schedule lookup decoded to something other than a list.
	ErrInvalidSchedule = errors.New("gemini: schedule response is not a list of games")
)

// MalformedResponseError reports text that is not decodable as JSON even
// after fence stripping. Raw keeps the full payload for diagnosis; no
// partial recovery is attempted because silently wrong statistics are worse
// than a visible failure.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("gemini: response is not valid JSON: %v (raw: %s)", e.Err, truncate(e.Raw, 200))
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
