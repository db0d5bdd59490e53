package engine

import (
	"errors"
	"fmt"
)

// Engine failures are returned as values and classified by sentinel so the
// transport layer can map them without inspecting remote error details. None
// of them are fatal: the engine stays usable after any single failure.
var (
	// ErrNotAuthenticated is returned when an action requiring an acting
	// user has none.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrFetchFailed is returned when a feed, detail, or comment read
	// fails. Local state is left untouched; the caller may retry.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrToggleFailed is returned when a like insert or delete fails.
	// The local like set is left unchanged.
	ErrToggleFailed = errors.New("could not toggle like")

	// ErrToggleInFlight rejects a second toggle on a pair whose first
	// toggle has not resolved yet. Classified under ErrToggleFailed.
	ErrToggleInFlight = fmt.Errorf("%w: toggle already in flight", ErrToggleFailed)

	// ErrSubmitFailed is returned when a comment insert fails. The input
	// buffer and the thread are left untouched.
	ErrSubmitFailed = errors.New("could not submit comment")

	// ErrEmptyComment is returned for a blank comment; no remote call is
	// attempted.
	ErrEmptyComment = errors.New("comment cannot be empty")
)
