package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoEditor is returned when a session is built without an editor.
	ErrNoEditor = errors.New("prompt: editor is required")
)
