package gallery

import "errors"

var (
	// ErrOutOfRange is returned by Select when the index is not a position in the gallery.
	ErrOutOfRange = errors.New("selection index out of range")

	// ErrInvalidRequest is returned when a save is attempted on an empty gallery
	// or with a SaveRequest that fails validation.
	ErrInvalidRequest = errors.New("invalid save request")

	// ErrNoSelection is returned by PersistSelected when nothing is selected.
	ErrNoSelection = errors.New("no image selected")

	// ErrIO wraps failures reported by the Sink while writing files.
	ErrIO = errors.New("failed to write image")
)
