package resolver

import "errors"

var (
	// ErrResolutionFailed matches every failure returned by a Resolver.
	ErrResolutionFailed = errors.New("stream resolution failed")

	ErrNotInstalled     = errors.New("yt-dlp is not installed")
	ErrTimeout          = errors.New("yt-dlp timed out")
	ErrExtractionFailed = errors.New("yt-dlp extraction failed")
)

// Error is the failure type returned by Resolver. It matches
// ErrResolutionFailed, its Kind, and the underlying cause with errors.Is.
type Error struct {
	Kind   error
	URL    string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	switch {
	case e.Detail != "":
		msg += ": " + e.Detail
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	errs := []error{ErrResolutionFailed, e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
