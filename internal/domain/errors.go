package domain

import "errors"

// Domain errors.
var (
	// ErrEmptyURL is returned when the submitted URL is missing or blank.
	ErrEmptyURL = errors.New("URL must not be empty")

	// ErrUnsupportedURL is returned when the URL is not a YouTube link.
	ErrUnsupportedURL = errors.New("URL must be a YouTube link")

	// ErrMissingDownloadParams is returned when url or format_id is missing.
	ErrMissingDownloadParams = errors.New("url and format_id are required")

	// ErrExtractionFailed is returned when the extractor reports that the
	// video is unavailable or the download failed.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrNoMetadata is returned when the extractor produced no usable metadata.
	ErrNoMetadata = errors.New("could not retrieve video information")

	// ErrOutputMissing is returned when the extractor finished but the
	// downloaded file is not on disk.
	ErrOutputMissing = errors.New("downloaded file not found")

	// ErrRateLimited is returned when the upstream site rate limits the extractor.
	ErrRateLimited = errors.New("rate limited")
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	// KindInternal covers anything unexpected. Never shown to clients verbatim.
	KindInternal Kind = iota
	// KindValidation is bad user input.
	KindValidation
	// KindExtraction is a failure reported by the extractor itself.
	KindExtraction
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindExtraction:
		return "extraction"
	default:
		return "internal"
	}
}

// Error wraps an error with its kind and the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error for op.
func NewValidationError(op string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

// NewExtractionError creates an extraction error for op.
func NewExtractionError(op string, err error) *Error {
	return &Error{Kind: KindExtraction, Op: op, Err: err}
}

// NewInternalError creates an internal error for op.
func NewInternalError(op string, err error) *Error {
	return &Error{Kind: KindInternal, Op: op, Err: err}
}

// KindOf returns the kind of err. Errors that were never classified are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
