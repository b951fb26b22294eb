package service

import (
	"errors"

	"intwork/internal/apiclient"
)

var (
	ErrEmptyComment      = errors.New("comment content is empty")
	ErrCVRequired        = errors.New("application has no CV")
	ErrNotPDF            = errors.New("CV is not a PDF")
	ErrCVTooLarge        = errors.New("CV exceeds the upload limit")
	ErrCVMissing         = errors.New("application carries no CV")
	ErrCVUnsafe          = errors.New("stored CV is not a PDF")
	ErrInvalidStatus     = errors.New("invalid application status")
	ErrCoversDisabled    = errors.New("cover uploads are not configured")
	ErrNoVerifyToken     = errors.New("verification link has no token")
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

var sentinelMessages = map[error]string{
	ErrEmptyComment:      "Comment cannot be empty.",
	ErrCVRequired:        "Please fill in all required fields and upload your CV",
	ErrNotPDF:            "Please upload a PDF file",
	ErrCVTooLarge:        "The CV file is too large.",
	ErrCVMissing:         "No CV available",
	ErrCVUnsafe:          "The stored CV is not a valid PDF.",
	ErrInvalidStatus:     "Unknown application status.",
	ErrCoversDisabled:    "Image uploads are not available. Paste an image URL instead.",
	ErrNoVerifyToken:     "Invalid verification link. No token provided.",
	ErrAlreadySubscribed: "This email is already subscribed!",
}

// ValidationError is a local check that failed before any request was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UserMessage picks the text shown for err: local validation messages first,
// then known failures, then the API's own message, then fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}

	for sentinel, msg := range sentinelMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}

	switch apiclient.KindOf(err) {
	case apiclient.KindNetwork:
		return "Unable to connect to server. Please check your connection."
	case apiclient.KindUnauthorized:
		return "Your session has expired. Please log in again."
	case apiclient.KindForbidden:
		return "You are not allowed to do that."
	case apiclient.KindNotFound:
		return "The requested item was not found."
	}

	if msg := apiclient.MessageOf(err); msg != "" {
		return msg
	}
	return fallback
}
