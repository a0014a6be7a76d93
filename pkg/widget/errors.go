package widget

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNilReader = errors.New("file reader is nil")
	ErrEmptyID   = errors.New("vector id is required")

	errNullBody = errors.New("response body is null")
)

// StatusError reports a response whose status fell outside 2xx.
type StatusError struct {
	Op         Op
	StatusCode int
}

func (e *StatusError) Error() string {
	switch e.Op {
	case OpSendMessage:
		return fmt.Sprintf("API error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	case OpUploadFile:
		return fmt.Sprintf("Upload failed: %d", e.StatusCode)
	case OpListAttachments:
		return fmt.Sprintf("Failed to list attachments: %d", e.StatusCode)
	case OpDeleteAttachment:
		return fmt.Sprintf("Failed to delete attachment: %d", e.StatusCode)
	default:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
}
