package backendsvc

import "net/http"

// FallbackMessage is reported whenever the backend gave no usable reason for a failure.
const FallbackMessage = "حدث خطأ يرجى ابلاغ الدعم الفنى|An error occured please contact technical support"

// Error is the only error type returned by Client calls. Its message is meant for the user and is
// usually a bilingual "arabic|english" string.
type Error struct {
	Message   string
	Status    int // 0 when no response was received
	RequestID string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Structured reports whether the backend answered with a reason of its own.
func (e *Error) Structured() bool {
	return e.Message != FallbackMessage
}
