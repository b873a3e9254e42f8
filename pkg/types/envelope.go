package types

// APIResponse wraps a payload with a success flag and a human-readable
// message. Data serializes as null when absent.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// OK builds a successful envelope.
func OK[T any](message string, data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope carrying no data.
func Fail[T any](message string) APIResponse[T] {
	var zero T
	return APIResponse[T]{Success: false, Message: message, Data: zero}
}
