package errors

// Warning is one non-fatal condition collected during an analysis run.
// Warnings are returned alongside the successful result, never thrown.
type Warning struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
}

// Warn builds a warning for a path-scoped condition.
func Warn(code ErrorCode, message, path string) Warning {
	return Warning{Code: code, Message: message, Path: path}
}
