package errors

const (
	HttpInternalError         = "internal_error"
	HttpInvalidParameterError = "invalid_parameter"
	HttpSnapshotUnavailable   = "snapshot_unavailable"
	HttpReloadFailedError     = "reload_failed"
)

// ErrorResponse is the uniform error envelope for query API failures.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
