package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidProvider      ErrorCode = 102

	// Market data errors (200-299)
	ErrCodeFetchFailed   ErrorCode = 200
	ErrCodeEmptySeries   ErrorCode = 201
	ErrCodeParseFailed   ErrorCode = 202
	ErrCodeArchiveFailed ErrorCode = 203

	// Study errors (300-399)
	ErrCodeLookupUnsatisfiable ErrorCode = 300
	ErrCodeColumnNotFound      ErrorCode = 301

	// Report errors (400-499)
	ErrCodeWriteFailed  ErrorCode = 400
	ErrCodeRenderFailed ErrorCode = 401
)
