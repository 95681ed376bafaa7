package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument     = 1000
	ErrCodeRequestTooLarge     = 1001
	ErrCodeInvalidID           = 1002
	ErrCodeNoFilesProvided     = 1003
	ErrCodeUnsupportedFileType = 1004
	ErrCodeFileTooLarge        = 1005
	ErrCodeTooManyFiles        = 1006

	// Domain state (2xxx)
	ErrCodeFileNotFound = 2001

	// Limits (3xxx)
	ErrCodeResourceExhausted = 3001
	ErrCodeCapacityExceeded  = 3002

	// Internal/system (4xxx)
	ErrCodeInternal     = 4001
	ErrCodeStoreFailure = 4002
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 404:
		return ErrCodeFileNotFound
	case 413:
		return ErrCodeRequestTooLarge
	case 429:
		return ErrCodeResourceExhausted
	case 500:
		return ErrCodeInternal
	case 507:
		return ErrCodeCapacityExceeded
	default:
		return 0
	}
}
