package model

import "errors"

// Sentinel errors for programmatic checking.
var (
	ErrUnknownLanguage = errors.New("unknown target language")
	ErrWriteRace       = errors.New("file changed on disk during operation")
	ErrNoStagedChanges = errors.New("no staged changes")
)

// ErrorCode provides a machine-readable error type for JSON output.
type ErrorCode string

const (
	ECNone             ErrorCode = ""
	ECUnknownLanguage  ErrorCode = "ERR_UNKNOWN_LANGUAGE"
	ECWriteRace        ErrorCode = "ERR_WRITE_RACE"
	ECReadError        ErrorCode = "ERR_READ_FILE"
	ECWriteError       ErrorCode = "ERR_WRITE_FILE"
	ECConfigError      ErrorCode = "ERR_CONFIG"
	ECUnknown          ErrorCode = "ERR_UNKNOWN"
)
