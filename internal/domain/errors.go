package domain

import "fmt"

// TransferErrorCode tags the structured errors returned by the transfer and
// approval protocol. The shells mirror standard ledger error taxonomy; only
// a subset is produced by the current protocol, the rest exist so callers
// see a stable wire shape.
type TransferErrorCode string

const (
	TransferErrNotFound               TransferErrorCode = "NotFound"
	TransferErrUnauthorized           TransferErrorCode = "Unauthorized"
	TransferErrGeneric                TransferErrorCode = "GenericError"
	TransferErrTooOld                 TransferErrorCode = "TooOld"
	TransferErrCreatedInFuture        TransferErrorCode = "CreatedInFuture"
	TransferErrDuplicate              TransferErrorCode = "Duplicate"
	TransferErrTemporarilyUnavailable TransferErrorCode = "TemporarilyUnavailable"
)

// TransferError is the structured error returned per batch element by
// transfer, transfer_from and approve operations.
type TransferError struct {
	Code TransferErrorCode `json:"code"`
	// ErrorCode and Message are set for GenericError only.
	ErrorCode uint64 `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
	// DuplicateOf is set for Duplicate only.
	DuplicateOf uint64 `json:"duplicate_of,omitempty"`
	// LedgerTime is set for CreatedInFuture only.
	LedgerTime Timestamp `json:"ledger_time,omitempty"`
}

func (e *TransferError) Error() string {
	if e.Code == TransferErrGeneric {
		return fmt.Sprintf("generic error %d: %s", e.ErrorCode, e.Message)
	}
	return string(e.Code)
}

// Is makes errors.Is match on the code so callers can compare against the
// exported sentinels below.
func (e *TransferError) Is(target error) bool {
	t, ok := target.(*TransferError)
	return ok && t.Code == e.Code
}

var (
	// ErrNotFound is returned when the referenced token does not exist.
	ErrNotFound = &TransferError{Code: TransferErrNotFound}

	// ErrUnauthorized is returned on caller/ownership/approval mismatch.
	ErrUnauthorized = &TransferError{Code: TransferErrUnauthorized}
)

// GenericError builds a schema-shaped catch-all transfer error.
func GenericError(code uint64, message string) *TransferError {
	return &TransferError{Code: TransferErrGeneric, ErrorCode: code, Message: message}
}

// ErrSelfApproval rejects collection approvals where owner == spender.
func ErrSelfApproval() *TransferError {
	return GenericError(1, "Self-approval is unnecessary")
}
