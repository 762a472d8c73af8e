package api

// ErrorKind classifies what went wrong underneath a gateway operation.
// The UI never shows the kind; it exists for logging and tests.
type ErrorKind string

const (
	KindNetwork ErrorKind = "network" // transport failure, no HTTP response
	KindServer  ErrorKind = "server"  // non-2xx response
	KindDecode  ErrorKind = "decode"  // malformed response body
)

// Fixed user-facing messages, one per operation. Callers display these
// verbatim; the underlying cause never reaches the UI.
const (
	MsgFetchInsights  = "Failed to fetch insights"
	MsgUpdateSettings = "Failed to update settings"
	MsgGenerateReport = "Failed to generate report"
	MsgExportData     = "Failed to export data"
)

// Error is the single error type surfaced by the gateway. Error()
// returns the fixed per-operation message; the root cause stays
// reachable through Unwrap for logs and debugging.
type Error struct {
	Op      string
	Kind    ErrorKind
	Message string
	cause   error
}

func newError(op string, kind ErrorKind, msg string, cause error) *Error {
	return &Error{Op: op, Kind: kind, Message: msg, cause: cause}
}

// Error returns the normalized display message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the discarded cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}
