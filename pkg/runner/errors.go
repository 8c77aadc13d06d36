package runner

import (
	"errors"
	"fmt"

	"github.com/alpacax/vpnexclude/pkg/dashboard"
)

// ErrorKind classifies run errors into the two tiers the batch loop knows.
type ErrorKind int

const (
	// KindFatal aborts the whole run.
	KindFatal ErrorKind = iota
	// KindPerItemFailure marks a single network as failed; the run goes on.
	KindPerItemFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindFatal:
		return "fatal"
	case KindPerItemFailure:
		return "per-item failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

var ErrOrganizationNotFound = errors.New("organization not found")

// Error is a classified run error.
type Error struct {
	Kind      ErrorKind
	Op        string
	NetworkID string
	Err       error
}

func (e *Error) Error() string {
	if e.NetworkID != "" {
		return fmt.Sprintf("%s network %s: %v", e.Op, e.NetworkID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify returns the kind of err. Unclassified errors are fatal.
func Classify(err error) ErrorKind {
	var runErr *Error
	if errors.As(err, &runErr) {
		return runErr.Kind
	}
	return KindFatal
}

func fatal(op string, err error) *Error {
	return &Error{Kind: KindFatal, Op: op, Err: err}
}

// writeErrorKind classifies a failed exclusion write. Only a request error
// answered by the dashboard is confined to the network it was sent for.
func writeErrorKind(err error) ErrorKind {
	if dashboard.IsAPIError(err) {
		return KindPerItemFailure
	}
	return KindFatal
}
