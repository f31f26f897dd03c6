package cmd

import (
	"fmt"

	apperrors "mgas/internal/errors"
)

// opError tags an error with the operation the user asked for, so the final
// message reads e.g. "Switch failed: no account found for bob".
type opError struct {
	op  string
	err error
}

// Error implements the error interface.
func (e *opError) Error() string {
	return e.op + ": " + e.err.Error()
}

// Unwrap returns the tagged error.
func (e *opError) Unwrap() error {
	return e.err
}

// failed tags err with op. A nil err stays nil.
func failed(op string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

// userMessage renders err for the terminal.
func userMessage(err error) string {
	var tnf *apperrors.ToolNotFoundError
	if apperrors.As(err, &tnf) {
		if tnf.Tool == "gh" {
			return "Could not locate the 'gh' executable. Install GitHub CLI and try again."
		}
		return fmt.Sprintf("Could not locate the '%s' executable. Install it and try again.", tnf.Tool)
	}

	var conflict *apperrors.RemoteConflictError
	if apperrors.As(err, &conflict) {
		return fmt.Sprintf("This repository already has a remote named '%s'.", conflict.Remote)
	}

	var op *opError
	if apperrors.As(err, &op) {
		return op.op + ": " + detail(op.err)
	}
	return detail(err)
}

// detail prefers what the failing process printed over the wrapped error text.
func detail(err error) string {
	var perr *apperrors.ProcessError
	if apperrors.As(err, &perr) {
		return perr.Detail()
	}
	return err.Error()
}
