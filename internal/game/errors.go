package game

import (
	"errors"
	"fmt"
)

// MoveRejectedError is the single error kind a move can fail with.
// Every guard reports it uniformly; the reason string is diagnostic
// text, not part of the contract. A rejected move leaves the board and
// turn exactly as they were, so the caller may simply retry.
type MoveRejectedError struct {
	Reason string
}

func (e *MoveRejectedError) Error() string {
	return "move rejected: " + e.Reason
}

func rejectedf(format string, args ...interface{}) error {
	return &MoveRejectedError{Reason: fmt.Sprintf(format, args...)}
}

// IsMoveRejected reports whether err is a move rejection
func IsMoveRejected(err error) bool {
	var mr *MoveRejectedError
	return errors.As(err, &mr)
}
