package backup

import (
	"errors"
	"fmt"
)

// ErrParse matches every *ParseError.
var ErrParse = errors.New("backup: parse error")

var errNotAList = errors.New("backup is not a list of records")

// ParseError reports a backup that could not be read. Record is the zero
// based index of the offending record, or -1 when the document itself is
// malformed.
type ParseError struct {
	Source string
	Record int
	Err    error
}

func (e *ParseError) Error() string {
	src := e.Source
	if src == "" {
		src = "backup"
	}
	if e.Record < 0 {
		return fmt.Sprintf("%s: %v", src, e.Err)
	}
	return fmt.Sprintf("%s: record %d: %v", src, e.Record, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
