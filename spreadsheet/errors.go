package spreadsheet

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotSet = errors.New("spreadsheet document not set")
	ErrSheetNotSet    = errors.New("spreadsheet sheet not set")
)

// ValidationError is returned for a malformed cells range.
type ValidationError struct {
	Start  string
	End    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid cells range '%v:%v' (%v)", e.Start, e.End, e.Reason)
}
