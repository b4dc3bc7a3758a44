package builder

import (
	"errors"
	"fmt"
)

// Structural build errors. Any of these aborts the whole build; there is
// no partial presentation.
var (
	ErrNoLayout            = errors.New("can't enter layout column: no layout defined")
	ErrAlreadyInColumn     = errors.New("can't enter layout column: already in it")
	ErrColumnIndexTooLarge = errors.New("can't enter layout column: column index too large")
	ErrNotInsideColumn     = errors.New("need to enter layout column explicitly using `column` command")
	ErrInvalidCodeTheme    = errors.New("invalid code highlighter theme")
)

// InvalidMetadataError is malformed or contradictory front matter.
type InvalidMetadataError struct {
	Reason string
}

func (e *InvalidMetadataError) Error() string {
	return fmt.Sprintf("invalid presentation metadata: %s", e.Reason)
}

// InvalidLayoutError is a column layout declaration that can't work.
type InvalidLayoutError struct {
	Reason string
}

func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("invalid layout: %s", e.Reason)
}

// CommandParseError is an embedded command that didn't parse, pointing at
// its 1-based line in the source document.
type CommandParseError struct {
	Line  int
	Inner string
}

func (e *CommandParseError) Error() string {
	return fmt.Sprintf("error parsing command at line %d: %s", e.Line, e.Inner)
}
