// Package command defines the inbound control instructions external actors
// send into the bridge. Commands form a closed sum type so the dispatcher
// can switch exhaustively; adding a variant is a compile-visible change.
package command

import "fmt"

// Command is a sealed union of editor control instructions.
type Command interface {
	isCommand()
}

// OpenFile asks the editor to open a file, optionally at a line and column.
// Column is only meaningful when Line is set.
type OpenFile struct {
	FilePath  string
	Line      *uint32
	Column    *uint32
	TakeFocus bool
}

func (OpenFile) isCommand() {}

// Target renders the editor CLI argument: path, path:line, or path:line:col.
func (c OpenFile) Target() string {
	switch {
	case c.Line != nil && c.Column != nil:
		return fmt.Sprintf("%s:%d:%d", c.FilePath, *c.Line, *c.Column)
	case c.Line != nil:
		return fmt.Sprintf("%s:%d", c.FilePath, *c.Line)
	default:
		return c.FilePath
	}
}
