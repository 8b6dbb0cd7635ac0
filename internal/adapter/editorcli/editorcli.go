// Package editorcli implements the editor control-surface port by invoking
// the editor's command-line binary (e.g. `zed path:line:column`).
package editorcli

import (
	"fmt"
	"os/exec"
)

// Opener spawns the editor CLI as a detached subprocess for each open
// request. It reports only spawn failure; the editor's own exit status is
// never collected.
type Opener struct {
	command string
}

// New creates an Opener for the given editor command.
func New(command string) *Opener {
	return &Opener{command: command}
}

// Open spawns `<command> <target>` and releases the process immediately.
func (o *Opener) Open(target string) error {
	cmd := exec.Command(o.command, target) //nolint:gosec // G204: editor command comes from trusted config
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", o.command, err)
	}

	// Detach: the editor outlives us and we never wait on it.
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("release %s: %w", o.command, err)
	}
	return nil
}
