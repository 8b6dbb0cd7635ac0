// Package editorctl defines the port for the external editor's command-line
// control surface.
package editorctl

// Opener asks the editor to open a target ("path", "path:line" or
// "path:line:column"). Implementations spawn detached processes and report
// only spawn failure, never the editor's own outcome.
type Opener interface {
	Open(target string) error
}
