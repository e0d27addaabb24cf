// Package dialog is the confirmation collaborator guarding destructive
// operations: deleting a bash, deleting or unlinking work items, and
// discarding unsaved edits.
package dialog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Confirmer asks the user to approve a destructive operation.
type Confirmer interface {
	// Confirm returns true only when the user explicitly approves.
	Confirm(message string) bool
}

// Terminal prompts on a reader/writer pair with a y/N question; anything
// but an explicit yes declines.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

var warnColor = color.New(color.FgYellow)

// Confirm implements Confirmer.
func (t *Terminal) Confirm(message string) bool {
	warnColor.Fprintf(t.Out, "%s ", message)
	fmt.Fprint(t.Out, "[y/N]: ")

	scanner := bufio.NewScanner(t.In)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// Auto answers every prompt the same way; used by --yes and by tests.
type Auto bool

// Confirm implements Confirmer.
func (a Auto) Confirm(string) bool {
	return bool(a)
}
