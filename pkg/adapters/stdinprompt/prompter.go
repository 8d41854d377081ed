// Package stdinprompt asks yes/no questions on the controlling
// terminal.
package stdinprompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/user/webm/pkg/ports"
)

// StdinPrompter reads confirmation answers from standard input. The
// question goes to stderr so stdout stays clean for pipelines.
type StdinPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter bound to the process's standard streams.
func New() *StdinPrompter {
	return &StdinPrompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
	}
}

// Confirm asks the question and returns the user's answer. An empty
// answer takes the default; a failed read declines regardless of the
// default so an unattended run never proceeds by accident.
func (p *StdinPrompter) Confirm(question string, def bool) bool {
	hint := "Y/n"
	if !def {
		hint = "y/N"
	}
	fmt.Fprintf(p.out, "%s %s ", question, hint)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return def
	}
	return answer == "y" || answer == "yes"
}

var _ ports.Prompter = (*StdinPrompter)(nil)
