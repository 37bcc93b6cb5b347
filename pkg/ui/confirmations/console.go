// Package confirmations asks the operator to approve or pick things before
// a command mutates anything.
package confirmations

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/mattn/go-isatty"
)

// Confirmer obtains a yes/no decision. Declining is not an error.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Static answers every confirmation the same way. Static(true) backs --yes.
type Static bool

func (s Static) Confirm(string) (bool, error) {
	return bool(s), nil
}

// ConsoleConfirmer reads a y/N answer line from In.
type ConsoleConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// NewConsoleConfirmer creates a line-based confirmer.
func NewConsoleConfirmer(in io.Reader, out io.Writer) *ConsoleConfirmer {
	return &ConsoleConfirmer{In: in, Out: out}
}

func (c *ConsoleConfirmer) Confirm(message string) (bool, error) {
	_, _ = fmt.Fprintf(c.Out, "%s [y/N]: ", message)

	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !stderrors.Is(err, io.EOF) {
		return false, errors.Wrap(err, errors.ErrInvalidInput, "failed to read user input")
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// SurveyConfirmer prompts on a terminal. An interrupt counts as declining.
type SurveyConfirmer struct {
	In  terminal.FileReader
	Out terminal.FileWriter
	Err io.Writer
}

func (c *SurveyConfirmer) Confirm(message string) (bool, error) {
	ok := false
	prompt := &survey.Confirm{Message: message, Default: false}
	if err := survey.AskOne(prompt, &ok, survey.WithStdio(c.In, c.Out, c.Err)); err != nil {
		if stderrors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrInvalidInput, "confirmation prompt failed")
	}
	return ok, nil
}

// ForTerminal picks a confirmer for the process: --yes always confirms, a
// terminal gets an interactive prompt, anything else fails fast instead of
// blocking on input that will never come.
func ForTerminal(assumeYes bool) (Confirmer, error) {
	if assumeYes {
		return Static(true), nil
	}
	if !IsInteractive(os.Stdin) {
		return nil, errors.New(errors.ErrInvalidInput,
			"confirmation required but stdin is not a terminal; rerun with --yes")
	}
	return &SurveyConfirmer{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}, nil
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Deferred picks the confirmer with ForTerminal only when a confirmation is
// actually asked for, so runs that need none work without a terminal.
func Deferred(assumeYes bool) Confirmer {
	return &deferred{assumeYes: assumeYes}
}

type deferred struct {
	assumeYes bool
	resolved  Confirmer
}

func (d *deferred) Confirm(message string) (bool, error) {
	if d.resolved == nil {
		c, err := ForTerminal(d.assumeYes)
		if err != nil {
			return false, err
		}
		d.resolved = c
	}
	return d.resolved.Confirm(message)
}
