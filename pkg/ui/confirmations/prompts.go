package confirmations

import (
	stderrors "errors"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/arthur-debert/ezconfig/pkg/errors"
)

// Prompter asks for a choice or for edited text.
type Prompter interface {
	Select(message string, options []string) (string, error)
	Edit(message, content string) (string, error)
}

// SurveyPrompter implements Prompter on a terminal. An interrupt is a
// USER_ABORT error.
type SurveyPrompter struct {
	In  terminal.FileReader
	Out terminal.FileWriter
	Err io.Writer
}

func (p *SurveyPrompter) Select(message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.Newf(errors.ErrInvalidInput, "nothing to choose for %q", message)
	}
	choice := ""
	prompt := &survey.Select{Message: message, Options: options}
	if err := survey.AskOne(prompt, &choice, survey.WithStdio(p.In, p.Out, p.Err)); err != nil {
		return "", promptError(err)
	}
	return choice, nil
}

func (p *SurveyPrompter) Edit(message, content string) (string, error) {
	edited := ""
	prompt := &survey.Editor{
		Message:       message,
		Default:       content,
		AppendDefault: true,
		HideDefault:   true,
		FileName:      "*.yml",
	}
	if err := survey.AskOne(prompt, &edited, survey.WithStdio(p.In, p.Out, p.Err)); err != nil {
		return "", promptError(err)
	}
	return edited, nil
}

func promptError(err error) error {
	if stderrors.Is(err, terminal.InterruptErr) {
		return errors.New(errors.ErrUserAbort, "aborted")
	}
	return errors.Wrap(err, errors.ErrInvalidInput, "prompt failed")
}

// Scripted answers prompts from fixed values, for tests and non-interactive use.
type Scripted struct {
	Choices []string
	Edits   []string
}

func (s *Scripted) Select(message string, options []string) (string, error) {
	if len(s.Choices) == 0 {
		return "", errors.Newf(errors.ErrInvalidInput, "no scripted answer for %q", message)
	}
	choice := s.Choices[0]
	s.Choices = s.Choices[1:]
	for _, o := range options {
		if o == choice {
			return choice, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "%q is not one of the options", choice)
}

func (s *Scripted) Edit(message, content string) (string, error) {
	if len(s.Edits) == 0 {
		return content, nil
	}
	edited := s.Edits[0]
	s.Edits = s.Edits[1:]
	return edited, nil
}
