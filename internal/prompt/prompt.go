// Package prompt asks the user for the few things mgas cannot take from flags:
// a personal access token and yes/no confirmations.
package prompt

import (
	"bufio"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	apperrors "mgas/internal/errors"
)

// ErrCancelled is returned when the user interrupts a prompt with Ctrl-C.
var ErrCancelled = apperrors.New("cancelled")

// Prompter asks questions on the terminal.
type Prompter interface {
	// Secret asks for a value without echoing it. Empty answers are refused.
	Secret(message string) (string, error)
	// Confirm asks a yes/no question.
	Confirm(message string, def bool) (bool, error)
}

// Survey is the interactive Prompter.
type Survey struct {
	opts []survey.AskOpt
}

// NewSurvey creates a Survey prompter. opts are passed to every question,
// e.g. survey.WithStdio for tests.
func NewSurvey(opts ...survey.AskOpt) *Survey {
	return &Survey{opts: append([]survey.AskOpt{survey.WithHelpInput('?')}, opts...)}
}

// Secret implements Prompter.
func (s *Survey) Secret(message string) (string, error) {
	var answer string
	opts := append([]survey.AskOpt{survey.WithValidator(survey.Required)}, s.opts...)
	if err := survey.AskOne(&survey.Password{Message: message}, &answer, opts...); err != nil {
		return "", translate(err)
	}
	return strings.TrimSpace(answer), nil
}

// Confirm implements Prompter.
func (s *Survey) Confirm(message string, def bool) (bool, error) {
	answer := def
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &answer, s.opts...); err != nil {
		return false, translate(err)
	}
	return answer, nil
}

// translate maps a survey interrupt to ErrCancelled and wraps anything else.
func translate(err error) error {
	if err == terminal.InterruptErr {
		return ErrCancelled
	}
	return apperrors.Wrap(err, "prompt failed")
}

// ReadToken reads a token from the first line of r, for --token-stdin.
func ReadToken(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", apperrors.Wrap(err, "failed to read token from stdin")
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return "", apperrors.NewConfigError("token", nil, "must not be empty")
	}
	return token, nil
}
