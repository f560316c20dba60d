// Package prompt asks for task fields on the terminal.
package prompt

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/taskboard/pkg/app"
)

// Prompter reads answers from In and echoes to Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// TaskFields prompts for title and summary, starting from the given values.
// Both are validated the same way the task form validates them.
func (p Prompter) TaskFields(title, summary string) (string, string, error) {
	title, err := p.field(app.FieldTitle, title, app.ValidateTitle)
	if err != nil {
		return "", "", err
	}
	summary, err = p.field(app.FieldSummary, summary, app.ValidateSummary)
	if err != nil {
		return "", "", err
	}
	return title, summary, nil
}

// Confirm asks a yes/no question; anything but yes is false.
func (p Prompter) Confirm(label string) (bool, error) {
	pr := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	if _, err := pr.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p Prompter) field(f app.Field, current string, check func(string) string) (string, error) {
	pr := promptui.Prompt{
		Label:     f.String(),
		Default:   current,
		AllowEdit: current != "",
		Templates: templates,
		Validate:  Validator(check),
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	answer, err := pr.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Validator adapts a field check that returns a message into a promptui
// validation func.
func Validator(check func(string) string) promptui.ValidateFunc {
	return func(input string) error {
		if msg := check(input); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

func (p Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	if rc, ok := p.In.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(p.In)
}

func (p Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	if wc, ok := p.Out.(io.WriteCloser); ok {
		return wc
	}
	return nopCloser{p.Out}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
