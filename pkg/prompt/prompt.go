// Package prompt is the blocking user-prompt collaborator. Every
// question is modal: the workflow waits for the answer, and a
// cancelled prompt surfaces as ErrCancelled, which callers treat the
// same way as a failed terminal step.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	surveyterm "github.com/AlecAivazis/survey/v2/terminal"
	"github.com/shopspring/decimal"
)

// ErrCancelled is returned when the user declines or interrupts a
// prompt. It is an expected control path, not a defect.
var ErrCancelled = errors.New("prompt: cancelled by user")

// Prompter asks the operator for decisions and values. All methods
// block until answered; all may return ErrCancelled.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(message string) (bool, error)
	// Input asks for a free-text value, re-asking until it is
	// non-empty or the user gives up.
	Input(message string) (string, error)
	// Amount asks for a non-negative amount, rounded to 2 decimals.
	Amount(message string) (decimal.Decimal, error)
	// Date asks for a dd/mm/yyyy date and returns it in the
	// terminal's dd.mm.yyyy form.
	Date(message string) (string, error)
	// Select asks the user to pick one of the given options.
	Select(message string, options []string) (string, error)
}

// Notifier shows one-way messages to the operator.
type Notifier interface {
	Info(title, message string)
	Warn(title, message string)
}

// askOne is survey's AskOne, held in a var so tests can inject
// scripted answers.
var askOne = survey.AskOne

// Console is the survey-backed Prompter and Notifier used by the CLI.
type Console struct{}

// NewConsole creates a console prompter.
func NewConsole() *Console {
	return &Console{}
}

func cancelled(err error) error {
	if errors.Is(err, surveyterm.InterruptErr) {
		return ErrCancelled
	}
	return err
}

// Confirm implements Prompter.
func (c *Console) Confirm(message string) (bool, error) {
	var answer bool
	if err := askOne(&survey.Confirm{Message: message}, &answer); err != nil {
		return false, cancelled(err)
	}
	return answer, nil
}

// Input implements Prompter. An empty answer triggers a retry
// question; declining the retry cancels.
func (c *Console) Input(message string) (string, error) {
	for {
		var text string
		if err := askOne(&survey.Input{Message: message}, &text); err != nil {
			return "", cancelled(err)
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}

		retry, err := c.Confirm("No value was entered. Try again?")
		if err != nil {
			return "", err
		}
		if !retry {
			return "", ErrCancelled
		}
	}
}

// Amount implements Prompter.
func (c *Console) Amount(message string) (decimal.Decimal, error) {
	for {
		var text string
		if err := askOne(&survey.Input{Message: fmt.Sprintf("%s (amount):", message)}, &text); err != nil {
			return decimal.Zero, cancelled(err)
		}

		value, err := decimal.NewFromString(strings.TrimSpace(text))
		if err == nil && !value.IsNegative() {
			return value.Round(2), nil
		}

		retry, err := c.Confirm("Not a valid non-negative amount. Try again?")
		if err != nil {
			return decimal.Zero, err
		}
		if !retry {
			return decimal.Zero, ErrCancelled
		}
	}
}

// Date implements Prompter.
func (c *Console) Date(message string) (string, error) {
	for {
		var text string
		if err := askOne(&survey.Input{Message: fmt.Sprintf("%s (dd/mm/yyyy):", message)}, &text); err != nil {
			return "", cancelled(err)
		}

		if t, err := time.Parse("02/01/2006", strings.TrimSpace(text)); err == nil {
			return t.Format("02.01.2006"), nil
		}

		retry, err := c.Confirm("Not a valid dd/mm/yyyy date. Try again?")
		if err != nil {
			return "", err
		}
		if !retry {
			return "", ErrCancelled
		}
	}
}

// Select implements Prompter.
func (c *Console) Select(message string, options []string) (string, error) {
	var choice string
	if err := askOne(&survey.Select{Message: message, Options: options}, &choice); err != nil {
		return "", cancelled(err)
	}
	return choice, nil
}

// Info implements Notifier.
func (c *Console) Info(title, message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", title, message)
}

// Warn implements Notifier.
func (c *Console) Warn(title, message string) {
	fmt.Fprintf(os.Stderr, "[%s] WARNING: %s\n", title, message)
}
