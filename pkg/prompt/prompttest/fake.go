// Package prompttest provides a scripted Prompter for tests: answers
// are queued per prompt shape and popped in call order.
package prompttest

import (
	"github.com/JesusMMA96/sap-autoentry/pkg/prompt"
	"github.com/shopspring/decimal"
)

// Fake is a scripted prompt.Prompter and prompt.Notifier. A call with
// an empty queue returns prompt.ErrCancelled, which doubles as the
// "user walked away" case.
type Fake struct {
	Confirms []bool
	Inputs   []string
	Amounts  []decimal.Decimal
	Dates    []string
	Choices  []string

	// Questions records every prompt message in call order.
	Questions []string
	// Warnings and Infos record notifier messages.
	Warnings []string
	Infos    []string
}

// Confirm pops the next queued confirmation answer.
func (f *Fake) Confirm(message string) (bool, error) {
	f.Questions = append(f.Questions, message)
	if len(f.Confirms) == 0 {
		return false, prompt.ErrCancelled
	}
	answer := f.Confirms[0]
	f.Confirms = f.Confirms[1:]
	return answer, nil
}

// Input pops the next queued text answer. Unlike the real prompter it
// hands back empty answers verbatim, so callers' own re-ask loops can
// be exercised.
func (f *Fake) Input(message string) (string, error) {
	f.Questions = append(f.Questions, message)
	if len(f.Inputs) == 0 {
		return "", prompt.ErrCancelled
	}
	answer := f.Inputs[0]
	f.Inputs = f.Inputs[1:]
	return answer, nil
}

// Amount pops the next queued amount.
func (f *Fake) Amount(message string) (decimal.Decimal, error) {
	f.Questions = append(f.Questions, message)
	if len(f.Amounts) == 0 {
		return decimal.Zero, prompt.ErrCancelled
	}
	answer := f.Amounts[0]
	f.Amounts = f.Amounts[1:]
	return answer, nil
}

// Date pops the next queued date.
func (f *Fake) Date(message string) (string, error) {
	f.Questions = append(f.Questions, message)
	if len(f.Dates) == 0 {
		return "", prompt.ErrCancelled
	}
	answer := f.Dates[0]
	f.Dates = f.Dates[1:]
	return answer, nil
}

// Select pops the next queued choice.
func (f *Fake) Select(message string, options []string) (string, error) {
	f.Questions = append(f.Questions, message)
	if len(f.Choices) == 0 {
		return "", prompt.ErrCancelled
	}
	answer := f.Choices[0]
	f.Choices = f.Choices[1:]
	return answer, nil
}

// Info implements prompt.Notifier.
func (f *Fake) Info(title, message string) {
	f.Infos = append(f.Infos, message)
}

// Warn implements prompt.Notifier.
func (f *Fake) Warn(title, message string) {
	f.Warnings = append(f.Warnings, message)
}
