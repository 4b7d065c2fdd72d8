// Package entry drives the accounting-entry state machine: posting
// lines, line data, open-item search, simulation, difference
// resolution, confirmation, document number retrieval and spool
// archiving. Every operation targets the screen the terminal currently
// shows; failures end the running posting sequence and are reported as
// errors, never panics.
package entry

import (
	"fmt"

	"github.com/JesusMMA96/sap-autoentry/pkg/config"
	"github.com/JesusMMA96/sap-autoentry/pkg/prompt"
	"github.com/JesusMMA96/sap-autoentry/pkg/scripting"
	"github.com/JesusMMA96/sap-autoentry/pkg/terminal"
	"github.com/shopspring/decimal"
)

// Posting keys the builder accepts.
const (
	KeyCustomerDebitSGL  = "09" // requires a special G/L indicator
	KeyCustomerCreditSGL = "19" // requires a special G/L indicator
	KeyCustomerDebit     = "06"
	KeyCustomerCredit    = "16"
	KeyGLDebit           = "40"
	KeyGLCredit          = "50"
	KeyVendorDebit       = "26"
	KeyVendorCredit      = "36"
)

var validPostingKeys = map[string]bool{
	KeyCustomerDebitSGL:  true,
	KeyCustomerCreditSGL: true,
	KeyCustomerDebit:     true,
	KeyCustomerCredit:    true,
	KeyGLDebit:           true,
	KeyGLCredit:          true,
	KeyVendorDebit:       true,
	KeyVendorCredit:      true,
}

// NoPaymentMethod marks a line that has no payment method, suppressing
// the interactive payment-method question.
const NoPaymentMethod = "-1"

var validPaymentMethods = map[string]bool{"2": true, "3": true, "R": true, "T": true}

// ValidationError reports input rejected before it reached the
// terminal's data-entry fields.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entry: invalid %s: %s", e.Field, e.Reason)
}

// ParseError reports a malformed value read back from the terminal.
type ParseError struct {
	Field string
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entry: cannot parse %s %q: %v", e.Field, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LineData is the payload of AddLineData.
type LineData struct {
	Amount  decimal.Decimal
	DueDate string // dd.mm.yyyy
	// Commentary is mandatory; when empty the operator is asked until
	// a value is given.
	Commentary string
	// PaymentMethod is one of the accepted codes, NoPaymentMethod, or
	// empty to ask the operator.
	PaymentMethod string
	// Assignment defaults to the due date reformatted dd/mm/yyyy.
	Assignment string
	CostCenter string
}

// SimulationRange is the index range of line positions the terminal
// generated during simulation: positions Initial+1 through Final need
// their data filled in.
type SimulationRange struct {
	Initial int
	Final   int
}

// ClearingTotals are the aggregate figures of the open-item
// processing screen.
type ClearingTotals struct {
	ItemCount   int
	ItemsAmount decimal.Decimal
	Difference  decimal.Decimal
	TotalAmount decimal.Decimal
}

// Builder drives one posting sequence at a time over the shared
// terminal session.
type Builder struct {
	sessions *scripting.Manager
	nav      *terminal.Navigator
	probe    *terminal.Probe
	ask      prompt.Prompter
	notify   prompt.Notifier
	accounts config.Accounts
}

// NewBuilder wires a builder over the shared session.
func NewBuilder(sessions *scripting.Manager, nav *terminal.Navigator, probe *terminal.Probe,
	ask prompt.Prompter, notify prompt.Notifier, accounts config.Accounts) *Builder {
	return &Builder{
		sessions: sessions,
		nav:      nav,
		probe:    probe,
		ask:      ask,
		notify:   notify,
		accounts: accounts,
	}
}
