package workflow

import (
	"fmt"
	"os"

	"github.com/JesusMMA96/sap-autoentry/pkg/workbook"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// intentFile is the YAML shape of a batch payment intent. Amounts are
// strings so both decimal point and decimal comma are accepted.
type intentFile struct {
	ClientName   string `yaml:"client_name"`
	ClientCode   string `yaml:"client_code"`
	PaymentLabel string `yaml:"payment_label"`
	Number       string `yaml:"number"`
	Unified      bool   `yaml:"unified"`
	SGLIndicator string `yaml:"sgl_indicator"`

	DocDate string `yaml:"doc_date"` // dd/mm/yyyy
	DueDate string `yaml:"due_date"` // dd/mm/yyyy
	Amount  string `yaml:"amount"`

	InvoicesAmount string `yaml:"invoices_amount"`
	InvoiceCount   int    `yaml:"invoice_count"`

	TaxAmount     string `yaml:"tax_amount"`
	TaxAssignment string `yaml:"tax_assignment"`

	Totals []struct {
		ClientCode string `yaml:"client_code"`
		Debit      string `yaml:"debit"`
		Credit     string `yaml:"credit"`
	} `yaml:"totals"`

	Entries []struct {
		ClientCode string `yaml:"client_code"`
		Reference  string `yaml:"reference"`
		Amount     string `yaml:"amount"`
	} `yaml:"entries"`
}

// LoadIntent reads a batch payment intent from a YAML file.
func LoadIntent(path string) (PaymentIntent, error) {
	var intent PaymentIntent

	data, err := os.ReadFile(path)
	if err != nil {
		return intent, fmt.Errorf("failed to read intent file: %w", err)
	}

	var raw intentFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return intent, fmt.Errorf("failed to parse intent file: %w", err)
	}

	intent = PaymentIntent{
		ClientName:    raw.ClientName,
		ClientCode:    raw.ClientCode,
		PaymentLabel:  raw.PaymentLabel,
		Number:        raw.Number,
		Unified:       raw.Unified,
		SGLIndicator:  raw.SGLIndicator,
		InvoiceCount:  raw.InvoiceCount,
		TaxAssignment: raw.TaxAssignment,
	}

	if intent.ClientCode == "" {
		return intent, fmt.Errorf("intent file: client_code is required")
	}
	if !intent.Unified && intent.SGLIndicator == "" {
		return intent, fmt.Errorf("intent file: sgl_indicator is required unless unified")
	}

	if intent.DocDate, err = workbook.ParseDate(raw.DocDate); err != nil {
		return intent, fmt.Errorf("intent file: doc_date: %w", err)
	}
	if intent.DueDate, err = workbook.ParseDate(raw.DueDate); err != nil {
		return intent, fmt.Errorf("intent file: due_date: %w", err)
	}

	if intent.Amount, err = workbook.ParseAmount(raw.Amount); err != nil {
		return intent, fmt.Errorf("intent file: amount: %w", err)
	}
	if intent.InvoicesAmount, err = intentAmount(raw.InvoicesAmount); err != nil {
		return intent, fmt.Errorf("intent file: invoices_amount: %w", err)
	}
	if intent.TaxAmount, err = intentAmount(raw.TaxAmount); err != nil {
		return intent, fmt.Errorf("intent file: tax_amount: %w", err)
	}

	for _, t := range raw.Totals {
		total := ClientTotal{ClientCode: t.ClientCode}
		if total.Debit, err = intentAmount(t.Debit); err != nil {
			return intent, fmt.Errorf("intent file: totals %s: %w", t.ClientCode, err)
		}
		if total.Credit, err = intentAmount(t.Credit); err != nil {
			return intent, fmt.Errorf("intent file: totals %s: %w", t.ClientCode, err)
		}
		intent.Totals = append(intent.Totals, total)
	}

	for _, e := range raw.Entries {
		direct := DirectEntry{ClientCode: e.ClientCode, Reference: e.Reference}
		if direct.Amount, err = workbook.ParseAmount(e.Amount); err != nil {
			return intent, fmt.Errorf("intent file: entry %s: %w", e.Reference, err)
		}
		intent.Entries = append(intent.Entries, direct)
	}

	return intent, nil
}

// intentAmount parses an optional amount, zero when absent.
func intentAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return workbook.ParseAmount(value)
}
