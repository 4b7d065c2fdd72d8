// Package config provides configuration management for the posting
// assistant. Process-level settings come from environment variables
// and .env files; the account constants the posting recipes depend on
// come from a YAML mapping file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// AccountsFile is the path of the YAML account mapping.
	AccountsFile string
	// HistoryDB is the path of the SQLite posting history database.
	HistoryDB string
	// Debug enables debug logging.
	Debug bool

	Accounts Accounts
}

// Accounts holds the account constants the posting recipes need. They
// are client-site configuration, not derivable at runtime.
type Accounts struct {
	CompanyCode  string `yaml:"company_code"`
	BusinessArea string `yaml:"business_area"`
	// BankAccount is the G/L account daily payments debit.
	BankAccount string `yaml:"bank_account"`
	// ExpenseAccount and ExpenseCostCenter receive tax/expense
	// adjustment lines.
	ExpenseAccount    string `yaml:"expense_account"`
	ExpenseCostCenter string `yaml:"expense_cost_center"`
	// RoundingAccount and RoundingCostCenter absorb small clearing
	// differences.
	RoundingAccount    string `yaml:"rounding_account"`
	RoundingCostCenter string `yaml:"rounding_cost_center"`
	// SpoolPath is the directory archived spool PDFs are saved to.
	SpoolPath string `yaml:"spool_path"`
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	// Load .env file
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	cfg := &Config{
		AccountsFile: getEnvOrDefault("SAP_ACCOUNTS_FILE", "config/accounts.yaml"),
		HistoryDB:    getEnvOrDefault("SAP_HISTORY_DB", "data/postings.db"),
		Debug:        os.Getenv("DEBUG") == "true",
	}

	accounts, err := LoadAccounts(cfg.AccountsFile)
	if err != nil {
		return nil, err
	}
	cfg.Accounts = *accounts

	return cfg, nil
}

// LoadAccounts reads the YAML account mapping from the given path.
func LoadAccounts(path string) (*Accounts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var accounts Accounts
	if err := yaml.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file: %w", err)
	}

	return &accounts, nil
}

// Validate checks the fields every posting recipe needs. The expense
// and rounding pairs are checked by the operations that use them, so a
// site that never posts adjustments can leave them blank.
func (a *Accounts) Validate() error {
	var missing []string
	if a.CompanyCode == "" {
		missing = append(missing, "company_code")
	}
	if a.BusinessArea == "" {
		missing = append(missing, "business_area")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your accounts file", missing)
	}

	return nil
}

// HasExpensePair reports whether the expense account/cost-center pair
// is configured.
func (a *Accounts) HasExpensePair() bool {
	return a.ExpenseAccount != "" && a.ExpenseCostCenter != ""
}

// HasRoundingPair reports whether the rounding account/cost-center
// pair is configured.
func (a *Accounts) HasRoundingPair() bool {
	return a.RoundingAccount != "" && a.RoundingCostCenter != ""
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
