package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/andy/invoicedesk/internal/logging"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Log settings
	Log logging.Config `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to the encrypted draft file
}

type InvoiceConfig struct {
	DefaultNumber   string  `yaml:"default_number"`     // Shown when the invoice number is empty
	DefaultTaxRate  float64 `yaml:"default_tax_rate"`   // Tax as a percentage (18 = 18%)
	TaxLabel        string  `yaml:"tax_label"`          // Tax row label (e.g., "GST")
	ItemsPerPage    int     `yaml:"items_per_page"`     // Rows per printed page
	CurrencySymbol  string  `yaml:"currency_symbol"`    // e.g. "₹"
	CurrencyCode    string  `yaml:"currency_code"`      // e.g. "INR", used where the symbol can't be printed
	OutputDir       string  `yaml:"output_dir"`         // Directory for exported files
	CompanyName     string  `yaml:"company_name"`       // Printed in the document header
	StartInEditMode bool    `yaml:"start_in_edit_mode"` // Open the editor in edit mode
}

// DefaultConfigPath returns ~/.config/invoicedesk/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "invoicedesk")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := configDir()

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "drafts.db"),
		},
		Invoice: InvoiceConfig{
			DefaultNumber:   "INV-001",
			DefaultTaxRate:  18,
			TaxLabel:        "GST",
			ItemsPerPage:    15,
			CurrencySymbol:  "₹",
			CurrencyCode:    "INR",
			OutputDir:       filepath.Join(dir, "invoices"),
			StartInEditMode: true,
		},
		Log: logging.Config{
			Level:  "info",
			Path:   filepath.Join(dir, "invoicedesk.log"),
			Format: "console",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Validate returns an error if the config is invalid
func (c *Config) Validate() error {
	if c.Invoice.ItemsPerPage < 1 {
		return errors.New("invoice.items_per_page must be at least 1")
	}
	if c.Invoice.DefaultTaxRate < 0 {
		return errors.New("invoice.default_tax_rate cannot be negative")
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	return nil
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for database, exports, etc.)
func (c *Config) EnsureDirectories() error {
	dbDir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	if err := os.MkdirAll(c.Invoice.OutputDir, 0755); err != nil {
		return err
	}

	return nil
}
