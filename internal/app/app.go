package app

import (
	"context"
	"fmt"
	"syscall"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/andy/invoicedesk/internal/config"
	"github.com/andy/invoicedesk/internal/crypto"
	"github.com/andy/invoicedesk/internal/db"
	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/export"
	"github.com/andy/invoicedesk/internal/logging"
	"github.com/andy/invoicedesk/internal/money"
	"github.com/andy/invoicedesk/internal/repository"
	"github.com/andy/invoicedesk/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *db.DB

	// Repositories
	DraftRepo repository.DraftRepository

	// Document state
	Editor   *service.Editor
	Exporter *service.Exporter

	// Services
	DraftService service.DraftService
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting encryption key from keyring
// 3. Opening the draft file
// 4. Running migrations
// 5. Creating the editor, exporter and services
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	keyring := crypto.NewKeyring()

	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Println("Setting up draft encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		if err := keyring.SetKey(password); err != nil {
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	draftRepo := repository.NewDraftRepo(database)
	editor := service.NewEditor(EditorConfig(cfg), logger)

	a := &App{
		Config:       cfg,
		Logger:       logger,
		DB:           database,
		DraftRepo:    draftRepo,
		Editor:       editor,
		DraftService: service.NewDraftService(draftRepo, logger),
	}
	a.Exporter = service.NewExporter(editor, Renderers(), ExporterConfig(cfg), logger)

	logger.Info("application started", zap.String("database", cfg.Database.Path))
	return a, nil
}

// EditorConfig maps the invoice settings onto the editor
func EditorConfig(cfg *config.Config) service.EditorConfig {
	mode := domain.ModeView
	if cfg.Invoice.StartInEditMode {
		mode = domain.ModeEdit
	}
	return service.EditorConfig{
		ItemsPerPage:   cfg.Invoice.ItemsPerPage,
		DefaultNumber:  cfg.Invoice.DefaultNumber,
		DefaultTaxRate: decimal.NewFromFloat(cfg.Invoice.DefaultTaxRate),
		TaxLabel:       cfg.Invoice.TaxLabel,
		Formatter:      money.NewFormatter(cfg.Invoice.CurrencySymbol, cfg.Invoice.CurrencyCode),
		StartMode:      mode,
	}
}

// ExporterConfig maps the output settings onto the exporter
func ExporterConfig(cfg *config.Config) service.ExporterConfig {
	return service.ExporterConfig{
		OutDir:  cfg.Invoice.OutputDir,
		Company: cfg.Invoice.CompanyName,
	}
}

// Renderers returns the renderer for each export kind
func Renderers() map[service.ExportKind]export.Renderer {
	return map[service.ExportKind]export.Renderer{
		service.ExportPDF:   export.NewPDFRenderer(),
		service.ExportPrint: export.NewTextRenderer(),
	}
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// promptForPassword prompts user for a new draft file password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your saved invoice drafts will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for draft encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Draft encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// ApplyConfig pushes edited settings into the running editor and exporter
func (a *App) ApplyConfig() {
	a.Editor.Reconfigure(EditorConfig(a.Config))
	a.Exporter.Reconfigure(ExporterConfig(a.Config))
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
