package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "invoicedesk"
	KeyName     = "db-encryption-key"
	// EnvKey overrides the system keyring when set
	EnvKey = "INVOICEDESK_DB_KEY"
)

type systemKeyring struct {
	service string
}

// NewKeyring returns a keyring backed by the OS secret store
func NewKeyring() Keyring {
	return &systemKeyring{service: ServiceName}
}

// GetKey returns the draft file key from the environment or the OS keyring
func (k *systemKeyring) GetKey() (string, error) {
	if key := os.Getenv(EnvKey); key != "" {
		return key, nil
	}

	key, err := keyring.Get(k.service, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("encryption key not found in keyring: %w", err)
		}
		return "", fmt.Errorf("failed to retrieve key from keyring: %w", err)
	}

	if key == "" {
		return "", errors.New("encryption key is empty")
	}

	return key, nil
}

// SetKey stores the key in the OS keyring
func (k *systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if err := keyring.Set(k.service, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keyring (set %s instead): %w", EnvKey, err)
	}

	return nil
}

// DeleteKey removes the key from the OS keyring
func (k *systemKeyring) DeleteKey() error {
	err := keyring.Delete(k.service, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("encryption key not found in keyring: %w", err)
		}
		return fmt.Errorf("failed to delete key from keyring: %w", err)
	}

	return nil
}

// IsAvailable checks whether a key source is usable
func (k *systemKeyring) IsAvailable() bool {
	if os.Getenv(EnvKey) != "" {
		return true
	}

	// Probe with a throwaway entry
	testKey := "__invoicedesk_availability_test__"
	if err := keyring.Set(k.service, testKey, "test"); err != nil {
		return false
	}

	_ = keyring.Delete(k.service, testKey)
	return true
}
