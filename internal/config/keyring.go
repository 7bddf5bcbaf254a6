package config

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name in the OS keychain
	KeyringService = "recipegraph"

	// keyringPasswordPrefix namespaces Neo4j passwords by database user
	keyringPasswordPrefix = "neo4j-password:"
)

// KeyringManager handles secure credential storage in OS keychain
type KeyringManager struct {
	logger logrus.FieldLogger
}

// NewKeyringManager creates a new keyring manager
func NewKeyringManager(logger logrus.FieldLogger) *KeyringManager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &KeyringManager{
		logger: logger.WithField("component", "keyring"),
	}
}

func passwordItem(user string) string {
	return keyringPasswordPrefix + user
}

// SaveNeo4jPassword stores the password for a Neo4j user in the OS keychain
// - macOS: Keychain Access.app → "recipegraph"
// - Windows: Credential Manager → "recipegraph"
// - Linux: Secret Service (requires libsecret)
func (km *KeyringManager) SaveNeo4jPassword(user, password string) error {
	if user == "" {
		return fmt.Errorf("neo4j user cannot be empty")
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if err := keyring.Set(KeyringService, passwordItem(user), password); err != nil {
		km.logger.WithError(err).Error("failed to save neo4j password to keychain")
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}

	km.logger.WithField("user", user).Info("neo4j password saved to keychain")
	return nil
}

// GetNeo4jPassword retrieves the password for a Neo4j user.
// A missing entry returns "" and no error.
func (km *KeyringManager) GetNeo4jPassword(user string) (string, error) {
	password, err := keyring.Get(KeyringService, passwordItem(user))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		km.logger.WithError(err).Debug("failed to read neo4j password from keychain")
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}
	return password, nil
}

// DeleteNeo4jPassword removes the password for a Neo4j user
func (km *KeyringManager) DeleteNeo4jPassword(user string) error {
	err := keyring.Delete(KeyringService, passwordItem(user))
	if errors.Is(err, keyring.ErrNotFound) {
		// Already deleted, not an error
		return nil
	}
	if err != nil {
		km.logger.WithError(err).Error("failed to delete neo4j password from keychain")
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}

	km.logger.WithField("user", user).Info("neo4j password deleted from keychain")
	return nil
}

// IsAvailable checks if OS keychain is available.
// Returns false on headless systems (CI/CD, containers).
func (km *KeyringManager) IsAvailable() bool {
	_, err := keyring.Get(KeyringService, "test-availability")
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return true
	}
	km.logger.WithError(err).Debug("keychain not available")
	return false
}
