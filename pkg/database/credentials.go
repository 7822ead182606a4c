package database

import (
	"fmt"
	"strings"

	"github.com/redbco/graphschema/pkg/keyring"
)

// KeyringService is the keyring service graph passwords are stored under
// when a reference names no service
const KeyringService = "graphschema"

// CredentialsManager resolves backend passwords kept in the keyring
type CredentialsManager struct {
	keyring *keyring.Manager
}

// NewCredentialsManager creates a credentials manager over km
func NewCredentialsManager(km *keyring.Manager) *CredentialsManager {
	return &CredentialsManager{keyring: km}
}

// ParseKeyringRef splits a "service/user" reference. A bare "user" uses
// KeyringService.
func ParseKeyringRef(ref string) (service, user string, err error) {
	if ref == "" {
		return "", "", fmt.Errorf("empty keyring reference")
	}
	service, user, found := strings.Cut(ref, "/")
	if !found {
		return KeyringService, ref, nil
	}
	if service == "" || user == "" {
		return "", "", fmt.Errorf("malformed keyring reference %q, want service/user", ref)
	}
	return service, user, nil
}

// Resolve returns the password stored for ref
func (m *CredentialsManager) Resolve(ref string) (string, error) {
	service, user, err := ParseKeyringRef(ref)
	if err != nil {
		return "", err
	}
	password, err := m.keyring.Get(service, user)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve password %s from keyring: %w", ref, err)
	}
	return password, nil
}

// Store saves the password for ref
func (m *CredentialsManager) Store(ref, password string) error {
	service, user, err := ParseKeyringRef(ref)
	if err != nil {
		return err
	}
	return m.keyring.Set(service, user, password)
}

// Remove deletes the password for ref
func (m *CredentialsManager) Remove(ref string) error {
	service, user, err := ParseKeyringRef(ref)
	if err != nil {
		return err
	}
	return m.keyring.Delete(service, user)
}
