// Package keyring stores backend credentials in the OS keyring, or in an
// encrypted file on hosts without one.
package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/argon2"
)

// ErrNotFound is returned when no secret is stored for a service and user
var ErrNotFound = errors.New("secret not found in keyring")

// Backend selects where secrets are kept
type Backend string

const (
	BackendAuto   Backend = "auto"
	BackendSystem Backend = "system"
	BackendFile   Backend = "file"
)

// ParseBackend parses a backend name. An empty name yields BackendAuto.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "", BackendAuto:
		return BackendAuto, nil
	case BackendSystem, BackendFile:
		return Backend(s), nil
	}
	return "", fmt.Errorf("unknown keyring backend %q", s)
}

// Manager reads and writes secrets through the selected backend
type Manager struct {
	file    *FileKeyring
	useFile bool
}

// NewManager creates a manager for backend. BackendAuto probes the system
// keyring and falls back to the file at path when it is unusable.
func NewManager(backend Backend, path, masterPassword string) (*Manager, error) {
	switch backend {
	case BackendSystem:
		return &Manager{}, nil
	case BackendFile:
		fk, err := NewFileKeyring(path, masterPassword)
		if err != nil {
			return nil, err
		}
		return &Manager{file: fk, useFile: true}, nil
	}

	if systemAvailable(5 * time.Second) {
		return &Manager{}, nil
	}
	fk, err := NewFileKeyring(path, masterPassword)
	if err != nil {
		return nil, err
	}
	return &Manager{file: fk, useFile: true}, nil
}

// systemAvailable writes and removes a probe entry. Some keyring daemons hang
// instead of failing, hence the timeout.
func systemAvailable(timeout time.Duration) bool {
	const probeService, probeUser = "graphschema-probe", "probe"

	done := make(chan error, 1)
	go func() {
		err := keyring.Set(probeService, probeUser, "probe")
		if err == nil {
			_ = keyring.Delete(probeService, probeUser)
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err == nil
	case <-time.After(timeout):
		return false
	}
}

// UsesFile reports whether secrets are kept in the file keyring
func (m *Manager) UsesFile() bool {
	return m.useFile
}

func (m *Manager) Set(service, user, secret string) error {
	if m.useFile {
		return m.file.Set(service, user, secret)
	}
	return keyring.Set(service, user, secret)
}

func (m *Manager) Get(service, user string) (string, error) {
	if m.useFile {
		return m.file.Get(service, user)
	}
	secret, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%s/%s: %w", service, user, ErrNotFound)
	}
	return secret, err
}

func (m *Manager) Delete(service, user string) error {
	if m.useFile {
		return m.file.Delete(service, user)
	}
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// FileKeyring keeps AES-GCM encrypted secrets in a JSON file
type FileKeyring struct {
	path      string
	masterKey []byte
}

type fileEntry struct {
	Service string `json:"service"`
	User    string `json:"user"`
	Data    string `json:"data"`
}

// NewFileKeyring creates a file keyring whose key derives from masterPassword
func NewFileKeyring(path, masterPassword string) (*FileKeyring, error) {
	if path == "" {
		return nil, errors.New("file keyring path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create keyring directory: %w", err)
	}
	return &FileKeyring{path: path, masterKey: deriveKey(masterPassword)}, nil
}

var keySalt = []byte("graphschema-file-keyring")

// deriveKey stretches the master password into an AES-256 key with argon2id
func deriveKey(masterPassword string) []byte {
	return argon2.IDKey([]byte(masterPassword), keySalt, 2, 19*1024, 1, 32)
}

func (fk *FileKeyring) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(fk.masterKey)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (fk *FileKeyring) encrypt(plaintext string) (string, error) {
	gcm, err := fk.gcm()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(gcm.Seal(nonce, nonce, []byte(plaintext), nil)), nil
}

func (fk *FileKeyring) decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}
	gcm, err := fk.gcm()
	if err != nil {
		return "", err
	}
	if len(data) < gcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}
	plaintext, err := gcm.Open(nil, data[:gcm.NonceSize()], data[gcm.NonceSize():], nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt keyring entry: %w", err)
	}
	return string(plaintext), nil
}

func (fk *FileKeyring) load() (map[string]fileEntry, error) {
	entries := make(map[string]fileEntry)
	data, err := os.ReadFile(fk.path)
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("corrupt keyring file %s: %w", fk.path, err)
	}
	return entries, nil
}

func (fk *FileKeyring) save(entries map[string]fileEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(fk.path, data, 0o600)
}

func entryKey(service, user string) string {
	return service + ":" + user
}

func (fk *FileKeyring) Set(service, user, secret string) error {
	entries, err := fk.load()
	if err != nil {
		return err
	}
	data, err := fk.encrypt(secret)
	if err != nil {
		return err
	}
	entries[entryKey(service, user)] = fileEntry{Service: service, User: user, Data: data}
	return fk.save(entries)
}

func (fk *FileKeyring) Get(service, user string) (string, error) {
	entries, err := fk.load()
	if err != nil {
		return "", err
	}
	entry, ok := entries[entryKey(service, user)]
	if !ok {
		return "", fmt.Errorf("%s/%s: %w", service, user, ErrNotFound)
	}
	return fk.decrypt(entry.Data)
}

func (fk *FileKeyring) Delete(service, user string) error {
	entries, err := fk.load()
	if err != nil {
		return err
	}
	delete(entries, entryKey(service, user))
	return fk.save(entries)
}

// MasterPasswordFromEnv returns GRAPHSCHEMA_KEYRING_PASSWORD, or a development
// default when unset
func MasterPasswordFromEnv() string {
	if password := os.Getenv("GRAPHSCHEMA_KEYRING_PASSWORD"); password != "" {
		return password
	}
	return "graphschema-development-password"
}

// DefaultPath returns GRAPHSCHEMA_KEYRING_PATH or a file under the user's
// data directory
func DefaultPath() string {
	if path := os.Getenv("GRAPHSCHEMA_KEYRING_PATH"); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "graphschema-keyring.json")
	}
	return filepath.Join(homeDir, ".local", "share", "graphschema", "keyring.json")
}
