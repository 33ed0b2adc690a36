package balance

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Keychain is an opaque keyed secret store.
type Keychain interface {
	// Get returns the secret stored under key, and false when there is none.
	Get(key string) (string, bool, error)
	Set(key, secret string) error
	Delete(key string) error
}

// Credential returns the secret for p, or a MissingCredential error when none
// is stored.
func Credential(k Keychain, p Provider) (string, error) {
	if k == nil {
		return "", MissingCredentialError(p)
	}
	secret, ok, err := k.Get(string(p))
	if err != nil {
		return "", fmt.Errorf("cannot read %s credential: %w", p, err)
	}
	if !ok || strings.TrimSpace(secret) == "" {
		return "", MissingCredentialError(p)
	}
	return strings.TrimSpace(secret), nil
}

const keychainPrefix = "balance-token-"

// FileKeychain stores one secret per file in a directory.
type FileKeychain struct {
	Dir string // defaults to os.TempDir()
}

func (k FileKeychain) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid keychain key %q", key)
	}
	dir := k.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, keychainPrefix+key), nil
}

func (k FileKeychain) Get(key string) (string, bool, error) {
	path, err := k.path(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (k FileKeychain) Set(key, secret string) error {
	path, err := k.path(key)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(secret), 0o600)
}

func (k FileKeychain) Delete(key string) error {
	path, err := k.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryKeychain is an in-memory Keychain. Its zero value is ready to use.
type MemoryKeychain struct {
	mu      sync.Mutex
	secrets map[string]string
}

func (k *MemoryKeychain) Get(key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, ok := k.secrets[key]
	return s, ok, nil
}

func (k *MemoryKeychain) Set(key, secret string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.secrets == nil {
		k.secrets = make(map[string]string)
	}
	k.secrets[key] = secret
	return nil
}

func (k *MemoryKeychain) Delete(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.secrets, key)
	return nil
}

// EnvKeychain overlays environment variables on top of another Keychain:
// Get returns the variable mapped to key when it is set.
type EnvKeychain struct {
	Vars map[string]string // key -> environment variable name
	Keychain
}

func (k EnvKeychain) Get(key string) (string, bool, error) {
	if name, ok := k.Vars[key]; ok {
		if v := os.Getenv(name); v != "" {
			return v, true, nil
		}
	}
	if k.Keychain == nil {
		return "", false, nil
	}
	return k.Keychain.Get(key)
}
