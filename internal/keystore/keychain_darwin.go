//go:build darwin

package keystore

import (
	"fmt"
	"os/exec"
	"strings"
)

func platformStore() Store {
	return keychainStore{}
}

// keychainStore shells out to the macOS `security` tool so secrets live in
// the user's login keychain instead of a file on disk.
type keychainStore struct{}

func (keychainStore) Get(key string) (string, bool, error) {
	out, err := exec.Command(
		"security", "find-generic-password",
		"-s", service,
		"-a", key,
		"-w",
	).Output()
	if err != nil {
		// The tool exits non-zero both for "not found" and real failures;
		// treat every miss as absence so callers fall back to defaults.
		return "", false, nil
	}
	return strings.TrimRight(string(out), "\n"), true, nil
}

func (keychainStore) Set(key, value string) error {
	// -U updates an existing item in place.
	err := exec.Command(
		"security", "add-generic-password",
		"-s", service,
		"-a", key,
		"-w", value,
		"-U",
	).Run()
	if err != nil {
		return fmt.Errorf("keychain write %q: %w", key, err)
	}
	return nil
}

func (keychainStore) Delete(key string) error {
	// Absent items exit non-zero; deleting a missing key is fine.
	_ = exec.Command(
		"security", "delete-generic-password",
		"-s", service,
		"-a", key,
	).Run()
	return nil
}
