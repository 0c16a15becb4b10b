// Package identity persists the two values a device keeps across sessions:
// its player id and the last display name the user entered. Both live as
// plain files under the config dir, read once at startup and rewritten on
// change.
package identity

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	deviceIDFile = "device-id"
	nameFile     = "name"

	// TokenLen is the length of generated device and room tokens.
	TokenLen = 8
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Cache reads and writes the device's persisted identity values.
type Cache struct {
	dir string
}

// NewCache returns a cache rooted at dir, creating it on first write.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// DefaultDir returns ~/.pokerize.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("identity.DefaultDir: %w", err)
	}
	return filepath.Join(home, ".pokerize"), nil
}

// DeviceID returns the cached device id, generating and persisting a fresh
// token the first time this device is seen.
func (c *Cache) DeviceID() (string, error) {
	if id := c.read(deviceIDFile); id != "" {
		return id, nil
	}
	id := NewToken(TokenLen)
	if err := c.write(deviceIDFile, id); err != nil {
		return "", fmt.Errorf("identity.DeviceID: %w", err)
	}
	return id, nil
}

// Name returns the cached display name, or "" when none was saved.
func (c *Cache) Name() string {
	return c.read(nameFile)
}

// SetName persists the display name for the next session.
func (c *Cache) SetName(name string) error {
	if err := c.write(nameFile, name); err != nil {
		return fmt.Errorf("identity.SetName: %w", err)
	}
	return nil
}

func (c *Cache) read(file string) string {
	data, err := os.ReadFile(filepath.Join(c.dir, file))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (c *Cache) write(file, value string) error {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, file), []byte(value+"\n"), 0o600)
}

// NewToken returns a random alphanumeric token of length n, used for both
// device ids and room codes (keeps store keys subject-safe).
func NewToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf)
}
