// Package secrets mints per-deployment dynamic secrets: random values
// generated once and handed to the resolver as an additional env layer.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// keyLength is the number of random bytes minted per secret, exceeding the
// system's minimum entropy requirement of 16 bytes.
const keyLength = 32

// Mint generates a random urlsafe-base64 value for each requested secret
// name. Duplicate names are a manifest authoring error and are rejected
// rather than silently minting once.
type Mint struct {
	// logger is used for logging mint operations.
	// Note: secret values are never logged.
	logger *slog.Logger
}

// NewMint creates a secret minter.
func NewMint(logger *slog.Logger) *Mint {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mint{logger: logger}
}

// Mint generates one secret value per name and returns them as a map.
func (m *Mint) Mint(names []string) (map[string]string, *smerrors.SmartMonitoringError) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}

	result := make(map[string]string, len(names))
	for _, name := range names {
		if _, exists := result[name]; exists {
			return nil, smerrors.ManifestValidation(
				fmt.Sprintf("duplicate entry in dynamic_secrets: %q", name))
		}

		value, err := generate(keyLength)
		if err != nil {
			return nil, smerrors.Internal("failed to generate secret value", err)
		}

		result[name] = value
		m.logger.Debug("minted dynamic secret", "name", name)
	}

	return result, nil
}

// generate returns a urlsafe-base64 encoded string of n random bytes.
func generate(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
