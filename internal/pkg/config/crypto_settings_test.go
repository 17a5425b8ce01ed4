//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *CryptoSettings
		expectedError bool
	}{
		{
			name:     "valid rsa settings",
			settings: &CryptoSettings{Algorithm: "RSA", KeySize: 3072, HashAlgorithm: "sha256"},
		},
		{
			name:     "valid ec settings",
			settings: &CryptoSettings{Algorithm: "EC", KeySize: 384, HashAlgorithm: "sha384"},
		},
		{
			name:          "missing algorithm",
			settings:      &CryptoSettings{KeySize: 2048, HashAlgorithm: "sha256"},
			expectedError: true,
		},
		{
			name:          "rsa with ec key size",
			settings:      &CryptoSettings{Algorithm: "RSA", KeySize: 256, HashAlgorithm: "sha256"},
			expectedError: true,
		},
		{
			name:          "unsupported hash",
			settings:      &CryptoSettings{Algorithm: "EC", KeySize: 256, HashAlgorithm: "md5"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCryptoSettingsValidation_ReportsField(t *testing.T) {
	settings := &CryptoSettings{Algorithm: "EC", KeySize: 4096, HashAlgorithm: "sha256"}

	err := settings.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Field: KeySize, Tag: keySizeValidation")
}
