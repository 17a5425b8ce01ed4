package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings is the root configuration document.
type Settings struct {
	Logger LoggerSettings `yaml:"logger"`
	Crypto CryptoSettings `yaml:"crypto"`
}

// DefaultSettings returns console logging at info level, RSA-2048 keys and SHA-256.
func DefaultSettings() *Settings {
	return &Settings{
		Logger: LoggerSettings{
			LogLevel: LogLevelInfo,
			LogType:  LogTypeConsole,
		},
		Crypto: CryptoSettings{
			Algorithm:     "RSA",
			KeySize:       2048,
			HashAlgorithm: "sha256",
		},
	}
}

// Validate validates every section.
func (s *Settings) Validate() error {
	if err := s.Logger.Validate(); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	if err := s.Crypto.Validate(); err != nil {
		return fmt.Errorf("crypto: %w", err)
	}
	return nil
}

// Load reads a YAML settings file. Fields absent from the file keep their
// defaults. An empty path yields the defaults.
func Load(path string) (*Settings, error) {
	if path == "" {
		settings := DefaultSettings()
		return settings, settings.Validate()
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML settings over the defaults and validates the result.
// Unknown fields are rejected.
func Parse(data []byte) (*Settings, error) {
	settings := DefaultSettings()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}
