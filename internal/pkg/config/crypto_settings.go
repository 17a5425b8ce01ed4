package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/venuvedam/openenclave/internal/pkg/validators"
)

// CryptoSettings holds defaults for key generation and signing.
type CryptoSettings struct {
	Algorithm     string `yaml:"algorithm" validate:"required,oneof=RSA EC"`
	KeySize       uint   `yaml:"key_size" validate:"required,keySizeValidation"`
	HashAlgorithm string `yaml:"hash_algorithm" validate:"required,oneof=sha256 sha384 sha512"`
}

// Validate checks that the algorithm, key size and hash names are supported
func (s *CryptoSettings) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("keySizeValidation", validators.KeySizeValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
