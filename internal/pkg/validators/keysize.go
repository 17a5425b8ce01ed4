package validators

import (
	"github.com/go-playground/validator/v10"

	"github.com/venuvedam/openenclave/internal/domain/crypto"
)

// KeySizeValidation validates the key size based on the algorithm type (RSA or EC).
// RSA sizes are modulus bits, EC sizes are the curve's field size in bits.
func KeySizeValidation(fl validator.FieldLevel) bool {
	algorithm := fl.Parent().FieldByName("Algorithm").String()
	keySize := fl.Field().Uint()

	return crypto.KeyAlgorithm(algorithm).SupportsKeySize(int(keySize))
}
