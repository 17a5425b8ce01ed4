package crypto

import (
	"fmt"
	"strings"
)

// KeyAlgorithm names the family of an asymmetric key.
type KeyAlgorithm string

// AlgorithmRSA represents the RSA signature algorithm
const AlgorithmRSA KeyAlgorithm = "RSA"

// AlgorithmEC represents the elliptic curve (ECDSA) signature algorithm
const AlgorithmEC KeyAlgorithm = "EC"

// String returns the algorithm name.
func (a KeyAlgorithm) String() string {
	return string(a)
}

// SupportsKeySize reports whether bits is a key size this layer generates
// keys of. RSA sizes are modulus bits, EC sizes are NIST curve sizes.
func (a KeyAlgorithm) SupportsKeySize(bits int) bool {
	switch a {
	case AlgorithmRSA:
		return bits == 2048 || bits == 3072 || bits == 4096
	case AlgorithmEC:
		return bits == 224 || bits == 256 || bits == 384 || bits == 521
	default:
		return false
	}
}

// ParseKeyAlgorithm maps a case-insensitive name to a KeyAlgorithm.
func ParseKeyAlgorithm(name string) (KeyAlgorithm, error) {
	switch strings.ToUpper(name) {
	case "RSA":
		return AlgorithmRSA, nil
	case "EC", "ECDSA":
		return AlgorithmEC, nil
	default:
		return "", fmt.Errorf("unsupported key algorithm %q", name)
	}
}

// HashType identifies a hash function. Its value is the digest size in bytes.
type HashType int

// Supported hash types
const (
	HashSHA256 HashType = 32
	HashSHA384 HashType = 48
	HashSHA512 HashType = 64
)

// Size returns the digest length in bytes.
func (h HashType) Size() int {
	return int(h)
}

// Valid reports whether h is one of the supported hash types.
func (h HashType) Valid() bool {
	switch h {
	case HashSHA256, HashSHA384, HashSHA512:
		return true
	default:
		return false
	}
}

func (h HashType) String() string {
	switch h {
	case HashSHA256:
		return "sha256"
	case HashSHA384:
		return "sha384"
	case HashSHA512:
		return "sha512"
	default:
		return fmt.Sprintf("HashType(%d)", int(h))
	}
}

// ParseHashType maps a name such as "sha256" or "SHA-256" to a HashType.
func ParseHashType(name string) (HashType, error) {
	switch strings.ReplaceAll(strings.ToLower(name), "-", "") {
	case "sha256":
		return HashSHA256, nil
	case "sha384":
		return HashSHA384, nil
	case "sha512":
		return HashSHA512, nil
	default:
		return 0, fmt.Errorf("unsupported hash algorithm %q", name)
	}
}

// AESCMACKeySize is the only AES-CMAC key size supported (AES-128), in bytes
const AESCMACKeySize = 16

// AESCMACSize is the length of an AES-CMAC tag in bytes
const AESCMACSize = 16
