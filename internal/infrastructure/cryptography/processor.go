package cryptography

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/venuvedam/openenclave/internal/domain/crypto"
	"github.com/venuvedam/openenclave/internal/pkg/logger"
)

// algorithmProcessor binds a KeyManager to one key family and adds PEM file
// persistence. RSAProcessor and ECProcessor embed it.
type algorithmProcessor struct {
	manager   *KeyManager
	algorithm crypto.KeyAlgorithm
	logger    logger.Logger
}

func newAlgorithmProcessor(manager *KeyManager, algorithm crypto.KeyAlgorithm, logger logger.Logger) (algorithmProcessor, error) {
	if manager == nil {
		return algorithmProcessor{}, fmt.Errorf("key manager cannot be nil")
	}
	if logger == nil {
		return algorithmProcessor{}, fmt.Errorf("logger cannot be nil")
	}
	return algorithmProcessor{manager: manager, algorithm: algorithm, logger: logger}, nil
}

// Algorithm returns the key family the processor is bound to.
func (p *algorithmProcessor) Algorithm() crypto.KeyAlgorithm {
	return p.algorithm
}

// ReadPrivateKeyPEM imports a zero-terminated PEM private key of the bound family.
func (p *algorithmProcessor) ReadPrivateKeyPEM(pemData []byte) (*PrivateKey, error) {
	return p.manager.ReadPrivateKeyPEM(pemData, p.algorithm)
}

// ReadPublicKeyPEM imports a zero-terminated PEM public key of the bound family.
func (p *algorithmProcessor) ReadPublicKeyPEM(pemData []byte) (*PublicKey, error) {
	return p.manager.ReadPublicKeyPEM(pemData, p.algorithm)
}

// PublicKeyFromPrivate derives the public key of a private key of the bound family.
func (p *algorithmProcessor) PublicKeyFromPrivate(privateKey *PrivateKey) (*PublicKey, error) {
	if privateKey.Valid() && privateKey.Algorithm() != p.algorithm {
		return nil, crypto.InvalidParameter("PublicKeyFromPrivate", "%s key passed to %s processor", privateKey.Algorithm(), p.algorithm)
	}
	return p.manager.PublicKeyFromPrivate(privateKey)
}

func (p *algorithmProcessor) generateKeys(keySize int) (*PrivateKey, *PublicKey, error) {
	return p.manager.GenerateKeyPair(p.algorithm, keySize)
}

// SavePrivateKeyToFile writes the private key as PEM text to filename.
func (p *algorithmProcessor) SavePrivateKeyToFile(privateKey *PrivateKey, filename string) error {
	container, err := p.manager.PrivateKeyPEM(privateKey)
	if err != nil {
		return err
	}
	defer clear(container)

	if err := writePEMFile(filename, container, 0600); err != nil {
		return fmt.Errorf("failed to save private key: %w", err)
	}

	p.logger.Info("Saved ", p.algorithm, " private key ", filename)
	return nil
}

// SavePublicKeyToFile writes the public key as PEM text to filename.
func (p *algorithmProcessor) SavePublicKeyToFile(publicKey *PublicKey, filename string) error {
	container, err := p.manager.PublicKeyPEM(publicKey)
	if err != nil {
		return err
	}

	if err := writePEMFile(filename, container, 0644); err != nil {
		return fmt.Errorf("failed to save public key: %w", err)
	}

	p.logger.Info("Saved ", p.algorithm, " public key ", filename)
	return nil
}

// ReadPrivateKey imports a private key of the bound family from a PEM file.
func (p *algorithmProcessor) ReadPrivateKey(privateKeyPath string) (*PrivateKey, error) {
	container, err := readPEMFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read private key file: %w", err)
	}
	defer clear(container)

	return p.ReadPrivateKeyPEM(container)
}

// ReadPublicKey imports a public key of the bound family from a PEM file.
func (p *algorithmProcessor) ReadPublicKey(publicKeyPath string) (*PublicKey, error) {
	container, err := readPEMFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read public key file: %w", err)
	}

	return p.ReadPublicKeyPEM(container)
}

// writePEMFile stores a container without its terminator.
func writePEMFile(filename string, container []byte, perm os.FileMode) error {
	text := bytes.TrimSuffix(container, []byte{0})
	return os.WriteFile(filepath.Clean(filename), text, perm)
}

// readPEMFile loads PEM text and appends the terminator the codec expects.
// Embedded zero bytes are left in place for the codec to reject.
func readPEMFile(path string) ([]byte, error) {
	text, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	return append(text, 0), nil
}
