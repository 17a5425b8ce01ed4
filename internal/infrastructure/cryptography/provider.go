package cryptography

import (
	stdcrypto "crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/venuvedam/openenclave/internal/domain/crypto"
	"github.com/venuvedam/openenclave/internal/pkg/logger"
)

// SignatureHash is the digest algorithm bound into every signature the
// provider produces or checks, whatever hash type the caller declared.
const SignatureHash = stdcrypto.SHA256

// PEM block types
const (
	pemTypePrivateKey    = "PRIVATE KEY"
	pemTypeRSAPrivateKey = "RSA PRIVATE KEY"
	pemTypeECPrivateKey  = "EC PRIVATE KEY"
	pemTypePublicKey     = "PUBLIC KEY"
)

var errReleased = errors.New("key material already released")

// keyMaterial is the provider-owned resource behind a handle. private is nil
// for public-only material.
type keyMaterial struct {
	mu        sync.Mutex
	algorithm crypto.KeyAlgorithm
	private   stdcrypto.Signer
	public    stdcrypto.PublicKey
	released  bool
}

func (m *keyMaterial) Algorithm() crypto.KeyAlgorithm {
	return m.algorithm
}

func (m *keyMaterial) Private() bool {
	return m.private != nil
}

// stdProvider implements crypto.Provider on the Go standard library.
type stdProvider struct {
	logger logger.Logger

	once            sync.Once
	initializations atomic.Int32
	random          io.Reader
}

// NewProvider creates and returns a standard library backed crypto provider
func NewProvider(logger logger.Logger) (crypto.Provider, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	return &stdProvider{logger: logger}, nil
}

// Initialize selects the entropy source. The body runs at most once.
func (p *stdProvider) Initialize() {
	p.once.Do(func() {
		p.random = rand.Reader
		p.initializations.Add(1)
		p.logger.Debug("Initialized crypto provider")
	})
}

func (p *stdProvider) entropy() io.Reader {
	p.Initialize()
	return p.random
}

func (p *stdProvider) DecodePrivateKey(pemData []byte) (crypto.KeyMaterial, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("failed to parse PEM block containing the private key")
	}
	if _, encrypted := block.Headers["Proc-Type"]; encrypted {
		return nil, fmt.Errorf("encrypted PEM private keys are not supported")
	}

	var (
		key any
		err error
	)
	switch block.Type {
	case pemTypePrivateKey:
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case pemTypeRSAPrivateKey:
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case pemTypeECPrivateKey:
		key, err = x509.ParseECPrivateKey(block.Bytes)
	default:
		return nil, fmt.Errorf("unexpected PEM block type %q", block.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key: %w", err)
	}

	switch k := key.(type) {
	case *rsa.PrivateKey:
		return &keyMaterial{algorithm: crypto.AlgorithmRSA, private: k, public: &k.PublicKey}, nil
	case *ecdsa.PrivateKey:
		return &keyMaterial{algorithm: crypto.AlgorithmEC, private: k, public: &k.PublicKey}, nil
	default:
		return nil, fmt.Errorf("private key of type %T is not supported", key)
	}
}

func (p *stdProvider) DecodePublicKey(pemData []byte) (crypto.KeyMaterial, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("failed to parse PEM block containing the public key")
	}
	if block.Type != pemTypePublicKey {
		return nil, fmt.Errorf("unexpected PEM block type %q", block.Type)
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("unable to parse public key: %w", err)
	}

	switch k := key.(type) {
	case *rsa.PublicKey:
		return &keyMaterial{algorithm: crypto.AlgorithmRSA, public: k}, nil
	case *ecdsa.PublicKey:
		return &keyMaterial{algorithm: crypto.AlgorithmEC, public: k}, nil
	default:
		return nil, fmt.Errorf("public key of type %T is not supported", key)
	}
}

// EncodePrivateKey writes RSA keys as PKCS#1 and EC keys as SEC 1.
func (p *stdProvider) EncodePrivateKey(material crypto.KeyMaterial) ([]byte, error) {
	m, err := p.live(material)
	if err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	var block *pem.Block
	switch k := m.private.(type) {
	case *rsa.PrivateKey:
		block = &pem.Block{Type: pemTypeRSAPrivateKey, Bytes: x509.MarshalPKCS1PrivateKey(k)}
	case *ecdsa.PrivateKey:
		der, err := x509.MarshalECPrivateKey(k)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal EC private key: %w", err)
		}
		block = &pem.Block{Type: pemTypeECPrivateKey, Bytes: der}
	case nil:
		return nil, fmt.Errorf("key material has no private part")
	default:
		return nil, fmt.Errorf("private key of type %T is not supported", k)
	}

	return pem.EncodeToMemory(block), nil
}

func (p *stdProvider) EncodePublicKey(material crypto.KeyMaterial) ([]byte, error) {
	m, err := p.live(material)
	if err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	der, err := x509.MarshalPKIXPublicKey(m.public)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePublicKey, Bytes: der}), nil
}

// SignatureSize is the modulus size for RSA and the largest ASN.1 encoding of
// (r, s) for the key's curve.
func (p *stdProvider) SignatureSize(material crypto.KeyMaterial) (int, error) {
	m, err := p.live(material)
	if err != nil {
		return 0, err
	}
	defer m.mu.Unlock()

	switch k := m.public.(type) {
	case *rsa.PublicKey:
		return k.Size(), nil
	case *ecdsa.PublicKey:
		return maxECDSASignatureSize(k.Curve), nil
	default:
		return 0, fmt.Errorf("public key of type %T is not supported", k)
	}
}

// Sign signs digest under SignatureHash. RSA keys require a digest of exactly
// SignatureHash.Size() bytes; EC keys accept any length.
func (p *stdProvider) Sign(material crypto.KeyMaterial, digest []byte) ([]byte, error) {
	random := p.entropy()

	m, err := p.live(material)
	if err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	switch k := m.private.(type) {
	case *rsa.PrivateKey:
		signature, err := rsa.SignPKCS1v15(random, k, SignatureHash, digest)
		if err != nil {
			return nil, fmt.Errorf("failed to sign digest: %w", err)
		}
		return signature, nil
	case *ecdsa.PrivateKey:
		signature, err := ecdsa.SignASN1(random, k, digest)
		if err != nil {
			return nil, fmt.Errorf("failed to sign digest: %w", err)
		}
		return signature, nil
	case nil:
		return nil, fmt.Errorf("key material has no private part")
	default:
		return nil, fmt.Errorf("private key of type %T is not supported", k)
	}
}

func (p *stdProvider) Verify(material crypto.KeyMaterial, digest, signature []byte) error {
	m, err := p.live(material)
	if err != nil {
		return err
	}
	defer m.mu.Unlock()

	switch k := m.public.(type) {
	case *rsa.PublicKey:
		if err := rsa.VerifyPKCS1v15(k, SignatureHash, digest, signature); err != nil {
			return fmt.Errorf("failed to verify signature: %w", err)
		}
		return nil
	case *ecdsa.PublicKey:
		if !ecdsa.VerifyASN1(k, digest, signature) {
			return fmt.Errorf("failed to verify signature")
		}
		return nil
	default:
		return fmt.Errorf("public key of type %T is not supported", k)
	}
}

// Release zeroes private scalars and drops all references. A second release
// of the same material fails.
func (p *stdProvider) Release(material crypto.KeyMaterial) error {
	m, err := p.live(material)
	if err != nil {
		return err
	}
	defer m.mu.Unlock()

	switch k := m.private.(type) {
	case *rsa.PrivateKey:
		k.D.SetInt64(0)
		for _, prime := range k.Primes {
			prime.SetInt64(0)
		}
		k.Precomputed = rsa.PrecomputedValues{}
	case *ecdsa.PrivateKey:
		k.D.SetInt64(0)
	}

	m.private = nil
	m.public = nil
	m.released = true
	return nil
}

func (p *stdProvider) GenerateKey(algorithm crypto.KeyAlgorithm, keySize int) (crypto.KeyMaterial, error) {
	if !algorithm.SupportsKeySize(keySize) {
		return nil, fmt.Errorf("key size %d not supported for %s", keySize, algorithm)
	}
	random := p.entropy()

	switch algorithm {
	case crypto.AlgorithmRSA:
		k, err := rsa.GenerateKey(random, keySize)
		if err != nil {
			return nil, fmt.Errorf("failed to generate RSA keys: %w", err)
		}
		p.logger.Debug("Generated RSA key pair of ", keySize, " bits")
		return &keyMaterial{algorithm: algorithm, private: k, public: &k.PublicKey}, nil
	case crypto.AlgorithmEC:
		k, err := ecdsa.GenerateKey(curveForSize(keySize), random)
		if err != nil {
			return nil, fmt.Errorf("failed to generate elliptic curve keys: %w", err)
		}
		p.logger.Debug("Generated EC key pair on P-", keySize)
		return &keyMaterial{algorithm: algorithm, private: k, public: &k.PublicKey}, nil
	default:
		return nil, fmt.Errorf("unsupported key algorithm %q", algorithm)
	}
}

// live locks and returns the provider's own material; the caller unlocks.
func (p *stdProvider) live(material crypto.KeyMaterial) (*keyMaterial, error) {
	m, ok := material.(*keyMaterial)
	if !ok || m == nil {
		return nil, fmt.Errorf("key material of type %T was not created by this provider", material)
	}
	m.mu.Lock()
	if m.released {
		m.mu.Unlock()
		return nil, errReleased
	}
	return m, nil
}

func curveForSize(bits int) elliptic.Curve {
	switch bits {
	case 224:
		return elliptic.P224()
	case 384:
		return elliptic.P384()
	case 521:
		return elliptic.P521()
	default:
		return elliptic.P256()
	}
}

// maxECDSASignatureSize is the length of SEQUENCE { INTEGER r, INTEGER s }
// when both integers take the full order length. A sign byte is only needed
// when the order fills its last byte.
func maxECDSASignatureSize(curve elliptic.Curve) int {
	bits := curve.Params().N.BitLen()
	content := (bits + 7) / 8
	if bits%8 == 0 {
		content++
	}
	return derLength(2 * derLength(content))
}

// derLength returns the encoded size of a DER element with n content bytes.
func derLength(n int) int {
	if n < 0x80 {
		return 2 + n
	}
	header := 2
	for l := n; l > 0; l >>= 8 {
		header++
	}
	return header + n
}
