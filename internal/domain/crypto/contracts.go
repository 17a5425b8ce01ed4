package crypto

// KeyMaterial is a provider-owned key resource. Handles hold exactly one and
// hand it back to the provider's Release when freed.
type KeyMaterial interface {
	// Algorithm returns the family of the key.
	Algorithm() KeyAlgorithm
	// Private reports whether the material carries a private key.
	Private() bool
}

// Provider is the platform cryptographic provider the trust layer delegates
// primitives to. Implementations must be safe for concurrent use; a given
// KeyMaterial is only mutated by Release.
type Provider interface {
	// Initialize performs one-time library setup. It is called by every
	// entry point and must be idempotent and race-safe.
	Initialize()

	// DecodePrivateKey parses a PEM private key container (without the
	// trailing terminator) into key material.
	DecodePrivateKey(pemData []byte) (KeyMaterial, error)

	// DecodePublicKey parses a PEM public key container (without the
	// trailing terminator) into key material.
	DecodePublicKey(pemData []byte) (KeyMaterial, error)

	// EncodePrivateKey renders private material as a PEM container.
	EncodePrivateKey(material KeyMaterial) ([]byte, error)

	// EncodePublicKey renders the public half of material (public or private)
	// as a PEM container.
	EncodePublicKey(material KeyMaterial) ([]byte, error)

	// SignatureSize returns the buffer size needed to hold any signature
	// produced by Sign with this material.
	SignatureSize(material KeyMaterial) (int, error)

	// Sign signs digest with private material. The digest algorithm bound
	// into the signature is fixed by the provider.
	Sign(material KeyMaterial, digest []byte) ([]byte, error)

	// Verify checks signature over digest with public material.
	Verify(material KeyMaterial, digest, signature []byte) error

	// Release securely disposes of material. Material must not be used
	// after Release.
	Release(material KeyMaterial) error

	// GenerateKey creates fresh private material of the given family and size.
	GenerateKey(algorithm KeyAlgorithm, keySize int) (KeyMaterial, error)
}
