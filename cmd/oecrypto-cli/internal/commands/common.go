package commands

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/venuvedam/openenclave/internal/domain/crypto"
	"github.com/venuvedam/openenclave/internal/infrastructure/cryptography"
	"github.com/venuvedam/openenclave/internal/pkg/config"
	"github.com/venuvedam/openenclave/internal/pkg/logger"
)

// Environment is the state shared by all command handlers. It is populated
// by the root command's pre-run hook once flags are parsed.
type Environment struct {
	Settings *config.Settings
	Logger   logger.Logger
	Manager  *cryptography.KeyManager
}

// Setup loads settings from configPath (defaults when empty), initializes the
// logger and builds the key manager.
func (env *Environment) Setup(configPath string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loggerInstance, err := setupLogger(&settings.Logger)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	provider, err := cryptography.NewProvider(loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create crypto provider: %w", err)
	}

	manager, err := cryptography.NewKeyManager(provider, loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create key manager: %w", err)
	}

	env.Settings = settings
	env.Logger = loggerInstance
	env.Manager = manager
	return nil
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// keyProcessor is the family-bound key API shared by the RSA and EC processors.
type keyProcessor interface {
	Algorithm() crypto.KeyAlgorithm
	GenerateKeys(keySize int) (*cryptography.PrivateKey, *cryptography.PublicKey, error)
	ReadPrivateKey(path string) (*cryptography.PrivateKey, error)
	ReadPublicKey(path string) (*cryptography.PublicKey, error)
	SavePrivateKeyToFile(key *cryptography.PrivateKey, filename string) error
	SavePublicKeyToFile(key *cryptography.PublicKey, filename string) error
	PublicKeyFromPrivate(key *cryptography.PrivateKey) (*cryptography.PublicKey, error)
}

func (env *Environment) processor(algorithm crypto.KeyAlgorithm) (keyProcessor, error) {
	switch algorithm {
	case crypto.AlgorithmRSA:
		return cryptography.NewRSAProcessor(env.Manager, env.Logger)
	case crypto.AlgorithmEC:
		return cryptography.NewECProcessor(env.Manager, env.Logger)
	default:
		return nil, fmt.Errorf("unsupported key algorithm %q", algorithm)
	}
}

// algorithmFlag reads --algorithm, falling back to the configured default.
func (env *Environment) algorithmFlag(cmd *cobra.Command) (crypto.KeyAlgorithm, error) {
	name, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		return "", fmt.Errorf("invalid algorithm flag: %w", err)
	}
	if name == "" {
		name = env.Settings.Crypto.Algorithm
	}
	return crypto.ParseKeyAlgorithm(name)
}

// hashFlag reads --hash, falling back to the configured default.
func (env *Environment) hashFlag(cmd *cobra.Command) (crypto.HashType, error) {
	name, err := cmd.Flags().GetString("hash")
	if err != nil {
		return 0, fmt.Errorf("invalid hash flag: %w", err)
	}
	if name == "" {
		name = env.Settings.Crypto.HashAlgorithm
	}
	return crypto.ParseHashType(name)
}

func digest(hashType crypto.HashType, data []byte) ([]byte, error) {
	switch hashType {
	case crypto.HashSHA256:
		sum := sha256.Sum256(data)
		return sum[:], nil
	case crypto.HashSHA384:
		sum := sha512.Sum384(data)
		return sum[:], nil
	case crypto.HashSHA512:
		sum := sha512.Sum512(data)
		return sum[:], nil
	default:
		return nil, fmt.Errorf("unsupported hash type %s", hashType)
	}
}

func requiredStringFlag(cmd *cobra.Command, name string) (string, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("invalid %s flag: %w", name, err)
	}
	if value == "" {
		return "", fmt.Errorf("--%s is required", name)
	}
	return value, nil
}
