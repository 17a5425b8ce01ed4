package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/venuvedam/openenclave/internal/domain/crypto"
)

var defaultKeySizes = map[crypto.KeyAlgorithm]int{
	crypto.AlgorithmRSA: 2048,
	crypto.AlgorithmEC:  256,
}

// KeyCommandHandler encapsulates logic for key generation, export, signing
// and verification via CLI.
type KeyCommandHandler struct {
	env *Environment
}

// NewKeyCommandHandler initializes a new KeyCommandHandler
func NewKeyCommandHandler(env *Environment) (*KeyCommandHandler, error) {
	if env == nil {
		return nil, fmt.Errorf("environment cannot be nil")
	}
	return &KeyCommandHandler{env: env}, nil
}

func (h *KeyCommandHandler) keySize(cmd *cobra.Command, algorithm crypto.KeyAlgorithm) (int, error) {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		return 0, fmt.Errorf("invalid key-size flag: %w", err)
	}
	if keySize != 0 {
		return keySize, nil
	}
	if string(algorithm) == h.env.Settings.Crypto.Algorithm {
		return int(h.env.Settings.Crypto.KeySize), nil
	}
	return defaultKeySizes[algorithm], nil
}

// GenerateKeysCmd generates a key pair and persists it in the selected directory
func (h *KeyCommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) (err error) {
	algorithm, err := h.env.algorithmFlag(cmd)
	if err != nil {
		return err
	}
	keySize, err := h.keySize(cmd, algorithm)
	if err != nil {
		return err
	}
	keyDir, err := requiredStringFlag(cmd, "key-dir")
	if err != nil {
		return err
	}

	processor, err := h.env.processor(algorithm)
	if err != nil {
		return err
	}

	privateKey, publicKey, err := processor.GenerateKeys(keySize)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, h.env.Manager.FreePrivateKey(privateKey), h.env.Manager.FreePublicKey(publicKey))
	}()

	uniqueID := uuid.New()
	privateKeyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-private-key.pem", uniqueID.String()))
	if err := processor.SavePrivateKeyToFile(privateKey, privateKeyFilePath); err != nil {
		return err
	}

	publicKeyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-public-key.pem", uniqueID.String()))
	if err := processor.SavePublicKeyToFile(publicKey, publicKeyFilePath); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), privateKeyFilePath)
	fmt.Fprintln(cmd.OutOrStdout(), publicKeyFilePath)
	return nil
}

// ExportPublicKeyCmd derives the public key of a private key file
func (h *KeyCommandHandler) ExportPublicKeyCmd(cmd *cobra.Command, _ []string) (err error) {
	algorithm, err := h.env.algorithmFlag(cmd)
	if err != nil {
		return err
	}
	privateKeyFilePath, err := requiredStringFlag(cmd, "private-key")
	if err != nil {
		return err
	}
	outputFilePath, err := requiredStringFlag(cmd, "output-file")
	if err != nil {
		return err
	}

	processor, err := h.env.processor(algorithm)
	if err != nil {
		return err
	}

	privateKey, err := processor.ReadPrivateKey(privateKeyFilePath)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, h.env.Manager.FreePrivateKey(privateKey)) }()

	publicKey, err := processor.PublicKeyFromPrivate(privateKey)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, h.env.Manager.FreePublicKey(publicKey)) }()

	return processor.SavePublicKeyToFile(publicKey, outputFilePath)
}

// SignCmd signs the digest of a file's content and writes the hex signature
func (h *KeyCommandHandler) SignCmd(cmd *cobra.Command, _ []string) (err error) {
	algorithm, err := h.env.algorithmFlag(cmd)
	if err != nil {
		return err
	}
	hashType, err := h.env.hashFlag(cmd)
	if err != nil {
		return err
	}
	inputFilePath, err := requiredStringFlag(cmd, "input-file")
	if err != nil {
		return err
	}
	privateKeyFilePath, err := requiredStringFlag(cmd, "private-key")
	if err != nil {
		return err
	}
	signatureFilePath, err := requiredStringFlag(cmd, "output-file")
	if err != nil {
		return err
	}

	fileContent, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		return err
	}
	hash, err := digest(hashType, fileContent)
	if err != nil {
		return err
	}

	processor, err := h.env.processor(algorithm)
	if err != nil {
		return err
	}

	privateKey, err := processor.ReadPrivateKey(privateKeyFilePath)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, h.env.Manager.FreePrivateKey(privateKey)) }()

	signature, err := h.env.Manager.SignatureOf(privateKey, hashType, hash)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Clean(signatureFilePath), []byte(hex.EncodeToString(signature)), 0600); err != nil {
		return fmt.Errorf("failed to write signature: %w", err)
	}

	h.env.Logger.Info("Signed ", inputFilePath)
	return nil
}

// VerifyCmd verifies the hex signature of a file's content
func (h *KeyCommandHandler) VerifyCmd(cmd *cobra.Command, _ []string) (err error) {
	algorithm, err := h.env.algorithmFlag(cmd)
	if err != nil {
		return err
	}
	hashType, err := h.env.hashFlag(cmd)
	if err != nil {
		return err
	}
	inputFilePath, err := requiredStringFlag(cmd, "input-file")
	if err != nil {
		return err
	}
	publicKeyPath, err := requiredStringFlag(cmd, "public-key")
	if err != nil {
		return err
	}
	signatureFile, err := requiredStringFlag(cmd, "signature-file")
	if err != nil {
		return err
	}

	fileContent, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		return err
	}
	hash, err := digest(hashType, fileContent)
	if err != nil {
		return err
	}

	signatureHex, err := os.ReadFile(filepath.Clean(signatureFile))
	if err != nil {
		return err
	}
	signature, err := hex.DecodeString(strings.TrimSpace(string(signatureHex)))
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}

	processor, err := h.env.processor(algorithm)
	if err != nil {
		return err
	}

	publicKey, err := processor.ReadPublicKey(publicKeyPath)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, h.env.Manager.FreePublicKey(publicKey)) }()

	if err := h.env.Manager.Verify(publicKey, hashType, hash, signature); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Signature valid for", inputFilePath)
	return nil
}

// InitKeyCommands registers key-related commands
func InitKeyCommands(rootCmd *cobra.Command, env *Environment) error {
	handler, err := NewKeyCommandHandler(env)
	if err != nil {
		return fmt.Errorf("failed to create key command handler: %w", err)
	}

	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate an RSA or EC key pair",
		RunE:  handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().String("algorithm", "", "Key algorithm: rsa or ec (defaults to the configured algorithm)")
	generateKeysCmd.Flags().Int("key-size", 0, "RSA modulus bits or EC curve bits (defaults to the configured size)")
	generateKeysCmd.Flags().String("key-dir", "", "Directory to store the keys")
	rootCmd.AddCommand(generateKeysCmd)

	var exportPublicKeyCmd = &cobra.Command{
		Use:   "export-public-key",
		Short: "Write the public key of a private key file",
		RunE:  handler.ExportPublicKeyCmd,
	}
	exportPublicKeyCmd.Flags().String("algorithm", "", "Key algorithm: rsa or ec")
	exportPublicKeyCmd.Flags().String("private-key", "", "Path to PEM private key")
	exportPublicKeyCmd.Flags().String("output-file", "", "Path to PEM public key output file")
	rootCmd.AddCommand(exportPublicKeyCmd)

	var signCmd = &cobra.Command{
		Use:   "sign",
		Short: "Sign the digest of a file",
		RunE:  handler.SignCmd,
	}
	signCmd.Flags().String("algorithm", "", "Key algorithm: rsa or ec")
	signCmd.Flags().String("hash", "", "Digest algorithm: sha256, sha384 or sha512")
	signCmd.Flags().String("input-file", "", "Path to file that needs to be signed")
	signCmd.Flags().String("private-key", "", "Path to PEM private key")
	signCmd.Flags().String("output-file", "", "Path to signature output file")
	rootCmd.AddCommand(signCmd)

	var verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Verify the signature of a file",
		RunE:  handler.VerifyCmd,
	}
	verifyCmd.Flags().String("algorithm", "", "Key algorithm: rsa or ec")
	verifyCmd.Flags().String("hash", "", "Digest algorithm: sha256, sha384 or sha512")
	verifyCmd.Flags().String("input-file", "", "Path to file which needs to be validated")
	verifyCmd.Flags().String("public-key", "", "Path to PEM public key")
	verifyCmd.Flags().String("signature-file", "", "Path to signature input file")
	rootCmd.AddCommand(verifyCmd)

	return nil
}
