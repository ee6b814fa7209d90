// Package gpg verifies detached OpenPGP signatures over release checksum files.
package gpg

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/gopenpgp/v2/crypto"
)

const (
	maxKeyFileSize = 1024 * 1024      // 1MB is far larger than any armored public key
	maxSignedSize  = 64 * 1024 * 1024 // checksum manifests are small
	keyFileMode    = 0600             // Required file permissions for key files on Unix systems
)

// Errors returned while loading keys.
var (
	ErrNoKeys        = errors.New("no keys in keyring")
	ErrKeyCannotSign = errors.New("key cannot verify signatures")
	ErrKeyExpired    = errors.New("key is expired")
)

// KeyRing represents a collection of PGP keys for signature verification
type KeyRing interface {
	VerifyDetached(message []byte, signature []byte) error
	Fingerprints() []string
}

// PublicKeyRing implements KeyRing using gopenpgp v2.
type PublicKeyRing struct {
	keyRing      *crypto.KeyRing
	fingerprints []string
}

// NewPublicKeyRing creates an empty keyring.
func NewPublicKeyRing() *PublicKeyRing {
	return &PublicKeyRing{}
}

// AddArmoredKey parses an ASCII-armored key and adds its public part.
func (k *PublicKeyRing) AddArmoredKey(armored string) error {
	if armored == "" {
		return fmt.Errorf("armored data cannot be empty")
	}

	key, err := crypto.NewKeyFromArmored(armored)
	if err != nil {
		return fmt.Errorf("failed to parse PGP key: %w", err)
	}
	if key.IsPrivate() {
		if key, err = key.ToPublic(); err != nil {
			return fmt.Errorf("failed to extract public key: %w", err)
		}
	}
	if err := validateKey(key); err != nil {
		return fmt.Errorf("invalid key %s: %w", key.GetFingerprint(), err)
	}

	if k.keyRing == nil {
		if k.keyRing, err = crypto.NewKeyRing(key); err != nil {
			return fmt.Errorf("failed to create keyring: %w", err)
		}
	} else if err := k.keyRing.AddKey(key); err != nil {
		return fmt.Errorf("failed to add key to keyring: %w", err)
	}

	k.fingerprints = append(k.fingerprints, key.GetFingerprint())
	return nil
}

// VerifyDetached checks an armored or binary detached signature over message.
func (k *PublicKeyRing) VerifyDetached(message []byte, signature []byte) error {
	if k.keyRing == nil {
		return ErrNoKeys
	}
	if len(signature) == 0 {
		return fmt.Errorf("signature cannot be empty")
	}

	pgpSignature, err := crypto.NewPGPSignatureFromArmored(string(signature))
	if err != nil {
		// Try binary format if armored fails
		pgpSignature = crypto.NewPGPSignature(signature)
	}

	err = k.keyRing.VerifyDetached(crypto.NewPlainMessage(message), pgpSignature, crypto.GetUnixTime())
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

// Fingerprints lists the fingerprints of the loaded keys.
func (k *PublicKeyRing) Fingerprints() []string {
	return append([]string(nil), k.fingerprints...)
}

// LoadKeyRingFromStrings loads PGP public keys from a slice of ASCII-armored key strings.
func LoadKeyRingFromStrings(armoredKeys []string) (KeyRing, error) {
	if len(armoredKeys) == 0 {
		return nil, fmt.Errorf("no armored keys provided")
	}

	keyRing := NewPublicKeyRing()
	for i, armoredKey := range armoredKeys {
		if err := keyRing.AddArmoredKey(armoredKey); err != nil {
			return nil, fmt.Errorf("key at index %d: %w", i, err)
		}
	}
	return keyRing, nil
}

// LoadKeyRingFromReader loads a single armored key, such as a downloaded
// release signing key.
func LoadKeyRingFromReader(r io.Reader) (KeyRing, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxKeyFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	if len(data) > maxKeyFileSize {
		return nil, fmt.Errorf("key exceeds maximum allowed size of %d bytes", maxKeyFileSize)
	}
	return LoadKeyRingFromStrings([]string{string(data)})
}

// LoadKeyRingFromFile loads the armored key stored at path.
func LoadKeyRingFromFile(path string) (KeyRing, error) {
	if err := validateKeyFile(path); err != nil {
		return nil, fmt.Errorf("invalid key file '%s': %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return LoadKeyRingFromStrings([]string{string(data)})
}

// VerifyDetachedSignature verifies a detached signature (.sig file) against the given data file
// using the provided KeyRing.
func VerifyDetachedSignature(keyRing KeyRing, dataFilePath string, sigFilePath string) error {
	if keyRing == nil {
		return fmt.Errorf("keyring cannot be nil")
	}

	data, err := readLimited(dataFilePath)
	if err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}
	sig, err := readLimited(sigFilePath)
	if err != nil {
		return fmt.Errorf("failed to read signature file: %w", err)
	}

	return keyRing.VerifyDetached(data, sig)
}

func readLimited(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSignedSize {
		return nil, fmt.Errorf("file exceeds maximum allowed size of %d bytes", maxSignedSize)
	}
	return os.ReadFile(path)
}

// validateKeyFile checks if a key file has appropriate permissions and size
func validateKeyFile(filePath string) error {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to access key file: %w", err)
	}

	if fileInfo.Size() > maxKeyFileSize {
		return fmt.Errorf("key file exceeds maximum allowed size of %d bytes", maxKeyFileSize)
	}

	// Check file permissions (allow both 0600 and 0644 for compatibility)
	perm := fileInfo.Mode().Perm()
	if perm != keyFileMode && perm != 0644 {
		return fmt.Errorf("key file has incorrect permissions. Expected %o or 0644, got %o", keyFileMode, perm)
	}

	return nil
}

// validateKey rejects keys that can no longer verify signatures.
func validateKey(key *crypto.Key) error {
	if key == nil {
		return fmt.Errorf("key is nil")
	}
	if key.IsExpired() {
		return ErrKeyExpired
	}
	if !key.CanVerify() {
		return ErrKeyCannotSign
	}
	return nil
}
