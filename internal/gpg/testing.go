package gpg

import (
	"fmt"

	"github.com/ProtonMail/gopenpgp/v2/crypto"
)

// TestSigner signs data with a freshly generated key. It lets tests produce
// valid checksum signatures without shipping private key material.
type TestSigner struct {
	PublicKey   string
	Fingerprint string
	keyRing     *crypto.KeyRing
}

// NewTestSigner generates an x25519 signing key.
func NewTestSigner(name, email string) (*TestSigner, error) {
	key, err := crypto.GenerateKey(name, email, "x25519", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	public, err := key.GetArmoredPublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to armor public key: %w", err)
	}

	keyRing, err := crypto.NewKeyRing(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create signing keyring: %w", err)
	}

	return &TestSigner{
		PublicKey:   public,
		Fingerprint: key.GetFingerprint(),
		keyRing:     keyRing,
	}, nil
}

// Sign returns an armored detached signature over data.
func (s *TestSigner) Sign(data []byte) ([]byte, error) {
	sig, err := s.keyRing.SignDetached(crypto.NewPlainMessage(data))
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	armored, err := sig.GetArmored()
	if err != nil {
		return nil, fmt.Errorf("failed to armor signature: %w", err)
	}
	return []byte(armored), nil
}
