package solana

import (
	"bytes"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// PublicKeySize is the length, in bytes, of an ed25519 public key.
const PublicKeySize = 32

// PublicKey is an ed25519 public key, or a program derived address that
// deliberately does not lie on the ed25519 curve.
type PublicKey [PublicKeySize]byte

var zeroKey PublicKey

// PublicKeyFromBase58 parses a base58 encoded public key.
func PublicKeyFromBase58(value string) (PublicKey, error) {
	var pub PublicKey

	decoded, err := base58.Decode(value)
	if err != nil {
		return pub, errors.Wrap(err, "failed to decode base58 value")
	}
	if len(decoded) != PublicKeySize {
		return pub, errors.Errorf("invalid public key size: %d", len(decoded))
	}

	copy(pub[:], decoded)
	return pub, nil
}

// MustPublicKeyFromBase58 parses a base58 encoded public key, panicking on
// malformed input. Reserved for well-known hardcoded addresses.
func MustPublicKeyFromBase58(value string) PublicKey {
	pub, err := PublicKeyFromBase58(value)
	if err != nil {
		panic(err)
	}
	return pub
}

// PublicKeyFromBytes copies the provided bytes into a PublicKey.
func PublicKeyFromBytes(value []byte) (PublicKey, error) {
	var pub PublicKey
	if len(value) != PublicKeySize {
		return pub, errors.Errorf("invalid public key size: %d", len(value))
	}

	copy(pub[:], value)
	return pub, nil
}

func (p PublicKey) String() string {
	return base58.Encode(p[:])
}

func (p PublicKey) Bytes() []byte {
	return p[:]
}

func (p PublicKey) Equals(other PublicKey) bool {
	return bytes.Equal(p[:], other[:])
}

func (p PublicKey) IsZero() bool {
	return p == zeroKey
}
