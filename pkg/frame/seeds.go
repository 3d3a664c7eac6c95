package frame

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/code-payments/code-program-framework/pkg/solana"
)

// Seed is one typed component of a derived address. Components resolve to
// their wire bytes against the account set being composed, so a seed can
// reference the key of an earlier bound role.
type Seed interface {
	// SeedBytes resolves the component against the set under composition.
	// set may be nil when the component is self-contained.
	SeedBytes(set *AccountSet) ([]byte, error)

	seedMetadata() SeedMetadata
}

// BytesSeed is a constant byte string component.
type BytesSeed []byte

func (s BytesSeed) SeedBytes(*AccountSet) ([]byte, error) {
	return s, nil
}

// StringSeed is a constant UTF-8 string component.
type StringSeed string

func (s StringSeed) SeedBytes(*AccountSet) ([]byte, error) {
	return []byte(s), nil
}

// Uint64Seed is a little-endian u64 component.
type Uint64Seed uint64

func (s Uint64Seed) SeedBytes(*AccountSet) ([]byte, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(s))
	return buf[:], nil
}

// KeySeed is a constant public key component.
type KeySeed solana.PublicKey

func (s KeySeed) SeedBytes(*AccountSet) ([]byte, error) {
	return s[:], nil
}

// RoleKeySeed resolves to the key of the named role within the same account
// set. The referenced role must be declared before the seeded role, since
// binding is positional.
type RoleKeySeed string

func (s RoleKeySeed) SeedBytes(set *AccountSet) ([]byte, error) {
	if set == nil {
		return nil, errors.Errorf("seed references role %q outside of composition", string(s))
	}

	account := set.Account(string(s))
	if account == nil {
		return nil, errors.Errorf("seed references unbound role %q", string(s))
	}
	return account.Key[:], nil
}

// SeedSpec declares how a role's address is derived from the current program
// id. With a nil Bump the canonical bump is searched for (derive-and-create);
// with a pinned Bump the address is re-derived exactly (derive-and-compare,
// e.g. against a bump persisted in account state).
type SeedSpec struct {
	Seeds []Seed
	Bump  *uint8
}

// Derive computes the address and bump for the seed set against a program id.
// Both flows are deterministic pure functions of (program, seeds, bump).
func (s *SeedSpec) Derive(program solana.PublicKey, set *AccountSet) (solana.PublicKey, uint8, error) {
	raw := make([][]byte, 0, len(s.Seeds))
	for _, seed := range s.Seeds {
		b, err := seed.SeedBytes(set)
		if err != nil {
			return solana.PublicKey{}, 0, err
		}
		raw = append(raw, b)
	}

	if s.Bump != nil {
		address, err := solana.CreateProgramAddress(program, append(raw, []byte{*s.Bump})...)
		if err != nil {
			return solana.PublicKey{}, 0, errors.Wrap(err, "failed to derive address with pinned bump")
		}
		return address, *s.Bump, nil
	}

	address, bump, err := solana.FindProgramAddress(program, raw...)
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	return address, bump, nil
}

// signerSeeds returns the fully resolved seed list including the bump, in the
// form the host expects when the derived address must sign its own creation.
func (s *SeedSpec) signerSeeds(set *AccountSet, bump uint8) ([][]byte, error) {
	raw := make([][]byte, 0, len(s.Seeds)+1)
	for _, seed := range s.Seeds {
		b, err := seed.SeedBytes(set)
		if err != nil {
			return nil, err
		}
		raw = append(raw, b)
	}
	return append(raw, []byte{bump}), nil
}
