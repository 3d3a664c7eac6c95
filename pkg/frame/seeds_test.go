package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-program-framework/pkg/solana"
)

func TestSeedSpec_Deterministic(t *testing.T) {
	programID := newKey(t)
	spec := &SeedSpec{
		Seeds: []Seed{
			StringSeed("vault"),
			Uint64Seed(42),
			KeySeed(newKey(t)),
			BytesSeed{0xde, 0xad},
		},
	}

	a, bumpA, err := spec.Derive(programID, nil)
	require.NoError(t, err)
	b, bumpB, err := spec.Derive(programID, nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, bumpA, bumpB)
}

func TestSeedSpec_PinnedBump(t *testing.T) {
	programID := newKey(t)
	spec := &SeedSpec{Seeds: []Seed{StringSeed("state")}}

	address, bump, err := spec.Derive(programID, nil)
	require.NoError(t, err)

	// Re-deriving with the found bump pinned reproduces the same address:
	// the derive-and-compare flow agrees with derive-and-create.
	pinned := &SeedSpec{Seeds: []Seed{StringSeed("state")}, Bump: &bump}
	rederived, pinnedBump, err := pinned.Derive(programID, nil)
	require.NoError(t, err)

	assert.Equal(t, address, rederived)
	assert.Equal(t, bump, pinnedBump)
	assert.True(t, solana.VerifyProgramAddress(address, programID, bump, []byte("state")))
}

func TestSeedSpec_PinnedBump_OnCurve(t *testing.T) {
	programID := newKey(t)
	spec := &SeedSpec{Seeds: []Seed{StringSeed("state")}}

	_, canonical, err := spec.Derive(programID, nil)
	require.NoError(t, err)

	// Some bump above the canonical one produced an on-curve point; pinning
	// it must fail rather than hand back a forgeable address.
	sawFailure := false
	for bump := uint8(255); bump > canonical; bump-- {
		b := bump
		pinned := &SeedSpec{Seeds: []Seed{StringSeed("state")}, Bump: &b}
		if _, _, err := pinned.Derive(programID, nil); err != nil {
			sawFailure = true
		}
	}
	if canonical < 255 {
		assert.True(t, sawFailure)
	}
}

func TestUint64Seed_LittleEndian(t *testing.T) {
	raw, err := Uint64Seed(0x0102030405060708).SeedBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, raw)
}

func TestRoleKeySeed_OutsideComposition(t *testing.T) {
	_, err := RoleKeySeed("authority").SeedBytes(nil)
	assert.Error(t, err)

	set := &AccountSet{
		roles:    []Role{{Name: "other"}},
		accounts: []*Account{{Key: newKey(t)}},
		nested:   make([]*AccountSet, 1),
	}
	_, err = RoleKeySeed("authority").SeedBytes(set)
	assert.Error(t, err)
}

func TestRoleKeySeed_Resolves(t *testing.T) {
	authority := &Account{Key: newKey(t)}
	set := &AccountSet{
		roles:    []Role{{Name: "authority"}},
		accounts: []*Account{authority},
		nested:   make([]*AccountSet, 1),
	}

	raw, err := RoleKeySeed("authority").SeedBytes(set)
	require.NoError(t, err)
	assert.Equal(t, authority.Key[:], raw)
}
