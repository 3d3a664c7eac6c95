package counter

import (
	"github.com/code-payments/code-program-framework/pkg/frame"
	"github.com/code-payments/code-program-framework/pkg/frame/pod"
	"github.com/code-payments/code-program-framework/pkg/solana"
)

const (
	CounterSeed = "counter"

	MaxLabelLength = 32
)

var CounterAccountDiscriminator = []byte{0x3d, 0x91, 0x5f, 0x07, 0xc2, 0x6a, 0xe8, 0x44}

// CounterAccount is the persisted counter state, laid out immediately after
// the 8-byte discriminator. All fields are pod, so handlers mutate it in
// place through a zero-copy view.
type CounterAccount struct {
	Authority solana.PublicKey
	Count     pod.U64
	Label     [MaxLabelLength]byte
	Bump      uint8
}

var CounterAccountSize = uint64(len(CounterAccountDiscriminator) + pod.SizeOf[CounterAccount]())

// GetCounterAddress derives the counter address for an authority.
func GetCounterAddress(authority solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(PROGRAM_ID, []byte(CounterSeed), authority[:])
}

// counterState returns the in-place state view for a validated counter
// account.
func counterState(account *frame.Account) (*CounterAccount, error) {
	return frame.State[CounterAccount](account, CounterAccountDiscriminator)
}

// counterSeeds is the declarative form of GetCounterAddress, resolved against
// the bound authority role during composition.
func counterSeeds() *frame.SeedSpec {
	return &frame.SeedSpec{
		Seeds: []frame.Seed{
			frame.StringSeed(CounterSeed),
			frame.RoleKeySeed(RoleAuthority),
		},
	}
}
