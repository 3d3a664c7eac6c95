package counter

import (
	"math"

	"github.com/code-payments/code-program-framework/pkg/frame"
	"github.com/code-payments/code-program-framework/pkg/frame/pod"
	"github.com/code-payments/code-program-framework/pkg/solana"
	"github.com/code-payments/code-program-framework/pkg/solana/binary"
)

const IncrementInstructionArgsSize = 8 // amount

// IncrementInstructionArgs is the fixed-layout increment payload, viewed in
// place from the instruction data.
type IncrementInstructionArgs struct {
	Amount pod.U64
}

type IncrementInstructionAccounts struct {
	Authority solana.PublicKey
	Counter   solana.PublicKey
}

func NewIncrementInstruction(
	accounts *IncrementInstructionAccounts,
	amount uint64,
) solana.Instruction {
	var offset int

	data := make([]byte, 1+IncrementInstructionArgsSize)
	binary.PutUint8(data, CounterInstructionIncrement, &offset)
	binary.PutUint64(data, amount, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewReadonlyAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.Counter, false),
	)
}

// counterAccessRoles declares the authority-gated access pattern shared by
// increment and set_label.
func counterAccessRoles() []frame.Role {
	return []frame.Role{
		{
			Name:   RoleAuthority,
			Signer: true,
		},
		{
			Name:           RoleCounter,
			Writable:       true,
			OwnedByProgram: true,
			Seeds:          counterSeeds(),
			Discriminant:   CounterAccountDiscriminator,
		},
	}
}

func handleIncrement(ctx *frame.Context, accounts *frame.AccountSet, data []byte) error {
	args, err := pod.View[IncrementInstructionArgs](data)
	if err != nil {
		return err
	}

	state, err := counterState(accounts.Account(RoleCounter))
	if err != nil {
		return err
	}

	if !state.Authority.Equals(accounts.Account(RoleAuthority).Key) {
		return ErrInvalidAuthority
	}

	amount := args.Amount.Get()
	count := state.Count.Get()
	if count > math.MaxUint64-amount {
		return ErrCounterOverflow
	}
	state.Count.Set(count + amount)

	return nil
}
