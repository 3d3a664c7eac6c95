package counter

import (
	"github.com/code-payments/code-program-framework/pkg/frame"
	"github.com/code-payments/code-program-framework/pkg/solana"
)

type InitializeInstructionAccounts struct {
	Payer     solana.PublicKey
	Authority solana.PublicKey
	Counter   solana.PublicKey
}

// NewInitializeInstruction builds the client-side initialize instruction.
// The account order mirrors the role declaration exactly.
func NewInitializeInstruction(accounts *InitializeInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		PROGRAM_ID,
		[]byte{CounterInstructionInitialize},
		solana.NewAccountMeta(accounts.Payer, true),
		solana.NewReadonlyAccountMeta(accounts.Authority, false),
		solana.NewAccountMeta(accounts.Counter, false),
	)
}

func initializeAccountRoles() []frame.Role {
	return []frame.Role{
		{
			Name:     RolePayer,
			Signer:   true,
			Writable: true,
		},
		{
			Name: RoleAuthority,
		},
		{
			Name:         RoleCounter,
			Writable:     true,
			Seeds:        counterSeeds(),
			Discriminant: CounterAccountDiscriminator,
			Init: &frame.InitSpec{
				Eager:  true,
				Space:  CounterAccountSize,
				Funder: RolePayer,
			},
		},
	}
}

// handleInitialize runs against an eagerly created counter account: the
// handle already reflects the allocation, so the handler only stamps state.
func handleInitialize(ctx *frame.Context, accounts *frame.AccountSet, data []byte) error {
	state, err := counterState(accounts.Account(RoleCounter))
	if err != nil {
		return err
	}

	bump, _ := accounts.Bump(RoleCounter)

	state.Authority = accounts.Account(RoleAuthority).Key
	state.Count.Set(0)
	state.Bump = bump

	ctx.Log().WithField("authority", state.Authority.String()).Debug("initialized counter")

	return nil
}
