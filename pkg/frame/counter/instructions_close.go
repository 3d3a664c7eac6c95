package counter

import (
	"github.com/code-payments/code-program-framework/pkg/frame"
	"github.com/code-payments/code-program-framework/pkg/solana"
)

type CloseInstructionAccounts struct {
	Authority   solana.PublicKey
	Counter     solana.PublicKey
	Destination solana.PublicKey
}

func NewCloseInstruction(accounts *CloseInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		PROGRAM_ID,
		[]byte{CounterInstructionClose},
		solana.NewReadonlyAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.Counter, false),
		solana.NewAccountMeta(accounts.Destination, false),
	)
}

func closeAccountRoles() []frame.Role {
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
			Close: &frame.CloseSpec{
				Destination: RoleDestination,
			},
		},
		{
			Name:     RoleDestination,
			Writable: true,
		},
	}
}

// handleClose only gates on the authority; the closure itself (drain
// lamports, zero data, reassign owner) is discharged by the framework after
// the handler returns successfully.
func handleClose(ctx *frame.Context, accounts *frame.AccountSet, data []byte) error {
	state, err := counterState(accounts.Account(RoleCounter))
	if err != nil {
		return err
	}

	if !state.Authority.Equals(accounts.Account(RoleAuthority).Key) {
		return ErrInvalidAuthority
	}

	return nil
}
