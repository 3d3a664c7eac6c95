// Package counter is a small reference program built on the framework. It
// exercises account creation, seeded addresses, pod state views,
// variable-length payloads, and account closure, and doubles as the
// integration-test surface for the engine.
package counter

import (
	"github.com/code-payments/code-program-framework/pkg/frame"
	"github.com/code-payments/code-program-framework/pkg/solana"
)

var (
	PROGRAM_ADDRESS = solana.MustPublicKeyFromBase58("RpXAja7ZvyqmCqS2k13hydLoumcZ76Mk4tHVAnhfDHD")
	PROGRAM_ID      = PROGRAM_ADDRESS
)

type CounterInstruction = uint8

const (
	CounterInstructionInitialize CounterInstruction = iota
	CounterInstructionIncrement
	CounterInstructionSetLabel
	CounterInstructionClose
)

// Role names shared by the on-chain declaration and the client builders.
const (
	RolePayer       = "payer"
	RoleAuthority   = "authority"
	RoleCounter     = "counter"
	RoleDestination = "destination"
)

// Program-defined error codes, surfaced unchanged through the invocation
// boundary.
const (
	ErrInvalidAuthority = frame.CustomError(0x1)
	ErrCounterOverflow  = frame.CustomError(0x2)
	ErrLabelTooLong     = frame.CustomError(0x3)
)

// NewProgram builds the counter program's dispatch table.
func NewProgram() *frame.Program {
	return frame.MustNewProgram(
		PROGRAM_ID,
		frame.Instruction{
			Discriminant: CounterInstructionInitialize,
			Name:         "initialize",
			Accounts:     initializeAccountRoles(),
			Handler:      handleInitialize,
		},
		frame.Instruction{
			Discriminant: CounterInstructionIncrement,
			Name:         "increment",
			Accounts:     counterAccessRoles(),
			Handler:      handleIncrement,
		},
		frame.Instruction{
			Discriminant: CounterInstructionSetLabel,
			Name:         "set_label",
			Accounts:     counterAccessRoles(),
			Handler:      handleSetLabel,
		},
		frame.Instruction{
			Discriminant: CounterInstructionClose,
			Name:         "close",
			Accounts:     closeAccountRoles(),
			Handler:      handleClose,
		},
	)
}
