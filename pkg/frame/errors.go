package frame

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/code-payments/code-program-framework/pkg/solana"
)

// Binding phase
var (
	// ErrAccountMissing indicates the host-provided account list was
	// exhausted before all required roles were bound.
	ErrAccountMissing = errors.New("account missing")

	// ErrAccountOrder indicates the caller supplied the absent sentinel (the
	// program id) in a position declared as a required role.
	ErrAccountOrder = errors.New("account order mismatch")
)

// Validation phase
var (
	ErrNotSigner                 = errors.New("account is not a signer")
	ErrNotWritable               = errors.New("account is not writable")
	ErrOwnerMismatch             = errors.New("account owner mismatch")
	ErrAddressMismatch           = errors.New("account address mismatch")
	ErrDiscriminantMismatch      = errors.New("account discriminant mismatch")
	ErrAccountAlreadyInitialized = errors.New("account already initialized")
	ErrAliasedWritableAccounts   = errors.New("aliased writable accounts")
)

// Dispatch phase
var (
	ErrIncorrectProgram   = errors.New("incorrect program id")
	ErrUnknownInstruction = errors.New("unknown instruction")
)

// ErrComputeBudgetExceeded indicates the invocation consumed more compute
// units than its budget allows.
var ErrComputeBudgetExceeded = errors.New("compute budget exceeded")

// OwnerMismatchError reports the expected and actual owning program for a
// role whose owner constraint failed. It matches ErrOwnerMismatch under
// errors.Is.
type OwnerMismatchError struct {
	Role     string
	Expected solana.PublicKey
	Actual   solana.PublicKey
}

func (e *OwnerMismatchError) Error() string {
	return fmt.Sprintf("account %s: owner mismatch (expected %s, actual %s)", e.Role, e.Expected, e.Actual)
}

func (e *OwnerMismatchError) Unwrap() error {
	return ErrOwnerMismatch
}

// AddressMismatchError reports the expected and actual address for a role
// whose address or seed constraint failed. It matches ErrAddressMismatch
// under errors.Is.
type AddressMismatchError struct {
	Role     string
	Expected solana.PublicKey
	Actual   solana.PublicKey
}

func (e *AddressMismatchError) Error() string {
	return fmt.Sprintf("account %s: address mismatch (expected %s, actual %s)", e.Role, e.Expected, e.Actual)
}

func (e *AddressMismatchError) Unwrap() error {
	return ErrAddressMismatch
}

// CustomError carries a program-defined error code across the invocation
// boundary unchanged, so off-chain callers can diagnose handler failures
// without replaying execution.
type CustomError uint32

func (e CustomError) Error() string {
	return fmt.Sprintf("custom program error: %#x", uint32(e))
}

// CustomErrorCode extracts the program-defined code from an error returned by
// Execute, if one is present.
func CustomErrorCode(err error) (uint32, bool) {
	var custom CustomError
	if errors.As(err, &custom) {
		return uint32(custom), true
	}
	return 0, false
}
