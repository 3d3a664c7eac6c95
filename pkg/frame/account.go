package frame

import (
	"github.com/pkg/errors"

	"github.com/code-payments/code-program-framework/pkg/frame/pod"
	"github.com/code-payments/code-program-framework/pkg/solana"
)

// Account is a runtime handle to one account delivered by the host for the
// current invocation. The framework never owns the underlying buffer; it
// borrows it for the invocation's duration, and every typed view taken over
// Data is bounded by that borrow. Mutations land directly in host memory.
type Account struct {
	Key      solana.PublicKey
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte

	IsSigner   bool
	IsWritable bool
}

// IsOwnedBy reports whether the account is owned by the given program.
func (a *Account) IsOwnedBy(program solana.PublicKey) bool {
	return a.Owner.Equals(program)
}

// IsZeroed reports whether the account data contains only zero bytes.
func (a *Account) IsZeroed() bool {
	for _, b := range a.Data {
		if b != 0 {
			return false
		}
	}
	return true
}

// zero wipes the account data in place.
func (a *Account) zero() {
	for i := range a.Data {
		a.Data[i] = 0
	}
}

// State returns a zero-copy view of T over the account data, immediately
// after the leading discriminant. The view aliases the account buffer, so
// writes are visible to the host without any serialization step.
func State[T any](a *Account, discriminant []byte) (*T, error) {
	if len(a.Data) < len(discriminant) {
		return nil, errors.Wrapf(pod.ErrBufferTooSmall, "account %s too small for discriminant", a.Key)
	}
	return pod.View[T](a.Data[len(discriminant):])
}
