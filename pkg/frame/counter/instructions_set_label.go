package counter

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/code-payments/code-program-framework/pkg/frame"
	"github.com/code-payments/code-program-framework/pkg/solana"
	"github.com/code-payments/code-program-framework/pkg/solana/shortvec"
)

type SetLabelInstructionAccounts struct {
	Authority solana.PublicKey
	Counter   solana.PublicKey
}

// NewSetLabelInstruction builds the client-side set_label instruction. The
// label is a variable-length payload: a compact length followed by raw bytes.
func NewSetLabelInstruction(
	accounts *SetLabelInstructionAccounts,
	label string,
) (solana.Instruction, error) {
	buf := bytes.NewBuffer([]byte{CounterInstructionSetLabel})
	if _, err := shortvec.EncodeLen(buf, len(label)); err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to encode label length")
	}
	buf.WriteString(label)

	return solana.NewInstruction(
		PROGRAM_ID,
		buf.Bytes(),
		solana.NewReadonlyAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.Counter, false),
	), nil
}

func handleSetLabel(ctx *frame.Context, accounts *frame.AccountSet, data []byte) error {
	reader := bytes.NewReader(data)
	length, err := shortvec.DecodeLen(reader)
	if err != nil {
		return errors.Wrap(err, "failed to decode label length")
	}
	if length > MaxLabelLength {
		return ErrLabelTooLong
	}

	label := make([]byte, length)
	if _, err := io.ReadFull(reader, label); err != nil {
		return errors.Wrap(err, "failed to read label")
	}

	state, err := counterState(accounts.Account(RoleCounter))
	if err != nil {
		return err
	}

	if !state.Authority.Equals(accounts.Account(RoleAuthority).Key) {
		return ErrInvalidAuthority
	}

	state.Label = [MaxLabelLength]byte{}
	copy(state.Label[:], label)

	return nil
}
