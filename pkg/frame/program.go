package frame

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-program-framework/pkg/solana"
)

// HandlerFunc is the business logic of one instruction. It runs only after
// its account set composed fully; data is the instruction payload after the
// discriminant, typically viewed in place via pod.View.
type HandlerFunc func(ctx *Context, accounts *AccountSet, data []byte) error

// Instruction declares one variant of a program's closed instruction set.
type Instruction struct {
	Discriminant uint8
	Name         string
	Accounts     []Role
	Handler      HandlerFunc
}

// Program is a closed, exhaustive instruction set bound to a program id. The
// dispatch table is built once at definition time.
type Program struct {
	id             solana.PublicKey
	instructions   []Instruction
	byDiscriminant map[uint8]*Instruction

	log *logrus.Entry
}

// NewProgram builds a program definition, rejecting duplicate discriminants
// and malformed role declarations up front.
func NewProgram(id solana.PublicKey, instructions ...Instruction) (*Program, error) {
	p := &Program{
		id:             id,
		instructions:   instructions,
		byDiscriminant: make(map[uint8]*Instruction),
	}

	for i := range instructions {
		instruction := &instructions[i]

		if instruction.Name == "" {
			return nil, errors.Errorf("instruction %d has no name", i)
		}
		if instruction.Handler == nil {
			return nil, errors.Errorf("instruction %s has no handler", instruction.Name)
		}
		if _, ok := p.byDiscriminant[instruction.Discriminant]; ok {
			return nil, errors.Errorf("duplicate instruction discriminant %d", instruction.Discriminant)
		}
		if err := checkRoles(instruction.Accounts); err != nil {
			return nil, errors.Wrapf(err, "instruction %s", instruction.Name)
		}

		p.byDiscriminant[instruction.Discriminant] = instruction
	}

	return p, nil
}

// MustNewProgram is NewProgram, panicking on a malformed definition.
// Program definitions are static, so a failure here is a programming error.
func MustNewProgram(id solana.PublicKey, instructions ...Instruction) *Program {
	p, err := NewProgram(id, instructions...)
	if err != nil {
		panic(err)
	}
	return p
}

// ID returns the program's address.
func (p *Program) ID() solana.PublicKey {
	return p.id
}

// WithLogger installs a logger for subsequent invocations. Without one, the
// framework logs nowhere.
func (p *Program) WithLogger(log *logrus.Entry) *Program {
	p.log = log
	return p
}

// Execute is the invocation entrypoint: it reads the leading discriminant
// from data, composes and validates the matched instruction's account set,
// runs the handler, and discharges pending creation and closure obligations.
//
// Every phase fails fast; an error propagates to the host unchanged, and the
// host reverts all state changes of the failed invocation.
func (p *Program) Execute(host Host, programID solana.PublicKey, accounts []*Account, data []byte) error {
	if !programID.Equals(p.id) {
		return ErrIncorrectProgram
	}

	if len(data) < 1 {
		return errors.Wrap(ErrUnknownInstruction, "missing discriminant")
	}
	instruction, ok := p.byDiscriminant[data[0]]
	if !ok {
		return errors.Wrapf(ErrUnknownInstruction, "discriminant %d", data[0])
	}

	ctx := newContext(p.id, host, p.log)
	ctx.log = ctx.log.WithField("instruction", instruction.Name)

	c := &composer{ctx: ctx}
	set, err := c.compose(instruction.Accounts, &cursor{accounts: accounts, programID: p.id})
	if err != nil {
		ctx.log.WithError(err).Debug("account set composition failed")
		return err
	}

	if err := instruction.Handler(ctx, set, data[1:]); err != nil {
		// Handler errors pass through unchanged so program-defined codes
		// survive to the invocation boundary.
		return err
	}

	return c.discharge(set)
}
