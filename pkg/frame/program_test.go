package frame

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgram_Validation(t *testing.T) {
	id := newKey(t)

	valid := Instruction{
		Discriminant: 0,
		Name:         "noop",
		Handler:      noopHandler,
	}

	cases := []struct {
		name         string
		instructions []Instruction
	}{
		{
			name: "duplicate discriminant",
			instructions: []Instruction{
				valid,
				{Discriminant: 0, Name: "other", Handler: noopHandler},
			},
		},
		{
			name: "missing name",
			instructions: []Instruction{
				{Discriminant: 0, Handler: noopHandler},
			},
		},
		{
			name: "missing handler",
			instructions: []Instruction{
				{Discriminant: 0, Name: "noop"},
			},
		},
		{
			name: "unnamed role",
			instructions: []Instruction{
				{Discriminant: 0, Name: "noop", Handler: noopHandler, Accounts: []Role{{}}},
			},
		},
		{
			name: "duplicate role name",
			instructions: []Instruction{
				{Discriminant: 0, Name: "noop", Handler: noopHandler, Accounts: []Role{
					{Name: "a"},
					{Name: "a"},
				}},
			},
		},
		{
			name: "init without seeds",
			instructions: []Instruction{
				{Discriminant: 0, Name: "noop", Handler: noopHandler, Accounts: []Role{
					{Name: "payer", Signer: true, Writable: true},
					{Name: "state", Writable: true, Init: &InitSpec{Space: 8, Funder: "payer"}},
				}},
			},
		},
		{
			name: "init not writable",
			instructions: []Instruction{
				{Discriminant: 0, Name: "noop", Handler: noopHandler, Accounts: []Role{
					{Name: "payer", Signer: true, Writable: true},
					{
						Name:  "state",
						Seeds: &SeedSpec{Seeds: []Seed{StringSeed("s")}},
						Init:  &InitSpec{Space: 8, Funder: "payer"},
					},
				}},
			},
		},
		{
			name: "init with unknown funder",
			instructions: []Instruction{
				{Discriminant: 0, Name: "noop", Handler: noopHandler, Accounts: []Role{
					{
						Name:     "state",
						Writable: true,
						Seeds:    &SeedSpec{Seeds: []Seed{StringSeed("s")}},
						Init:     &InitSpec{Space: 8, Funder: "payer"},
					},
				}},
			},
		},
		{
			name: "init funder not a writable signer",
			instructions: []Instruction{
				{Discriminant: 0, Name: "noop", Handler: noopHandler, Accounts: []Role{
					{Name: "payer"},
					{
						Name:     "state",
						Writable: true,
						Seeds:    &SeedSpec{Seeds: []Seed{StringSeed("s")}},
						Init:     &InitSpec{Space: 8, Funder: "payer"},
					},
				}},
			},
		},
		{
			name: "init space smaller than discriminant",
			instructions: []Instruction{
				{Discriminant: 0, Name: "noop", Handler: noopHandler, Accounts: []Role{
					{Name: "payer", Signer: true, Writable: true},
					{
						Name:         "state",
						Writable:     true,
						Seeds:        &SeedSpec{Seeds: []Seed{StringSeed("s")}},
						Discriminant: []byte{1, 2, 3, 4, 5, 6, 7, 8},
						Init:         &InitSpec{Space: 4, Funder: "payer"},
					},
				}},
			},
		},
		{
			name: "close with unknown destination",
			instructions: []Instruction{
				{Discriminant: 0, Name: "noop", Handler: noopHandler, Accounts: []Role{
					{Name: "state", Writable: true, Close: &CloseSpec{Destination: "nowhere"}},
				}},
			},
		},
		{
			name: "nested role with constraints",
			instructions: []Instruction{
				{Discriminant: 0, Name: "noop", Handler: noopHandler, Accounts: []Role{
					{Name: "group", Signer: true, Nested: []Role{{Name: "inner"}}},
				}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProgram(id, tc.instructions...)
			assert.Error(t, err)
		})
	}

	_, err := NewProgram(id, valid)
	assert.NoError(t, err)
}

func TestProgram_Execute_WrongProgram(t *testing.T) {
	id := newKey(t)
	program, err := NewProgram(id, Instruction{Discriminant: 0, Name: "noop", Handler: noopHandler})
	require.NoError(t, err)

	err = program.Execute(NewSimulatedHost(), newKey(t), nil, []byte{0})
	assert.Equal(t, ErrIncorrectProgram, err)
}

func TestProgram_Execute_UnknownInstruction(t *testing.T) {
	id := newKey(t)

	ran := false
	program, err := NewProgram(id, Instruction{
		Discriminant: 7,
		Name:         "noop",
		Handler: func(ctx *Context, accounts *AccountSet, data []byte) error {
			ran = true
			return nil
		},
	})
	require.NoError(t, err)

	host := NewSimulatedHost()

	err = program.Execute(host, id, nil, []byte{8})
	assert.True(t, errors.Is(err, ErrUnknownInstruction))

	err = program.Execute(host, id, nil, nil)
	assert.True(t, errors.Is(err, ErrUnknownInstruction))
	assert.False(t, ran)

	require.NoError(t, program.Execute(host, id, nil, []byte{7}))
	assert.True(t, ran)
}

func TestProgram_Execute_PayloadPassthrough(t *testing.T) {
	id := newKey(t)

	var payload []byte
	program, err := NewProgram(id, Instruction{
		Discriminant: 1,
		Name:         "echo",
		Handler: func(ctx *Context, accounts *AccountSet, data []byte) error {
			payload = data
			return nil
		},
	})
	require.NoError(t, err)

	data := []byte{1, 0xaa, 0xbb, 0xcc}
	require.NoError(t, program.Execute(NewSimulatedHost(), id, nil, data))

	// The handler sees the payload after the discriminant, no copy.
	assert.Equal(t, data[1:], payload)
	assert.Same(t, &data[1], &payload[0])
}

func TestProgram_Execute_HandlerErrorPassthrough(t *testing.T) {
	id := newKey(t)
	program, err := NewProgram(id, Instruction{
		Discriminant: 0,
		Name:         "fail",
		Handler: func(ctx *Context, accounts *AccountSet, data []byte) error {
			return CustomError(0x2a)
		},
	})
	require.NoError(t, err)

	err = program.Execute(NewSimulatedHost(), id, nil, []byte{0})
	assert.Equal(t, CustomError(0x2a), err)

	code, ok := CustomErrorCode(err)
	assert.True(t, ok)
	assert.EqualValues(t, 0x2a, code)

	_, ok = CustomErrorCode(ErrNotSigner)
	assert.False(t, ok)
}

func TestProgram_WithLogger(t *testing.T) {
	id := newKey(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)

	program, err := NewProgram(id, Instruction{
		Discriminant: 0,
		Name:         "noop",
		Handler: func(ctx *Context, accounts *AccountSet, data []byte) error {
			ctx.Log().Debug("handler ran")
			return nil
		},
	})
	require.NoError(t, err)
	program.WithLogger(logrus.NewEntry(logger))

	assert.NoError(t, program.Execute(NewSimulatedHost(), id, nil, []byte{0}))
}
