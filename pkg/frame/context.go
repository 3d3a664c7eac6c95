package frame

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-program-framework/pkg/solana"
)

// Clock is a snapshot of the clock sysvar.
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/clock.rs#L114-L129
type Clock struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

// Rent is a snapshot of the rent sysvar.
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/rent.rs#L12-L23
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
	BurnPercent         uint8
}

// accountStorageOverhead is charged on top of an account's data size when
// computing rent, matching the runtime's constant.
const accountStorageOverhead = 128

// MinimumBalance returns the lamport balance at which an account of the given
// data size is rent exempt.
func (r Rent) MinimumBalance(dataSize uint64) uint64 {
	return uint64(float64((accountStorageOverhead+dataSize)*r.LamportsPerByteYear) * r.ExemptionThreshold)
}

// Host is the execution environment collaborating with the framework. It
// supplies sysvar state and services account allocation requests. The host is
// also responsible for atomically rolling back all state changes of a failed
// invocation; the framework assumes that guarantee rather than implementing
// it.
type Host interface {
	Clock() (Clock, error)
	Rent() (Rent, error)

	// CreateAccount services an allocation request: debit lamports from
	// funder, allocate space bytes of zeroed data on account, and assign
	// ownership to owner. seeds are the resolved derivation seeds (bump
	// included) authorizing the derived address to sign its own creation.
	CreateAccount(funder, account *Account, owner solana.PublicKey, space, lamports uint64, seeds [][]byte) error
}

// defaultComputeBudget mirrors the per-invocation compute allowance of the
// host runtime.
const defaultComputeBudget = 200_000

// Context is the per-invocation execution state threaded into every handler.
// It is created at invocation entry, discarded at exit, and never shared
// between invocations.
type Context struct {
	programID solana.PublicKey
	host      Host
	log       *logrus.Entry

	// Sysvar snapshots, populated lazily on first access.
	clock *Clock
	rent  *Rent

	unitsRemaining uint64
}

func newContext(programID solana.PublicKey, host Host, log *logrus.Entry) *Context {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}

	return &Context{
		programID: programID,
		host:      host,
		log:       log.WithField("program", programID.String()),

		unitsRemaining: defaultComputeBudget,
	}
}

// ProgramID returns the id of the executing program.
func (c *Context) ProgramID() solana.PublicKey {
	return c.programID
}

// Log returns the invocation-scoped logger.
func (c *Context) Log() *logrus.Entry {
	return c.log
}

// Clock returns the clock sysvar, fetched from the host once per invocation.
func (c *Context) Clock() (Clock, error) {
	if c.clock == nil {
		clock, err := c.host.Clock()
		if err != nil {
			return Clock{}, err
		}
		c.clock = &clock
	}
	return *c.clock, nil
}

// Rent returns the rent sysvar, fetched from the host once per invocation.
func (c *Context) Rent() (Rent, error) {
	if c.rent == nil {
		rent, err := c.host.Rent()
		if err != nil {
			return Rent{}, err
		}
		c.rent = &rent
	}
	return *c.rent, nil
}

// ConsumeUnits debits the invocation's compute budget, failing with
// ErrComputeBudgetExceeded once exhausted.
func (c *Context) ConsumeUnits(units uint64) error {
	if units > c.unitsRemaining {
		c.unitsRemaining = 0
		return ErrComputeBudgetExceeded
	}
	c.unitsRemaining -= units
	return nil
}

// UnitsRemaining reports the compute budget not yet consumed.
func (c *Context) UnitsRemaining() uint64 {
	return c.unitsRemaining
}
