package frame

import (
	"github.com/pkg/errors"

	"github.com/code-payments/code-program-framework/pkg/solana"
)

// SimulatedHost is an in-memory Host for tests and local execution. It
// applies allocation requests directly to the provided account handles, the
// way the runtime's system program would.
type SimulatedHost struct {
	ClockValue Clock
	RentValue  Rent
}

// NewSimulatedHost returns a host with mainnet-default rent parameters.
func NewSimulatedHost() *SimulatedHost {
	return &SimulatedHost{
		ClockValue: Clock{
			Slot:          1,
			UnixTimestamp: 1_700_000_000,
		},
		RentValue: Rent{
			LamportsPerByteYear: 3480,
			ExemptionThreshold:  2.0,
			BurnPercent:         50,
		},
	}
}

func (h *SimulatedHost) Clock() (Clock, error) {
	return h.ClockValue, nil
}

func (h *SimulatedHost) Rent() (Rent, error) {
	return h.RentValue, nil
}

func (h *SimulatedHost) CreateAccount(funder, account *Account, owner solana.PublicKey, space, lamports uint64, seeds [][]byte) error {
	if !funder.IsSigner {
		return errors.New("funder must sign")
	}
	if !funder.IsWritable || !account.IsWritable {
		return errors.New("funder and new account must be writable")
	}
	if funder.Lamports < lamports {
		return errors.Errorf("insufficient funds: need %d, have %d", lamports, funder.Lamports)
	}
	if len(account.Data) > 0 || account.Lamports > 0 {
		return errors.New("account in use")
	}

	funder.Lamports -= lamports
	account.Lamports = lamports
	account.Data = make([]byte, space)
	account.Owner = owner

	return nil
}
