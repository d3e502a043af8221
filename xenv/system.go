// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/builtin/reverts"
)

// MaxPermittedDataLength caps the size of a provisioned buffer.
const MaxPermittedDataLength = 10 * 1024 * 1024

var (
	ErrAccountAlreadyInUse = errors.New("account already in use")
	ErrInvalidAccountSize  = errors.New("invalid account data length")
)

// SystemProvisioner provisions buffers the way the system program's
// create-account does: the target must be unused and system owned, the
// payer funds it.
type SystemProvisioner struct{}

var _ Provisioner = SystemProvisioner{}

func (SystemProvisioner) CreateAccount(payer, target account.Info, lamports, space uint64, owner solana.PublicKey) error {
	if !payer.IsSigner() || !payer.IsWritable() {
		return errors.Wrapf(reverts.ErrUnauthorized, "payer %v must sign and be writable", payer.Key())
	}
	if !target.IsWritable() {
		return errors.Wrapf(reverts.ErrInvalidAccountData, "target %v not writable", target.Key())
	}
	if target.Lamports() > 0 || !target.DataIsEmpty() || target.Owner() != solana.SystemProgramID {
		return errors.Wrapf(ErrAccountAlreadyInUse, "target %v", target.Key())
	}
	if space > MaxPermittedDataLength {
		return errors.Wrapf(ErrInvalidAccountSize, "%d bytes", space)
	}
	if payer.Lamports() < lamports {
		return errors.Wrapf(reverts.ErrInsufficientFunds, "payer %v has %d lamports, need %d", payer.Key(), payer.Lamports(), lamports)
	}

	if err := target.Realloc(int(space)); err != nil {
		return err
	}
	if err := target.Assign(owner); err != nil {
		return err
	}
	if err := payer.SetLamports(payer.Lamports() - lamports); err != nil {
		return err
	}
	return target.SetLamports(lamports)
}

// FixedClock is a Clock frozen at a given epoch and timestamp.
type FixedClock struct {
	EpochValue     uint64
	TimestampValue uint64
}

var _ Clock = (*FixedClock)(nil)

func (c *FixedClock) Epoch() uint64         { return c.EpochValue }
func (c *FixedClock) UnixTimestamp() uint64 { return c.TimestampValue }

// RentParams prices storage per byte-year and exempts balances covering
// ExemptionThreshold years.
type RentParams struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  uint64 // years
}

var _ Rent = RentParams{}

// AccountStorageOverhead is charged on top of every buffer.
const AccountStorageOverhead = 128

// DefaultRent returns the mainnet rent parameters.
func DefaultRent() RentParams {
	return RentParams{LamportsPerByteYear: 3480, ExemptionThreshold: 2}
}

func (r RentParams) MinimumBalance(space uint64) uint64 {
	return (space + AccountStorageOverhead) * r.LamportsPerByteYear * r.ExemptionThreshold
}
