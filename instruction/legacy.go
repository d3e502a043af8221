// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package instruction

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/layout"
)

// LegacyInitialize creates the single-admin ledger config.
type LegacyInitialize struct {
	TotalSupply    uint64
	RewardRate     uint16
	MinStakePeriod uint64
	MaxStakePeriod uint64
}

func (*LegacyInitialize) Dialect() Dialect { return Legacy }
func (*LegacyInitialize) Opcode() uint8    { return 0 }
func (*LegacyInitialize) Name() string     { return "LegacyInitialize" }

func (i *LegacyInitialize) marshal(w *layout.Writer) {
	w.U64(i.TotalSupply)
	w.U16(i.RewardRate)
	w.U64(i.MinStakePeriod)
	w.U64(i.MaxStakePeriod)
}

func (i *LegacyInitialize) unmarshal(r *layout.Reader) {
	i.TotalSupply = r.U64()
	i.RewardRate = r.U16()
	i.MinStakePeriod = r.U64()
	i.MaxStakePeriod = r.U64()
}

// LegacyMint issues tokens on behalf of the admin.
type LegacyMint struct {
	Amount uint64
}

func (*LegacyMint) Dialect() Dialect { return Legacy }
func (*LegacyMint) Opcode() uint8    { return 1 }
func (*LegacyMint) Name() string     { return "LegacyMint" }

func (i *LegacyMint) marshal(w *layout.Writer)   { w.U64(i.Amount) }
func (i *LegacyMint) unmarshal(r *layout.Reader) { i.Amount = r.U64() }

// LegacyBurn destroys tokens on behalf of the admin.
type LegacyBurn struct {
	Amount uint64
}

func (*LegacyBurn) Dialect() Dialect { return Legacy }
func (*LegacyBurn) Opcode() uint8    { return 2 }
func (*LegacyBurn) Name() string     { return "LegacyBurn" }

func (i *LegacyBurn) marshal(w *layout.Writer)   { w.U64(i.Amount) }
func (i *LegacyBurn) unmarshal(r *layout.Reader) { i.Amount = r.U64() }

// LegacyStake opens a stake for period epochs.
type LegacyStake struct {
	Amount uint64
	Period uint64
}

func (*LegacyStake) Dialect() Dialect { return Legacy }
func (*LegacyStake) Opcode() uint8    { return 3 }
func (*LegacyStake) Name() string     { return "LegacyStake" }

func (i *LegacyStake) marshal(w *layout.Writer) {
	w.U64(i.Amount)
	w.U64(i.Period)
}

func (i *LegacyStake) unmarshal(r *layout.Reader) {
	i.Amount = r.U64()
	i.Period = r.U64()
}

// LegacyUnstake closes a mature stake.
type LegacyUnstake struct{}

func (*LegacyUnstake) Dialect() Dialect { return Legacy }
func (*LegacyUnstake) Opcode() uint8    { return 4 }
func (*LegacyUnstake) Name() string     { return "LegacyUnstake" }

func (*LegacyUnstake) marshal(*layout.Writer)   {}
func (*LegacyUnstake) unmarshal(*layout.Reader) {}

// LegacyClaimRewards pays the rewards of a mature stake.
type LegacyClaimRewards struct{}

func (*LegacyClaimRewards) Dialect() Dialect { return Legacy }
func (*LegacyClaimRewards) Opcode() uint8    { return 5 }
func (*LegacyClaimRewards) Name() string     { return "LegacyClaimRewards" }

func (*LegacyClaimRewards) marshal(*layout.Writer)   {}
func (*LegacyClaimRewards) unmarshal(*layout.Reader) {}

// LegacyUpdateSettings changes a subset of the staking parameters, in
// payload order. Each field appears at most once; Decode yields a non-nil
// Fields.
type LegacyUpdateSettings struct {
	Fields []SettingField
}

func (*LegacyUpdateSettings) Dialect() Dialect { return Legacy }
func (*LegacyUpdateSettings) Opcode() uint8    { return 6 }
func (*LegacyUpdateSettings) Name() string     { return "LegacyUpdateSettings" }

func (i *LegacyUpdateSettings) marshal(w *layout.Writer) {
	var seen [fieldTagCount]bool
	for _, f := range i.Fields {
		if f == nil {
			w.Fail(errors.New("nil settings field"))
			return
		}
		if seen[f.Tag()] {
			w.Fail(errDuplicateField(f.Tag()))
			return
		}
		seen[f.Tag()] = true
		w.U8(uint8(f.Tag()))
		f.marshal(w)
	}
}

func (i *LegacyUpdateSettings) unmarshal(r *layout.Reader) {
	i.Fields = []SettingField{}
	var seen [fieldTagCount]bool
	for r.Err() == nil && r.Remaining() > 0 {
		f, err := newSettingField(FieldTag(r.U8()))
		if err != nil {
			r.Fail(err)
			return
		}
		if seen[f.Tag()] {
			r.Fail(errDuplicateField(f.Tag()))
			return
		}
		seen[f.Tag()] = true
		f = f.unmarshal(r)
		i.Fields = append(i.Fields, f)
	}
}

// LegacyTransferAdmin hands the admin role to NewAdmin.
type LegacyTransferAdmin struct {
	NewAdmin solana.PublicKey
}

func (*LegacyTransferAdmin) Dialect() Dialect { return Legacy }
func (*LegacyTransferAdmin) Opcode() uint8    { return 7 }
func (*LegacyTransferAdmin) Name() string     { return "LegacyTransferAdmin" }

func (i *LegacyTransferAdmin) marshal(w *layout.Writer)   { w.PublicKey(i.NewAdmin) }
func (i *LegacyTransferAdmin) unmarshal(r *layout.Reader) { i.NewAdmin = r.PublicKey() }
