// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package instruction

import (
	"github.com/gagliardetto/solana-go"

	"github.com/VltrnOne/E9th/layout"
)

// Initialize creates the enhanced config and blacklist.
type Initialize struct {
	Owner               solana.PublicKey
	Operator            solana.PublicKey
	Treasury            solana.PublicKey
	BurnRateBasisPoints uint16
}

func (*Initialize) Dialect() Dialect { return Current }
func (*Initialize) Opcode() uint8    { return 0 }
func (*Initialize) Name() string     { return "Initialize" }

func (i *Initialize) marshal(w *layout.Writer) {
	w.PublicKey(i.Owner)
	w.PublicKey(i.Operator)
	w.PublicKey(i.Treasury)
	w.U16(i.BurnRateBasisPoints)
}

func (i *Initialize) unmarshal(r *layout.Reader) {
	i.Owner = r.PublicKey()
	i.Operator = r.PublicKey()
	i.Treasury = r.PublicKey()
	i.BurnRateBasisPoints = r.U16()
}

// SetPause halts or resumes transfers.
type SetPause struct {
	Pause bool
}

func (*SetPause) Dialect() Dialect { return Current }
func (*SetPause) Opcode() uint8    { return 1 }
func (*SetPause) Name() string     { return "SetPause" }

func (i *SetPause) marshal(w *layout.Writer)   { w.Bool(i.Pause) }
func (i *SetPause) unmarshal(r *layout.Reader) { i.Pause = r.Flag() }

// ModifyBlacklist adds or removes an identity from the blacklist.
type ModifyBlacklist struct {
	Account solana.PublicKey
	Add     bool
}

func (*ModifyBlacklist) Dialect() Dialect { return Current }
func (*ModifyBlacklist) Opcode() uint8    { return 2 }
func (*ModifyBlacklist) Name() string     { return "ModifyBlacklist" }

func (i *ModifyBlacklist) marshal(w *layout.Writer) {
	w.PublicKey(i.Account)
	w.Bool(i.Add)
}

func (i *ModifyBlacklist) unmarshal(r *layout.Reader) {
	i.Account = r.PublicKey()
	i.Add = r.Flag()
}

// Transfer moves tokens, burning the configured share.
type Transfer struct {
	Amount uint64
}

func (*Transfer) Dialect() Dialect { return Current }
func (*Transfer) Opcode() uint8    { return 3 }
func (*Transfer) Name() string     { return "Transfer" }

func (i *Transfer) marshal(w *layout.Writer)   { w.U64(i.Amount) }
func (i *Transfer) unmarshal(r *layout.Reader) { i.Amount = r.U64() }

// Airdrop mints amounts[i] to recipients[i]. Mismatched lengths are
// representable and rejected by the handler. Nil and empty lists encode
// alike; Decode yields non-nil slices.
type Airdrop struct {
	Recipients []solana.PublicKey
	Amounts    []uint64
}

func (*Airdrop) Dialect() Dialect { return Current }
func (*Airdrop) Opcode() uint8    { return 4 }
func (*Airdrop) Name() string     { return "Airdrop" }

func (i *Airdrop) marshal(w *layout.Writer) {
	w.U32(uint32(len(i.Recipients)))
	for _, key := range i.Recipients {
		w.PublicKey(key)
	}
	w.U32(uint32(len(i.Amounts)))
	for _, amount := range i.Amounts {
		w.U64(amount)
	}
}

func (i *Airdrop) unmarshal(r *layout.Reader) {
	i.Recipients = make([]solana.PublicKey, r.Len(solana.PublicKeyLength))
	for k := range i.Recipients {
		i.Recipients[k] = r.PublicKey()
	}
	i.Amounts = make([]uint64, r.Len(8))
	for k := range i.Amounts {
		i.Amounts[k] = r.U64()
	}
}

// Stake locks tokens into an enhanced stake entry.
type Stake struct {
	Amount uint64
}

func (*Stake) Dialect() Dialect { return Current }
func (*Stake) Opcode() uint8    { return 5 }
func (*Stake) Name() string     { return "Stake" }

func (i *Stake) marshal(w *layout.Writer)   { w.U64(i.Amount) }
func (i *Stake) unmarshal(r *layout.Reader) { i.Amount = r.U64() }

// Unstake releases part of an enhanced stake entry.
type Unstake struct {
	Amount uint64
}

func (*Unstake) Dialect() Dialect { return Current }
func (*Unstake) Opcode() uint8    { return 6 }
func (*Unstake) Name() string     { return "Unstake" }

func (i *Unstake) marshal(w *layout.Writer)   { w.U64(i.Amount) }
func (i *Unstake) unmarshal(r *layout.Reader) { i.Amount = r.U64() }

// ClaimRewards pays the rewards accrued by an enhanced stake entry.
type ClaimRewards struct{}

func (*ClaimRewards) Dialect() Dialect { return Current }
func (*ClaimRewards) Opcode() uint8    { return 7 }
func (*ClaimRewards) Name() string     { return "ClaimRewards" }

func (*ClaimRewards) marshal(*layout.Writer)   {}
func (*ClaimRewards) unmarshal(*layout.Reader) {}
