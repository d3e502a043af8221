// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"slices"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/builtin/reverts"
	"github.com/VltrnOne/E9th/e9th"
	"github.com/VltrnOne/E9th/layout"
)

// BlacklistSize is the buffer size of a blacklist at full capacity.
const BlacklistSize = 4 + solana.PublicKeyLength*e9th.BlacklistCapacity + 1

// Blacklist is a bounded set of identities barred from moving tokens.
type Blacklist struct {
	Accounts []solana.PublicKey
	Bump     uint8
}

var _ Record = (*Blacklist)(nil)

func (b *Blacklist) Contains(key solana.PublicKey) bool {
	return slices.Contains(b.Accounts, key)
}

// Add inserts key. Adding a present key is a no-op.
func (b *Blacklist) Add(key solana.PublicKey) error {
	if b.Contains(key) {
		return nil
	}
	if len(b.Accounts) >= e9th.BlacklistCapacity {
		return errors.Wrapf(reverts.ErrBlacklistFull, "add %v", key)
	}
	b.Accounts = append(b.Accounts, key)
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (b *Blacklist) Remove(key solana.PublicKey) {
	b.Accounts = slices.DeleteFunc(b.Accounts, func(k solana.PublicKey) bool { return k == key })
}

func (b *Blacklist) Size() int { return BlacklistSize }

func (b *Blacklist) MarshalWithEncoder(enc *bin.Encoder) error {
	if len(b.Accounts) > e9th.BlacklistCapacity {
		return errors.Errorf("blacklist of %d entries exceeds capacity", len(b.Accounts))
	}
	w := layout.NewWriter(enc)
	w.U32(uint32(len(b.Accounts)))
	for _, key := range b.Accounts {
		w.PublicKey(key)
	}
	w.U8(b.Bump)
	return w.Err()
}

func (b *Blacklist) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := layout.NewReader(dec)
	n := r.Len(solana.PublicKeyLength)
	if r.Err() != nil {
		return r.Err()
	}
	if n > e9th.BlacklistCapacity {
		return errors.Errorf("blacklist of %d entries exceeds capacity", n)
	}
	accounts := make([]solana.PublicKey, 0, n)
	for range n {
		key := r.PublicKey()
		if r.Err() == nil && slices.Contains(accounts, key) {
			return errors.Errorf("duplicate blacklist entry %v", key)
		}
		accounts = append(accounts, key)
	}
	bump := r.U8()
	if err := r.Err(); err != nil {
		return err
	}
	b.Accounts = accounts
	b.Bump = bump
	return nil
}
