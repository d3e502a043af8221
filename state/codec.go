// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/builtin/reverts"
)

// Record is a fixed layout value stored in an account buffer.
type Record interface {
	// Size is the number of bytes a buffer needs to hold the record.
	Size() int
	MarshalWithEncoder(enc *bin.Encoder) error
	UnmarshalWithDecoder(dec *bin.Decoder) error
}

// Decode reads rec from the leading bytes of data.
func Decode(data []byte, rec Record) error {
	if len(data) < rec.Size() {
		return errors.Wrapf(reverts.ErrInvalidAccountData, "decode %T: buffer of %d bytes, want %d", rec, len(data), rec.Size())
	}
	if err := rec.UnmarshalWithDecoder(bin.NewBinDecoder(data[:rec.Size()])); err != nil {
		return errors.Wrapf(reverts.ErrInvalidAccountData, "decode %T: %v", rec, err)
	}
	return nil
}

// Encode writes rec into the leading bytes of data. It fails rather than
// truncate when data is too short.
func Encode(data []byte, rec Record) error {
	var buf bytes.Buffer
	buf.Grow(rec.Size())
	if err := rec.MarshalWithEncoder(bin.NewBinEncoder(&buf)); err != nil {
		return errors.Wrapf(reverts.ErrInvalidAccountData, "encode %T: %v", rec, err)
	}
	if buf.Len() > len(data) {
		return errors.Wrapf(reverts.ErrInvalidAccountData, "encode %T: %d bytes into buffer of %d", rec, buf.Len(), len(data))
	}
	copy(data, buf.Bytes())
	return nil
}

// Marshal encodes rec into a fresh buffer of rec.Size() bytes.
func Marshal(rec Record) ([]byte, error) {
	data := make([]byte, rec.Size())
	if err := Encode(data, rec); err != nil {
		return nil, err
	}
	return data, nil
}

// Load decodes rec from the account buffer under a shared borrow.
func Load(acc account.Info, rec Record) error {
	data, release, err := acc.TryBorrowData()
	if err != nil {
		return err
	}
	defer release()
	return errors.WithMessagef(Decode(data, rec), "account %v", acc.Key())
}

// LoadOwned is Load for accounts that must be owned by program.
func LoadOwned(acc account.Info, program solana.PublicKey, rec Record) error {
	if acc.Owner() != program {
		return errors.Wrapf(reverts.ErrInvalidAccountOwner, "account %v owned by %v", acc.Key(), acc.Owner())
	}
	return Load(acc, rec)
}

// Store encodes rec into the account buffer under an exclusive borrow.
func Store(acc account.Info, rec Record) error {
	data, release, err := acc.TryBorrowMutData()
	if err != nil {
		return err
	}
	defer release()
	return errors.WithMessagef(Encode(data, rec), "account %v", acc.Key())
}
