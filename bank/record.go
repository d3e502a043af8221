// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/tokenledger"
)

// Record is the stored form of an account.
// RLP encoded records are kept in the accounts bucket.
type Record struct {
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

// IsEmpty returns if a record is empty.
// An empty record holds no lamports and no data.
func (r *Record) IsEmpty() bool {
	return r.Lamports == 0 && len(r.Data) == 0
}

// Handle returns an account handle for key over a copy of the record.
func (r *Record) Handle(key solana.PublicKey) *account.Account {
	return account.New(key, r.Owner, r.Lamports, append([]byte(nil), r.Data...))
}

func recordOf(acc *account.Account) *Record {
	return &Record{Owner: acc.Owner(), Lamports: acc.Lamports(), Data: acc.Data()}
}

func encodeRecord(r *Record) ([]byte, error) {
	data, err := rlp.EncodeToBytes(r)
	return data, errors.Wrap(err, "encode account record")
}

func decodeRecord(data []byte) (*Record, error) {
	var r Record
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return nil, errors.Wrap(err, "decode account record")
	}
	return &r, nil
}

// mintRecord and tokenRecord persist the token ledger.
type mintRecord struct {
	Authority solana.PublicKey
	Supply    uint64
}

type tokenRecord struct {
	Mint   solana.PublicKey
	Owner  solana.PublicKey
	Amount uint64
}

func encodeMint(m tokenledger.Mint) ([]byte, error) {
	return rlp.EncodeToBytes(&mintRecord{Authority: m.Authority, Supply: m.Supply})
}

func decodeMint(key solana.PublicKey, data []byte) (tokenledger.Mint, error) {
	var r mintRecord
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return tokenledger.Mint{}, errors.Wrapf(err, "decode mint %v", key)
	}
	return tokenledger.Mint{Key: key, Authority: r.Authority, Supply: r.Supply}, nil
}

func encodeTokenAccount(a tokenledger.TokenAccount) ([]byte, error) {
	return rlp.EncodeToBytes(&tokenRecord{Mint: a.Mint, Owner: a.Owner, Amount: a.Amount})
}

func decodeTokenAccount(key solana.PublicKey, data []byte) (tokenledger.TokenAccount, error) {
	var r tokenRecord
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return tokenledger.TokenAccount{}, errors.Wrapf(err, "decode token account %v", key)
	}
	return tokenledger.TokenAccount{Key: key, Mint: r.Mint, Owner: r.Owner, Amount: r.Amount}, nil
}
