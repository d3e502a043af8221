// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package account defines the account handles an instruction operates on.
package account

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/builtin/reverts"
)

// Info is a handle to one account supplied by the host runtime.
//
// Buffers are borrowed, not owned: a borrow must be released before a
// conflicting one is taken. Any number of shared borrows may coexist, an
// exclusive borrow excludes every other borrow.
type Info interface {
	Key() solana.PublicKey
	Owner() solana.PublicKey
	IsSigner() bool
	IsWritable() bool
	Lamports() uint64
	DataLen() int
	DataIsEmpty() bool

	// TryBorrowData takes a shared borrow of the buffer.
	TryBorrowData() ([]byte, func(), error)
	// TryBorrowMutData takes an exclusive borrow of the buffer.
	TryBorrowMutData() ([]byte, func(), error)

	Realloc(size int) error
	Assign(owner solana.PublicKey) error
	SetLamports(lamports uint64) error
}

// Account is an in-memory Info.
type Account struct {
	key      solana.PublicKey
	owner    solana.PublicKey
	lamports uint64
	data     []byte
	signer   bool
	writable bool

	// >0 shared borrows, -1 exclusive borrow
	borrows int
}

var _ Info = (*Account)(nil)

// New creates an account handle, neither signer nor writable.
func New(key, owner solana.PublicKey, lamports uint64, data []byte) *Account {
	return &Account{
		key:      key,
		owner:    owner,
		lamports: lamports,
		data:     data,
	}
}

// AsSigner marks the account as a signer of the instruction.
func (a *Account) AsSigner() *Account {
	a.signer = true
	return a
}

// AsWritable marks the account as writable by the instruction.
func (a *Account) AsWritable() *Account {
	a.writable = true
	return a
}

// WithAccess sets both access flags at once.
func (a *Account) WithAccess(signer, writable bool) *Account {
	a.signer = signer
	a.writable = writable
	return a
}

func (a *Account) Key() solana.PublicKey   { return a.key }
func (a *Account) Owner() solana.PublicKey { return a.owner }
func (a *Account) IsSigner() bool          { return a.signer }
func (a *Account) IsWritable() bool        { return a.writable }
func (a *Account) Lamports() uint64        { return a.lamports }
func (a *Account) DataLen() int            { return len(a.data) }
func (a *Account) DataIsEmpty() bool       { return len(a.data) == 0 }

// Data returns a copy of the buffer.
func (a *Account) Data() []byte {
	return append([]byte(nil), a.data...)
}

func (a *Account) TryBorrowData() ([]byte, func(), error) {
	if a.borrows < 0 {
		return nil, nil, errors.Wrapf(reverts.ErrAccountBorrowFailed, "account %v: mutably borrowed", a.key)
	}
	a.borrows++
	released := false
	return a.data, func() {
		if !released {
			released = true
			a.borrows--
		}
	}, nil
}

func (a *Account) TryBorrowMutData() ([]byte, func(), error) {
	if a.borrows != 0 {
		return nil, nil, errors.Wrapf(reverts.ErrAccountBorrowFailed, "account %v: already borrowed", a.key)
	}
	a.borrows = -1
	released := false
	return a.data, func() {
		if !released {
			released = true
			a.borrows = 0
		}
	}, nil
}

// Realloc resizes the buffer, zero filling any new bytes.
func (a *Account) Realloc(size int) error {
	if size < 0 {
		return errors.Errorf("account %v: negative size %d", a.key, size)
	}
	if a.borrows != 0 {
		return errors.Wrapf(reverts.ErrAccountBorrowFailed, "account %v: realloc while borrowed", a.key)
	}
	if size <= len(a.data) {
		a.data = a.data[:size]
		return nil
	}
	data := make([]byte, size)
	copy(data, a.data)
	a.data = data
	return nil
}

func (a *Account) Assign(owner solana.PublicKey) error {
	a.owner = owner
	return nil
}

func (a *Account) SetLamports(lamports uint64) error {
	a.lamports = lamports
	return nil
}

// Clone returns a deep copy without outstanding borrows.
func (a *Account) Clone() *Account {
	c := *a
	c.data = a.Data()
	c.borrows = 0
	return &c
}
