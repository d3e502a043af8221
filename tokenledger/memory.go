// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tokenledger implements the token primitive the program moves
// tokens through: an in-memory ledger for local execution and an adapter
// emitting SPL token instructions.
package tokenledger

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/builtin/reverts"
	"github.com/VltrnOne/E9th/log"
	"github.com/VltrnOne/E9th/xenv"
)

var logger = log.WithContext("pkg", "tokenledger")

// Mint is a token type and its issuance authority.
type Mint struct {
	Key       solana.PublicKey
	Authority solana.PublicKey
	Supply    uint64
}

// TokenAccount holds a balance of one mint on behalf of an owner.
type TokenAccount struct {
	Key    solana.PublicKey
	Mint   solana.PublicKey
	Owner  solana.PublicKey
	Amount uint64
}

// Op names a ledger operation.
type Op string

const (
	OpMintTo   Op = "mint_to"
	OpBurn     Op = "burn"
	OpTransfer Op = "transfer"
)

// Call is one successful ledger operation.
type Call struct {
	Op        Op
	From      solana.PublicKey // source, or mint for OpMintTo
	To        solana.PublicKey // destination, or mint for OpBurn
	Authority solana.PublicKey
	Amount    uint64
}

func (c Call) String() string {
	return fmt.Sprintf("%s %d %v -> %v (authority %v)", c.Op, c.Amount, c.From, c.To, c.Authority)
}

// Memory is an in-memory token ledger. It's safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	mints    map[solana.PublicKey]*Mint
	accounts map[solana.PublicKey]*TokenAccount
	calls    []Call
}

var _ xenv.TokenLedger = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		mints:    make(map[solana.PublicKey]*Mint),
		accounts: make(map[solana.PublicKey]*TokenAccount),
	}
}

// CreateMint registers a mint issued by authority.
func (m *Memory) CreateMint(key, authority solana.PublicKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.mints[key]; ok {
		return errors.Errorf("mint %v exists", key)
	}
	m.mints[key] = &Mint{Key: key, Authority: authority}
	return nil
}

// SetMintAuthority hands issuance of mint over to authority.
func (m *Memory) SetMintAuthority(key, authority solana.PublicKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mint, ok := m.mints[key]
	if !ok {
		return errors.Wrapf(reverts.ErrInvalidMint, "mint %v", key)
	}
	mint.Authority = authority
	return nil
}

// CreateAccount registers an empty token account of mint held by owner.
func (m *Memory) CreateAccount(key, mint, owner solana.PublicKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.mints[mint]; !ok {
		return errors.Wrapf(reverts.ErrInvalidMint, "mint %v", mint)
	}
	if _, ok := m.accounts[key]; ok {
		return errors.Errorf("token account %v exists", key)
	}
	m.accounts[key] = &TokenAccount{Key: key, Mint: mint, Owner: owner}
	return nil
}

func (m *Memory) Balance(key solana.PublicKey) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[key]; ok {
		return acc.Amount
	}
	return 0
}

func (m *Memory) Supply(mint solana.PublicKey) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mt, ok := m.mints[mint]; ok {
		return mt.Supply
	}
	return 0
}

// Calls returns the operations applied so far.
func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Mints returns all mints ordered by key.
func (m *Memory) Mints() []Mint {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Mint, 0, len(m.mints))
	for _, mt := range m.mints {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.String() < out[j].Key.String() })
	return out
}

// Accounts returns all token accounts ordered by key.
func (m *Memory) Accounts() []TokenAccount {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TokenAccount, 0, len(m.accounts))
	for _, acc := range m.accounts {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.String() < out[j].Key.String() })
	return out
}

// Restore replaces the ledger content.
func (m *Memory) Restore(mints []Mint, accounts []TokenAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mints = make(map[solana.PublicKey]*Mint, len(mints))
	for i := range mints {
		mt := mints[i]
		m.mints[mt.Key] = &mt
	}
	m.accounts = make(map[solana.PublicKey]*TokenAccount, len(accounts))
	for i := range accounts {
		acc := accounts[i]
		m.accounts[acc.Key] = &acc
	}
	m.calls = nil
}

func (m *Memory) account(key, mint solana.PublicKey) (*TokenAccount, error) {
	acc, ok := m.accounts[key]
	if !ok {
		return nil, errors.Wrapf(reverts.ErrInvalidTokenAccount, "token account %v not found", key)
	}
	if acc.Mint != mint {
		return nil, errors.Wrapf(reverts.ErrInvalidMint, "token account %v holds mint %v, not %v", key, acc.Mint, mint)
	}
	return acc, nil
}

func (m *Memory) record(c Call) {
	m.calls = append(m.calls, c)
	logger.Debug("token ledger call", "op", c.Op, "amount", c.Amount, "from", c.From, "to", c.To)
}

func (m *Memory) MintTo(mint, destination, authority solana.PublicKey, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt, ok := m.mints[mint]
	if !ok {
		return errors.Wrapf(reverts.ErrInvalidMint, "mint %v not found", mint)
	}
	if mt.Authority != authority {
		return errors.Wrapf(reverts.ErrUnauthorized, "mint %v: authority %v", mint, authority)
	}
	dst, err := m.account(destination, mint)
	if err != nil {
		return err
	}
	if mt.Supply > math.MaxUint64-amount || dst.Amount > math.MaxUint64-amount {
		return errors.Wrapf(reverts.ErrMathOverflow, "mint %d to %v", amount, destination)
	}
	mt.Supply += amount
	dst.Amount += amount
	m.record(Call{Op: OpMintTo, From: mint, To: destination, Authority: authority, Amount: amount})
	return nil
}

func (m *Memory) Burn(source, mint, authority solana.PublicKey, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt, ok := m.mints[mint]
	if !ok {
		return errors.Wrapf(reverts.ErrInvalidMint, "mint %v not found", mint)
	}
	src, err := m.account(source, mint)
	if err != nil {
		return err
	}
	if src.Owner != authority {
		return errors.Wrapf(reverts.ErrUnauthorized, "token account %v: authority %v", source, authority)
	}
	if src.Amount < amount {
		return errors.Wrapf(reverts.ErrInsufficientFunds, "token account %v holds %d, burn %d", source, src.Amount, amount)
	}
	src.Amount -= amount
	mt.Supply -= amount
	m.record(Call{Op: OpBurn, From: source, To: mint, Authority: authority, Amount: amount})
	return nil
}

func (m *Memory) Transfer(source, destination, authority solana.PublicKey, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.accounts[source]
	if !ok {
		return errors.Wrapf(reverts.ErrInvalidTokenAccount, "token account %v not found", source)
	}
	dst, err := m.account(destination, src.Mint)
	if err != nil {
		return err
	}
	if src.Owner != authority {
		return errors.Wrapf(reverts.ErrUnauthorized, "token account %v: authority %v", source, authority)
	}
	if src.Amount < amount {
		return errors.Wrapf(reverts.ErrInsufficientFunds, "token account %v holds %d, transfer %d", source, src.Amount, amount)
	}
	src.Amount -= amount
	dst.Amount += amount
	m.record(Call{Op: OpTransfer, From: source, To: destination, Authority: authority, Amount: amount})
	return nil
}
