// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testenv builds execution environments and account handles for
// handler tests.
package testenv

import (
	"github.com/gagliardetto/solana-go"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/e9th"
	"github.com/VltrnOne/E9th/tokenledger"
	"github.com/VltrnOne/E9th/xenv"
)

// GenesisTimestamp is the clock's starting unix time, 2022-01-01 00:00:00 UTC.
const GenesisTimestamp = 1_640_995_200

// PayerLamports funds every signer created by Signer.
const PayerLamports = 1_000_000_000_000

// Env is an execution environment over an in-memory token ledger and a
// clock tests can move.
type Env struct {
	*xenv.Environment
	Clock  *xenv.FixedClock
	Tokens *tokenledger.Memory
}

// New creates an env for e9th.ProgramID at epoch 0.
func New() *Env {
	clock := &xenv.FixedClock{TimestampValue: GenesisTimestamp}
	tokens := tokenledger.NewMemory()
	return &Env{
		Environment: xenv.New(e9th.ProgramID, clock, xenv.DefaultRent(), xenv.SystemProvisioner{}, tokens),
		Clock:       clock,
		Tokens:      tokens,
	}
}

// SetEpoch moves the clock to epoch.
func (e *Env) SetEpoch(epoch uint64) *Env {
	e.Clock.EpochValue = epoch
	return e
}

// SetTime moves the clock to the unix time ts.
func (e *Env) SetTime(ts uint64) *Env {
	e.Clock.TimestampValue = ts
	return e
}

// Advance moves the clock forward by seconds.
func (e *Env) Advance(seconds uint64) *Env {
	e.Clock.TimestampValue += seconds
	return e
}

// Signer is a funded, signing, writable wallet.
func Signer(name string) *account.Account {
	return account.New(e9th.NamedKey(name), solana.SystemProgramID, PayerLamports, nil).AsSigner().AsWritable()
}

// Ref is a read-only, non-signing handle.
func Ref(name string) *account.Account {
	return account.New(e9th.NamedKey(name), solana.SystemProgramID, 0, nil)
}

// Blank is an unused writable account awaiting provisioning.
func Blank(name string) *account.Account {
	return account.New(e9th.NamedKey(name), solana.SystemProgramID, 0, nil).AsWritable()
}

// Provisioned is a writable zero-filled buffer of size bytes owned by the program.
func Provisioned(name string, size int) *account.Account {
	return account.New(e9th.NamedKey(name), e9th.ProgramID, 0, make([]byte, size)).AsWritable()
}

// SystemProgram is the system program handle.
func SystemProgram() *account.Account {
	return account.New(solana.SystemProgramID, solana.BPFLoaderProgramID, 1, nil)
}

// TokenProgram is the token program handle.
func TokenProgram() *account.Account {
	return account.New(solana.TokenProgramID, solana.BPFLoaderUpgradeableProgramID, 1, nil)
}

// MustMint registers a mint issued by authority and returns its writable handle.
func (e *Env) MustMint(name string, authority solana.PublicKey) *account.Account {
	key := e9th.NamedKey(name)
	if err := e.Tokens.CreateMint(key, authority); err != nil {
		panic(err)
	}
	return account.New(key, solana.TokenProgramID, 0, nil).AsWritable()
}

// MustTokenAccount registers a token account of mint held by owner and
// returns its writable handle.
func (e *Env) MustTokenAccount(name string, mint, owner solana.PublicKey) *account.Account {
	key := e9th.NamedKey(name)
	if err := e.Tokens.CreateAccount(key, mint, owner); err != nil {
		panic(err)
	}
	return account.New(key, solana.TokenProgramID, 0, nil).AsWritable()
}

// Infos converts handles into the slice handlers take.
func Infos(accs ...*account.Account) []account.Info {
	infos := make([]account.Info, len(accs))
	for i, acc := range accs {
		infos[i] = acc
	}
	return infos
}
