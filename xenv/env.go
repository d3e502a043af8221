// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package xenv is the environment an instruction executes in: the program
// identity plus the host capabilities handlers may call.
package xenv

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/account"
)

// Clock reports the current time basis.
type Clock interface {
	Epoch() uint64
	UnixTimestamp() uint64
}

// Rent is the rent-exemption oracle.
type Rent interface {
	MinimumBalance(space uint64) uint64
}

// Provisioner allocates a buffer of space bytes for target, funds it with
// lamports taken from payer and assigns it to owner.
type Provisioner interface {
	CreateAccount(payer, target account.Info, lamports, space uint64, owner solana.PublicKey) error
}

// TokenLedger is the token primitive handlers move tokens through.
type TokenLedger interface {
	MintTo(mint, destination, authority solana.PublicKey, amount uint64) error
	Burn(source, mint, authority solana.PublicKey, amount uint64) error
	Transfer(source, destination, authority solana.PublicKey, amount uint64) error
}

// Environment an env to execute an instruction.
type Environment struct {
	programID   solana.PublicKey
	clock       Clock
	rent        Rent
	provisioner Provisioner
	tokens      TokenLedger
}

// New create a new env.
func New(
	programID solana.PublicKey,
	clock Clock,
	rent Rent,
	provisioner Provisioner,
	tokens TokenLedger,
) *Environment {
	return &Environment{
		programID:   programID,
		clock:       clock,
		rent:        rent,
		provisioner: provisioner,
		tokens:      tokens,
	}
}

func (env *Environment) ProgramID() solana.PublicKey { return env.programID }
func (env *Environment) Clock() Clock                { return env.clock }
func (env *Environment) Rent() Rent                  { return env.rent }
func (env *Environment) Tokens() TokenLedger         { return env.tokens }

// CreateAccount provisions a rent-exempt buffer of space bytes owned by
// the program.
func (env *Environment) CreateAccount(payer, target account.Info, space uint64) error {
	lamports := env.rent.MinimumBalance(space)
	if err := env.provisioner.CreateAccount(payer, target, lamports, space, env.programID); err != nil {
		return errors.WithMessagef(err, "create account %v", target.Key())
	}
	return nil
}
