// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package processor is the program entrypoint: it decodes instruction data
// and routes it to the handler of the decoded variant.
package processor

import (
	"time"

	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/builtin/admin"
	"github.com/VltrnOne/E9th/builtin/reverts"
	"github.com/VltrnOne/E9th/builtin/staker"
	"github.com/VltrnOne/E9th/builtin/token"
	"github.com/VltrnOne/E9th/instruction"
	"github.com/VltrnOne/E9th/log"
	"github.com/VltrnOne/E9th/xenv"
)

var logger = log.WithContext("pkg", "processor")

// Processor dispatches instructions of both dialects.
type Processor struct {
	env    *xenv.Environment
	admin  *admin.Admin
	staker *staker.Staker
	token  *token.Token
}

// New is the Processor's Factory.
func New(env *xenv.Environment) *Processor {
	return &Processor{
		env:    env,
		admin:  admin.New(env),
		staker: staker.New(env),
		token:  token.New(env),
	}
}

// Env returns the environment instructions execute in.
func (p *Processor) Env() *xenv.Environment {
	return p.env
}

// Process decodes data and executes it against accounts.
func (p *Processor) Process(accounts []account.Info, data []byte) error {
	ins, err := instruction.Decode(data)
	if err != nil {
		metricInstructionCount().AddWithLabel(1, map[string]string{"name": "unknown", "dialect": "unknown", "outcome": outcome(err)})
		return err
	}
	return p.Execute(accounts, ins)
}

// Execute runs a decoded instruction against accounts.
func (p *Processor) Execute(accounts []account.Info, ins instruction.Instruction) error {
	logger.Info("Instruction: " + ins.Name())

	start := time.Now()
	err := p.route(accounts, ins)
	metricInstructionDuration().Observe(time.Since(start).Microseconds())
	metricInstructionCount().AddWithLabel(1, map[string]string{
		"name":    ins.Name(),
		"dialect": ins.Dialect().String(),
		"outcome": outcome(err),
	})

	if err != nil {
		logger.Debug("instruction failed", "name", ins.Name(), "err", err)
	}
	return err
}

func (p *Processor) route(accounts []account.Info, ins instruction.Instruction) error {
	switch ins := ins.(type) {
	case *instruction.Initialize:
		return p.token.Initialize(accounts, ins)
	case *instruction.SetPause:
		return p.token.SetPause(accounts, ins)
	case *instruction.ModifyBlacklist:
		return p.token.ModifyBlacklist(accounts, ins)
	case *instruction.Transfer:
		return p.token.Transfer(accounts, ins)
	case *instruction.Airdrop:
		return p.token.Airdrop(accounts, ins)
	case *instruction.Stake:
		return p.staker.LockStake(accounts, ins)
	case *instruction.Unstake:
		return p.staker.UnlockStake(accounts, ins)
	case *instruction.ClaimRewards:
		return p.staker.ClaimAccrued(accounts, ins)

	case *instruction.LegacyInitialize:
		return p.admin.Initialize(accounts, ins)
	case *instruction.LegacyMint:
		return p.admin.Mint(accounts, ins)
	case *instruction.LegacyBurn:
		return p.admin.Burn(accounts, ins)
	case *instruction.LegacyStake:
		return p.staker.Stake(accounts, ins)
	case *instruction.LegacyUnstake:
		return p.staker.Unstake(accounts, ins)
	case *instruction.LegacyClaimRewards:
		return p.staker.ClaimRewards(accounts, ins)
	case *instruction.LegacyUpdateSettings:
		return p.admin.UpdateSettings(accounts, ins)
	case *instruction.LegacyTransferAdmin:
		return p.admin.TransferAdmin(accounts, ins)
	}
	return errors.Wrapf(reverts.ErrInvalidInstruction, "unroutable instruction %T", ins)
}

// outcome labels err by its revert code.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code, ok := reverts.CodeOf(err); ok {
		return code.String()
	}
	return "error"
}
