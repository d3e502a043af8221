// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the managed token instructions: pause control,
// blacklisting, burning transfers and airdrops.
package token

import (
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/builtin/reverts"
	"github.com/VltrnOne/E9th/e9th"
	"github.com/VltrnOne/E9th/instruction"
	"github.com/VltrnOne/E9th/log"
	"github.com/VltrnOne/E9th/reward"
	"github.com/VltrnOne/E9th/state"
	"github.com/VltrnOne/E9th/xenv"
)

var logger = log.WithContext("pkg", "token")

// Token implements the current dialect token instructions over a TokenConfig.
type Token struct {
	env *xenv.Environment
}

// New create a new instance.
func New(env *xenv.Environment) *Token {
	return &Token{env: env}
}

func (t *Token) loadConfig(acc account.Info) (*state.TokenConfig, error) {
	var cfg state.TokenConfig
	if err := state.LoadOwned(acc, t.env.ProgramID(), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (t *Token) loadBlacklist(acc account.Info) (*state.Blacklist, error) {
	var bl state.Blacklist
	if err := state.LoadOwned(acc, t.env.ProgramID(), &bl); err != nil {
		return nil, err
	}
	return &bl, nil
}

// requireOwner checks that authority is the signing owner.
func requireOwner(cfg *state.TokenConfig, authority account.Info) error {
	if authority.Key() != cfg.Owner {
		return errors.Wrapf(reverts.ErrInvalidAdmin, "%v is not the owner", authority.Key())
	}
	return account.RequireSigner(authority)
}

// requireManager checks that authority is the signing owner or operator.
func requireManager(cfg *state.TokenConfig, authority account.Info) error {
	if !cfg.IsManager(authority.Key()) {
		return errors.Wrapf(reverts.ErrInvalidAdmin, "%v is neither owner nor operator", authority.Key())
	}
	return account.RequireSigner(authority)
}

func requireNotBlacklisted(bl *state.Blacklist, keys ...account.Info) error {
	for _, acc := range keys {
		if bl.Contains(acc.Key()) {
			return errors.Wrapf(reverts.ErrAccountBlacklisted, "%v", acc.Key())
		}
	}
	return nil
}

// Initialize provisions and writes the token config and an empty blacklist.
//
// Accounts: config(w), blacklist(w), payer(s), mint, system program.
func (t *Token) Initialize(accounts []account.Info, ins *instruction.Initialize) error {
	infos, err := account.NewIter(accounts).NextN(5)
	if err != nil {
		return err
	}
	cfgAcc, blAcc, payer, mint := infos[0], infos[1], infos[2], infos[3]

	if uint64(ins.BurnRateBasisPoints) > e9th.BasisPoints {
		return errors.Wrapf(reverts.ErrInvalidAmount, "burn rate %d bps", ins.BurnRateBasisPoints)
	}
	if err := account.RequireSigner(payer); err != nil {
		return err
	}
	for _, acc := range []account.Info{cfgAcc, blAcc} {
		if err := account.RequireWritable(acc); err != nil {
			return err
		}
		if !acc.DataIsEmpty() {
			return errors.Wrapf(reverts.ErrAccountAlreadyInitialized, "account %v", acc.Key())
		}
	}
	_, cfgBump, err := e9th.TokenConfigAddress(t.env.ProgramID())
	if err != nil {
		return errors.Wrap(err, "derive token config address")
	}
	_, blBump, err := e9th.BlacklistAddress(t.env.ProgramID())
	if err != nil {
		return errors.Wrap(err, "derive blacklist address")
	}

	if err := t.env.CreateAccount(payer, cfgAcc, state.TokenConfigSize); err != nil {
		return err
	}
	if err := t.env.CreateAccount(payer, blAcc, state.BlacklistSize); err != nil {
		return err
	}
	cfg := state.NewTokenConfig(ins.Owner, ins.Operator, ins.Treasury, mint.Key(), ins.BurnRateBasisPoints, cfgBump)
	if err := state.Store(cfgAcc, cfg); err != nil {
		return err
	}
	if err := state.Store(blAcc, &state.Blacklist{Bump: blBump}); err != nil {
		return err
	}
	logger.Info("token initialized", "owner", cfg.Owner, "operator", cfg.Operator,
		"treasury", cfg.Treasury, "burn_rate", cfg.BurnRateBasisPoints)
	return nil
}

// SetPause halts or resumes transfers and airdrops.
//
// Accounts: config(w), owner(s).
func (t *Token) SetPause(accounts []account.Info, ins *instruction.SetPause) error {
	infos, err := account.NewIter(accounts).NextN(2)
	if err != nil {
		return err
	}
	cfgAcc, authority := infos[0], infos[1]
	cfg, err := t.loadConfig(cfgAcc)
	if err != nil {
		return err
	}
	if err := requireOwner(cfg, authority); err != nil {
		return err
	}
	cfg.IsPaused = ins.Pause
	if err := state.Store(cfgAcc, cfg); err != nil {
		return err
	}
	logger.Info("pause set", "paused", cfg.IsPaused)
	return nil
}

// ModifyBlacklist adds or removes an identity. Adding a present identity
// and removing an absent one are no-ops.
//
// Accounts: config, blacklist(w), owner or operator(s).
func (t *Token) ModifyBlacklist(accounts []account.Info, ins *instruction.ModifyBlacklist) error {
	infos, err := account.NewIter(accounts).NextN(3)
	if err != nil {
		return err
	}
	cfgAcc, blAcc, authority := infos[0], infos[1], infos[2]
	cfg, err := t.loadConfig(cfgAcc)
	if err != nil {
		return err
	}
	if err := requireManager(cfg, authority); err != nil {
		return err
	}
	bl, err := t.loadBlacklist(blAcc)
	if err != nil {
		return err
	}
	if ins.Add {
		if err := bl.Add(ins.Account); err != nil {
			return err
		}
	} else {
		bl.Remove(ins.Account)
	}
	if err := state.Store(blAcc, bl); err != nil {
		return err
	}
	logger.Info("blacklist modified", "account", ins.Account, "add", ins.Add, "size", len(bl.Accounts))
	return nil
}

// Transfer moves amount from source to destination, burning the configured
// share of it on the way.
//
// Accounts: config(w), blacklist, source token(w), destination token(w),
// authority(s), mint(w), token program.
func (t *Token) Transfer(accounts []account.Info, ins *instruction.Transfer) error {
	infos, err := account.NewIter(accounts).NextN(7)
	if err != nil {
		return err
	}
	cfgAcc, blAcc, src, dst, authority, mint := infos[0], infos[1], infos[2], infos[3], infos[4], infos[5]
	cfg, err := t.loadConfig(cfgAcc)
	if err != nil {
		return err
	}
	if err := account.RequireSigner(authority); err != nil {
		return err
	}
	if cfg.IsPaused {
		return errors.Wrap(reverts.ErrTokenPaused, "transfer")
	}
	if ins.Amount == 0 {
		return errors.Wrap(reverts.ErrInvalidAmount, "zero amount")
	}
	if mint.Key() != cfg.Mint {
		return errors.Wrapf(reverts.ErrInvalidMint, "mint %v, want %v", mint.Key(), cfg.Mint)
	}
	bl, err := t.loadBlacklist(blAcc)
	if err != nil {
		return err
	}
	if err := requireNotBlacklisted(bl, authority, src, dst); err != nil {
		return err
	}

	burn := reward.BurnAmount(ins.Amount, cfg.BurnRateBasisPoints)
	if err := t.env.Tokens().Transfer(src.Key(), dst.Key(), authority.Key(), ins.Amount-burn); err != nil {
		return errors.WithMessage(err, "transfer")
	}
	if burn > 0 {
		if err := t.env.Tokens().Burn(src.Key(), mint.Key(), authority.Key(), burn); err != nil {
			return errors.WithMessage(err, "burn")
		}
		cfg.TotalSupply = reward.SaturatingSub(cfg.TotalSupply, burn)
		if err := state.Store(cfgAcc, cfg); err != nil {
			return err
		}
	}
	logger.Debug("transferred", "from", src.Key(), "to", dst.Key(), "amount", ins.Amount-burn, "burned", burn)
	return nil
}

// Airdrop mints amounts[i] to recipients[i]. Every recipient and amount is
// validated before the first token is minted.
//
// Accounts: config(w), blacklist, owner or operator(s), mint(w), token
// program. Recipients are token accounts addressed by key through the
// token ledger, so they take no account slot.
func (t *Token) Airdrop(accounts []account.Info, ins *instruction.Airdrop) error {
	infos, err := account.NewIter(accounts).NextN(5)
	if err != nil {
		return err
	}
	cfgAcc, blAcc, authority, mint := infos[0], infos[1], infos[2], infos[3]
	cfg, err := t.loadConfig(cfgAcc)
	if err != nil {
		return err
	}
	if err := requireManager(cfg, authority); err != nil {
		return err
	}
	if cfg.IsPaused {
		return errors.Wrap(reverts.ErrTokenPaused, "airdrop")
	}
	if mint.Key() != cfg.Mint {
		return errors.Wrapf(reverts.ErrInvalidMint, "mint %v, want %v", mint.Key(), cfg.Mint)
	}
	if len(ins.Recipients) != len(ins.Amounts) {
		return errors.Wrapf(reverts.ErrInvalidInstruction, "%d recipients, %d amounts", len(ins.Recipients), len(ins.Amounts))
	}
	if len(ins.Recipients) == 0 {
		return errors.Wrap(reverts.ErrInvalidAmount, "empty airdrop")
	}
	bl, err := t.loadBlacklist(blAcc)
	if err != nil {
		return err
	}
	for i, recipient := range ins.Recipients {
		if ins.Amounts[i] == 0 {
			return errors.Wrapf(reverts.ErrInvalidAmount, "zero amount for %v", recipient)
		}
		if bl.Contains(recipient) {
			return errors.Wrapf(reverts.ErrAccountBlacklisted, "%v", recipient)
		}
	}
	total, ok := reward.Sum(ins.Amounts)
	if !ok {
		return errors.Wrap(reverts.ErrMathOverflow, "airdrop total")
	}

	for i, recipient := range ins.Recipients {
		if err := t.env.Tokens().MintTo(cfg.Mint, recipient, cfg.Owner, ins.Amounts[i]); err != nil {
			return errors.WithMessagef(err, "airdrop to %v", recipient)
		}
	}
	cfg.TotalSupply = reward.SaturatingAdd(cfg.TotalSupply, total)
	if err := state.Store(cfgAcc, cfg); err != nil {
		return err
	}
	logger.Info("airdropped", "recipients", len(ins.Recipients), "total", total)
	return nil
}
