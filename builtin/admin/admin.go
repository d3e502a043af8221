// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin implements the single-admin ledger operations: setup,
// issuance and governance of the staking parameters.
package admin

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

var logger = log.WithContext("pkg", "admin")

// Admin implements the legacy admin instructions over a LedgerConfig.
type Admin struct {
	env *xenv.Environment
}

// New create a new instance.
func New(env *xenv.Environment) *Admin {
	return &Admin{env: env}
}

// CheckPeriods validates a [min, max] stake period range.
func CheckPeriods(minPeriod, maxPeriod uint64) error {
	if minPeriod < e9th.MinStakePeriodFloor {
		return errors.Wrapf(reverts.ErrStakePeriodTooShort, "min stake period %d", minPeriod)
	}
	if maxPeriod > e9th.MaxStakePeriodCap {
		return errors.Wrapf(reverts.ErrStakePeriodTooLong, "max stake period %d", maxPeriod)
	}
	if minPeriod > maxPeriod {
		return errors.Wrapf(reverts.ErrInvalidStakePeriod, "min %d > max %d", minPeriod, maxPeriod)
	}
	return nil
}

// loadAuthorized loads the config and checks that admin is its signing admin.
func (a *Admin) loadAuthorized(cfgAcc, admin account.Info) (*state.LedgerConfig, error) {
	var cfg state.LedgerConfig
	if err := state.LoadOwned(cfgAcc, a.env.ProgramID(), &cfg); err != nil {
		return nil, err
	}
	if cfg.Admin != admin.Key() {
		return nil, errors.Wrapf(reverts.ErrInvalidAdmin, "%v is not the admin", admin.Key())
	}
	if err := account.RequireSigner(admin); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Initialize provisions and writes the ledger config.
//
// Accounts: config(w), admin(s), mint(w), system program, token program.
func (a *Admin) Initialize(accounts []account.Info, ins *instruction.LegacyInitialize) error {
	infos, err := account.NewIter(accounts).NextN(5)
	if err != nil {
		return err
	}
	cfgAcc, admin, mint := infos[0], infos[1], infos[2]

	if err := account.RequireWritable(cfgAcc); err != nil {
		return err
	}
	if err := account.RequireSigner(admin); err != nil {
		return err
	}
	if !cfgAcc.DataIsEmpty() {
		return errors.Wrapf(reverts.ErrAccountAlreadyInitialized, "config %v", cfgAcc.Key())
	}
	if err := CheckPeriods(ins.MinStakePeriod, ins.MaxStakePeriod); err != nil {
		return err
	}
	_, bump, err := e9th.ProgramStateAddress(a.env.ProgramID())
	if err != nil {
		return errors.Wrap(err, "derive program state address")
	}
	if err := a.env.CreateAccount(admin, cfgAcc, state.LedgerConfigSize); err != nil {
		return err
	}

	cfg := &state.LedgerConfig{
		Admin: admin.Key(),
		Mint:  mint.Key(),
		Staking: state.Staking{
			TotalSupply:    ins.TotalSupply,
			StakingEnabled: true,
			RewardRate:     ins.RewardRate,
			MinStakePeriod: ins.MinStakePeriod,
			MaxStakePeriod: ins.MaxStakePeriod,
		},
		Bump: bump,
	}
	if err := state.Store(cfgAcc, cfg); err != nil {
		return err
	}
	logger.Info("program initialized", "admin", cfg.Admin, "mint", cfg.Mint, "supply", cfg.TotalSupply)
	return nil
}

// issuance holds the accounts shared by Mint and Burn.
type issuance struct {
	cfgAcc, admin, mint, holder account.Info
	cfg                         *state.LedgerConfig
}

func (a *Admin) loadIssuance(accounts []account.Info, amount uint64) (*issuance, error) {
	infos, err := account.NewIter(accounts).NextN(5)
	if err != nil {
		return nil, err
	}
	iss := &issuance{cfgAcc: infos[0], admin: infos[1], mint: infos[2], holder: infos[3]}
	if iss.cfg, err = a.loadAuthorized(iss.cfgAcc, iss.admin); err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, errors.Wrap(reverts.ErrInvalidAmount, "zero amount")
	}
	if iss.mint.Key() != iss.cfg.Mint {
		return nil, errors.Wrapf(reverts.ErrInvalidMint, "mint %v, want %v", iss.mint.Key(), iss.cfg.Mint)
	}
	return iss, nil
}

// Mint issues tokens to a destination token account.
//
// Accounts: config(w), admin(s), mint(w), destination(w), token program.
func (a *Admin) Mint(accounts []account.Info, ins *instruction.LegacyMint) error {
	iss, err := a.loadIssuance(accounts, ins.Amount)
	if err != nil {
		return err
	}
	if err := a.env.Tokens().MintTo(iss.mint.Key(), iss.holder.Key(), iss.admin.Key(), ins.Amount); err != nil {
		return errors.WithMessage(err, "mint to")
	}
	iss.cfg.TotalSupply = reward.SaturatingAdd(iss.cfg.TotalSupply, ins.Amount)
	if err := state.Store(iss.cfgAcc, iss.cfg); err != nil {
		return err
	}
	logger.Info("minted tokens", "amount", ins.Amount, "destination", iss.holder.Key())
	return nil
}

// Burn destroys tokens held by a source token account.
//
// Accounts: config(w), admin(s), mint(w), source(w), token program.
func (a *Admin) Burn(accounts []account.Info, ins *instruction.LegacyBurn) error {
	iss, err := a.loadIssuance(accounts, ins.Amount)
	if err != nil {
		return err
	}
	if err := a.env.Tokens().Burn(iss.holder.Key(), iss.mint.Key(), iss.admin.Key(), ins.Amount); err != nil {
		return errors.WithMessage(err, "burn")
	}
	iss.cfg.TotalSupply = reward.SaturatingSub(iss.cfg.TotalSupply, ins.Amount)
	if err := state.Store(iss.cfgAcc, iss.cfg); err != nil {
		return err
	}
	logger.Info("burned tokens", "amount", ins.Amount, "source", iss.holder.Key())
	return nil
}

// UpdateSettings applies the fields in payload order to a working copy and
// writes it only when every field and the resulting range are valid.
//
// Accounts: config(w), admin(s).
func (a *Admin) UpdateSettings(accounts []account.Info, ins *instruction.LegacyUpdateSettings) error {
	infos, err := account.NewIter(accounts).NextN(2)
	if err != nil {
		return err
	}
	cfgAcc, admin := infos[0], infos[1]
	cfg, err := a.loadAuthorized(cfgAcc, admin)
	if err != nil {
		return err
	}

	work := cfg.Staking
	for _, f := range ins.Fields {
		switch v := f.(type) {
		case instruction.RewardRate:
			work.RewardRate = uint16(v)
		case instruction.MinStakePeriod:
			if uint64(v) < e9th.MinStakePeriodFloor {
				return errors.Wrapf(reverts.ErrStakePeriodTooShort, "min stake period %d", uint64(v))
			}
			work.MinStakePeriod = uint64(v)
		case instruction.MaxStakePeriod:
			if uint64(v) > e9th.MaxStakePeriodCap {
				return errors.Wrapf(reverts.ErrStakePeriodTooLong, "max stake period %d", uint64(v))
			}
			work.MaxStakePeriod = uint64(v)
		case instruction.StakingEnabled:
			work.StakingEnabled = bool(v)
		default:
			return errors.Wrapf(reverts.ErrInvalidInstruction, "settings field %v", f.Tag())
		}
	}
	if work.MinStakePeriod > work.MaxStakePeriod {
		return errors.Wrapf(reverts.ErrInvalidStakePeriod, "min %d > max %d", work.MinStakePeriod, work.MaxStakePeriod)
	}

	cfg.Staking = work
	if err := state.Store(cfgAcc, cfg); err != nil {
		return err
	}
	logger.Info("settings updated", "fields", len(ins.Fields), "rate", work.RewardRate,
		"min", work.MinStakePeriod, "max", work.MaxStakePeriod, "enabled", work.StakingEnabled)
	return nil
}

// TransferAdmin hands the admin role over, with no acceptance step.
//
// Accounts: config(w), current admin(s).
func (a *Admin) TransferAdmin(accounts []account.Info, ins *instruction.LegacyTransferAdmin) error {
	infos, err := account.NewIter(accounts).NextN(2)
	if err != nil {
		return err
	}
	cfgAcc, admin := infos[0], infos[1]
	cfg, err := a.loadAuthorized(cfgAcc, admin)
	if err != nil {
		return err
	}
	cfg.Admin = ins.NewAdmin
	if err := state.Store(cfgAcc, cfg); err != nil {
		return err
	}
	logger.Info("admin transferred", "from", admin.Key(), "to", ins.NewAdmin)
	return nil
}
