// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staker implements the staking instructions of both dialects: epoch
// matured stakes over the ledger config and time locked entries over the
// token config.
package staker

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

var logger = log.WithContext("pkg", "staker")

// Staker implements the staking instructions.
type Staker struct {
	env *xenv.Environment
}

// New create a new instance.
func New(env *xenv.Environment) *Staker {
	return &Staker{env: env}
}

// position holds the accounts shared by the legacy staking instructions.
type position struct {
	cfgAcc, stakeAcc, user, userToken account.Info
	cfg                               state.LedgerConfig
}

func (s *Staker) loadPosition(accounts []account.Info) (*position, error) {
	infos, err := account.NewIter(accounts).NextN(5)
	if err != nil {
		return nil, err
	}
	p := &position{cfgAcc: infos[0], stakeAcc: infos[1], user: infos[2], userToken: infos[3]}
	if err := state.LoadOwned(p.cfgAcc, s.env.ProgramID(), &p.cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// loadStake reads the stake record, treating an unprovisioned buffer as
// AccountNotInitialized.
func (s *Staker) loadStake(acc account.Info) (*state.StakeAccount, error) {
	if acc.DataIsEmpty() {
		return nil, errors.Wrapf(reverts.ErrAccountNotInitialized, "stake account %v", acc.Key())
	}
	var stake state.StakeAccount
	if err := state.LoadOwned(acc, s.env.ProgramID(), &stake); err != nil {
		return nil, err
	}
	return &stake, nil
}

// loadOwnedStake loads the stake record of a signing owner.
func (s *Staker) loadOwnedStake(p *position) (*state.StakeAccount, error) {
	if err := account.RequireSigner(p.user); err != nil {
		return nil, err
	}
	stake, err := s.loadStake(p.stakeAcc)
	if err != nil {
		return nil, err
	}
	if stake.Owner != p.user.Key() {
		return nil, errors.Wrapf(reverts.ErrUnauthorized, "stake %v owned by %v", p.stakeAcc.Key(), stake.Owner)
	}
	return stake, nil
}

// Stake opens a stake of amount for period epochs.
//
// Accounts: config(w), stake(w), user(s), user token(w), token program.
func (s *Staker) Stake(accounts []account.Info, ins *instruction.LegacyStake) error {
	p, err := s.loadPosition(accounts)
	if err != nil {
		return err
	}
	if !p.cfg.StakingEnabled {
		return errors.Wrap(reverts.ErrInvalidStakePeriod, "staking disabled")
	}
	if err := account.RequireSigner(p.user); err != nil {
		return err
	}
	if !p.cfg.AcceptsPeriod(ins.Period) {
		return errors.Wrapf(reverts.ErrInvalidStakePeriod, "period %d outside [%d, %d]",
			ins.Period, p.cfg.MinStakePeriod, p.cfg.MaxStakePeriod)
	}
	if ins.Amount == 0 {
		return errors.Wrap(reverts.ErrInvalidAmount, "zero amount")
	}
	if err := account.RequireWritable(p.stakeAcc); err != nil {
		return err
	}
	stake, err := s.loadStake(p.stakeAcc)
	if err != nil {
		return err
	}
	switch stake.Status() {
	case state.StakeActive:
		return errors.Wrapf(reverts.ErrAccountAlreadyInitialized, "stake %v is active", p.stakeAcc.Key())
	case state.StakeClosed:
		if stake.Owner != p.user.Key() {
			return errors.Wrapf(reverts.ErrUnauthorized, "stake %v owned by %v", p.stakeAcc.Key(), stake.Owner)
		}
	}
	_, bump, err := e9th.StakeAddress(s.env.ProgramID(), p.user.Key(), nil)
	if err != nil {
		return errors.Wrap(err, "derive stake address")
	}

	*stake = state.StakeAccount{
		Owner:      p.user.Key(),
		Amount:     ins.Amount,
		StartEpoch: s.env.Clock().Epoch(),
		Period:     ins.Period,
		Bump:       bump,
	}
	if err := state.Store(p.stakeAcc, stake); err != nil {
		return err
	}
	p.cfg.TotalStaked = reward.SaturatingAdd(p.cfg.TotalStaked, ins.Amount)
	if err := state.Store(p.cfgAcc, &p.cfg); err != nil {
		return err
	}
	logger.Info("staked", "owner", stake.Owner, "amount", stake.Amount, "period", stake.Period, "epoch", stake.StartEpoch)
	return nil
}

// Unstake closes a matured stake.
//
// Accounts: config(w), stake(w), user(s), user token(w), token program.
func (s *Staker) Unstake(accounts []account.Info, _ *instruction.LegacyUnstake) error {
	p, err := s.loadPosition(accounts)
	if err != nil {
		return err
	}
	stake, err := s.loadOwnedStake(p)
	if err != nil {
		return err
	}
	if stake.Amount == 0 {
		return errors.Wrapf(reverts.ErrInvalidAmount, "stake %v is closed", p.stakeAcc.Key())
	}
	epoch := s.env.Clock().Epoch()
	if !reward.IsMature(stake.StartEpoch, stake.Period, epoch) {
		return errors.Wrapf(reverts.ErrStakeNotMature, "stake %v matures at epoch %d+%d, now %d",
			p.stakeAcc.Key(), stake.StartEpoch, stake.Period, epoch)
	}

	amount := stake.Amount
	stake.Amount = 0
	if err := state.Store(p.stakeAcc, stake); err != nil {
		return err
	}
	p.cfg.TotalStaked = reward.SaturatingSub(p.cfg.TotalStaked, amount)
	if err := state.Store(p.cfgAcc, &p.cfg); err != nil {
		return err
	}
	logger.Info("unstaked", "owner", stake.Owner, "amount", amount)
	return nil
}

// ClaimRewards mints the rewards a matured stake has earned and not yet
// been paid.
//
// Accounts: config(w), stake(w), user(s), user token(w), token program.
func (s *Staker) ClaimRewards(accounts []account.Info, _ *instruction.LegacyClaimRewards) error {
	p, err := s.loadPosition(accounts)
	if err != nil {
		return err
	}
	stake, err := s.loadOwnedStake(p)
	if err != nil {
		return err
	}
	payable := reward.EpochRewards(stake.Amount, stake.StartEpoch, stake.Period, stake.RewardsClaimed,
		s.env.Clock().Epoch(), p.cfg.RewardRate)
	if payable == 0 {
		return errors.Wrapf(reverts.ErrInvalidAmount, "stake %v has no payable rewards", p.stakeAcc.Key())
	}
	if err := s.env.Tokens().MintTo(p.cfg.Mint, p.userToken.Key(), p.cfg.Admin, payable); err != nil {
		return errors.WithMessage(err, "mint rewards")
	}

	stake.RewardsClaimed = reward.SaturatingAdd(stake.RewardsClaimed, payable)
	if err := state.Store(p.stakeAcc, stake); err != nil {
		return err
	}
	p.cfg.TotalSupply = reward.SaturatingAdd(p.cfg.TotalSupply, payable)
	if err := state.Store(p.cfgAcc, &p.cfg); err != nil {
		return err
	}
	logger.Info("rewards claimed", "owner", stake.Owner, "amount", payable, "claimed", stake.RewardsClaimed)
	return nil
}
