// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/builtin/reverts"
	"github.com/VltrnOne/E9th/e9th"
	"github.com/VltrnOne/E9th/instruction"
	"github.com/VltrnOne/E9th/reward"
	"github.com/VltrnOne/E9th/state"
)

// lock holds the accounts shared by the enhanced staking instructions.
type lock struct {
	cfgAcc, entryAcc, staker, stakerToken, treasuryToken account.Info
	cfg                                                  state.TokenConfig
}

func (s *Staker) loadLock(accounts []account.Info) (*lock, error) {
	infos, err := account.NewIter(accounts).NextN(6)
	if err != nil {
		return nil, err
	}
	l := &lock{
		cfgAcc:        infos[0],
		entryAcc:      infos[1],
		staker:        infos[2],
		stakerToken:   infos[3],
		treasuryToken: infos[4],
	}
	if err := state.LoadOwned(l.cfgAcc, s.env.ProgramID(), &l.cfg); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Staker) loadEntry(acc account.Info) (*state.StakeEntry, error) {
	if acc.DataIsEmpty() {
		return nil, errors.Wrapf(reverts.ErrAccountNotInitialized, "stake entry %v", acc.Key())
	}
	var entry state.StakeEntry
	if err := state.LoadOwned(acc, s.env.ProgramID(), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Staker) loadOwnedEntry(l *lock) (*state.StakeEntry, error) {
	if err := account.RequireSigner(l.staker); err != nil {
		return nil, err
	}
	entry, err := s.loadEntry(l.entryAcc)
	if err != nil {
		return nil, err
	}
	if entry.Staker != l.staker.Key() {
		return nil, errors.Wrapf(reverts.ErrUnauthorized, "stake entry %v owned by %v", l.entryAcc.Key(), entry.Staker)
	}
	return entry, nil
}

// mintRewards pays amount of new tokens to the staker and accounts them in
// the total supply.
func (s *Staker) mintRewards(l *lock, amount uint64) error {
	if err := s.env.Tokens().MintTo(l.cfg.Mint, l.stakerToken.Key(), l.cfg.Owner, amount); err != nil {
		return errors.WithMessage(err, "mint rewards")
	}
	l.cfg.TotalSupply = reward.SaturatingAdd(l.cfg.TotalSupply, amount)
	return nil
}

// LockStake moves amount into the treasury under a stake entry locked for
// the minimum stake period.
//
// Accounts: config(w), entry(w), staker(s), staker token(w), treasury token(w), token program.
func (s *Staker) LockStake(accounts []account.Info, ins *instruction.Stake) error {
	l, err := s.loadLock(accounts)
	if err != nil {
		return err
	}
	if !l.cfg.StakingEnabled {
		return errors.Wrap(reverts.ErrInvalidStakePeriod, "staking disabled")
	}
	if err := account.RequireSigner(l.staker); err != nil {
		return err
	}
	if ins.Amount == 0 {
		return errors.Wrap(reverts.ErrInvalidAmount, "zero amount")
	}
	if err := account.RequireWritable(l.entryAcc); err != nil {
		return err
	}
	entry, err := s.loadEntry(l.entryAcc)
	if err != nil {
		return err
	}
	switch entry.Status() {
	case state.StakeActive:
		return errors.Wrapf(reverts.ErrAccountAlreadyInitialized, "stake entry %v is active", l.entryAcc.Key())
	case state.StakeClosed:
		if entry.Staker != l.staker.Key() {
			return errors.Wrapf(reverts.ErrUnauthorized, "stake entry %v owned by %v", l.entryAcc.Key(), entry.Staker)
		}
	}
	_, bump, err := e9th.StakeAddress(s.env.ProgramID(), l.staker.Key(), e9th.SeedStakeEntry)
	if err != nil {
		return errors.Wrap(err, "derive stake entry address")
	}
	if err := s.env.Tokens().Transfer(l.stakerToken.Key(), l.treasuryToken.Key(), l.staker.Key(), ins.Amount); err != nil {
		return errors.WithMessage(err, "transfer to treasury")
	}

	now := s.env.Clock().UnixTimestamp()
	period := l.cfg.MinStakePeriod
	*entry = state.StakeEntry{
		Staker:              l.staker.Key(),
		Amount:              ins.Amount,
		LastRewardTimestamp: now,
		StartEpoch:          s.env.Clock().Epoch(),
		Period:              period,
		LockTime:            reward.LockTime(now, period),
		Bump:                bump,
	}
	if err := state.Store(l.entryAcc, entry); err != nil {
		return err
	}
	l.cfg.TotalStaked = reward.SaturatingAdd(l.cfg.TotalStaked, ins.Amount)
	if err := state.Store(l.cfgAcc, &l.cfg); err != nil {
		return err
	}
	logger.Info("stake locked", "staker", entry.Staker, "amount", entry.Amount, "until", entry.LockTime)
	return nil
}

// UnlockStake settles accrued rewards and returns amount from the treasury
// once the entry is unlocked.
//
// Accounts: config(w), entry(w), staker(s), staker token(w), treasury token(w), token program.
func (s *Staker) UnlockStake(accounts []account.Info, ins *instruction.Unstake) error {
	l, err := s.loadLock(accounts)
	if err != nil {
		return err
	}
	entry, err := s.loadOwnedEntry(l)
	if err != nil {
		return err
	}
	if ins.Amount == 0 || ins.Amount > entry.Amount {
		return errors.Wrapf(reverts.ErrInvalidAmount, "unstake %d of %d", ins.Amount, entry.Amount)
	}
	now := s.env.Clock().UnixTimestamp()
	if !reward.IsUnlocked(entry.LockTime, now) {
		return errors.Wrapf(reverts.ErrStakeLocked, "stake entry %v locked until %d, now %d", l.entryAcc.Key(), entry.LockTime, now)
	}

	pending := reward.TimeRewards(entry.Amount, entry.LastRewardTimestamp, entry.RewardsClaimed, now, l.cfg.RewardRate)
	if pending > 0 {
		if err := s.mintRewards(l, pending); err != nil {
			return err
		}
	}
	if err := s.env.Tokens().Transfer(l.treasuryToken.Key(), l.stakerToken.Key(), l.cfg.Treasury, ins.Amount); err != nil {
		return errors.WithMessage(err, "transfer from treasury")
	}

	entry.Amount -= ins.Amount
	entry.LastRewardTimestamp = now
	entry.RewardsClaimed = 0
	if err := state.Store(l.entryAcc, entry); err != nil {
		return err
	}
	l.cfg.TotalStaked = reward.SaturatingSub(l.cfg.TotalStaked, ins.Amount)
	if err := state.Store(l.cfgAcc, &l.cfg); err != nil {
		return err
	}
	logger.Info("stake unlocked", "staker", entry.Staker, "amount", ins.Amount, "rewards", pending, "remaining", entry.Amount)
	return nil
}

// ClaimAccrued mints the rewards an entry has accrued since its baseline
// and not yet been paid.
//
// Accounts: config(w), entry(w), staker(s), staker token(w), treasury token(w), token program.
func (s *Staker) ClaimAccrued(accounts []account.Info, _ *instruction.ClaimRewards) error {
	l, err := s.loadLock(accounts)
	if err != nil {
		return err
	}
	entry, err := s.loadOwnedEntry(l)
	if err != nil {
		return err
	}
	payable := reward.TimeRewards(entry.Amount, entry.LastRewardTimestamp, entry.RewardsClaimed,
		s.env.Clock().UnixTimestamp(), l.cfg.RewardRate)
	if payable == 0 {
		return errors.Wrapf(reverts.ErrInvalidAmount, "stake entry %v has no payable rewards", l.entryAcc.Key())
	}
	if err := s.mintRewards(l, payable); err != nil {
		return err
	}

	entry.RewardsClaimed = reward.SaturatingAdd(entry.RewardsClaimed, payable)
	if err := state.Store(l.entryAcc, entry); err != nil {
		return err
	}
	if err := state.Store(l.cfgAcc, &l.cfg); err != nil {
		return err
	}
	logger.Info("accrued rewards claimed", "staker", entry.Staker, "amount", payable, "claimed", entry.RewardsClaimed)
	return nil
}
