// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/VltrnOne/E9th/layout"
)

const (
	StakeAccountSize = 32 + 8 + 8 + 8 + 8 + 1
	StakeEntrySize   = 32 + 8 + 8 + 8 + 8 + 8 + 8 + 1
)

// StakeStatus is the lifecycle state of a stake record.
type StakeStatus int

const (
	StakeUninitialized StakeStatus = iota // provisioned but never written
	StakeActive                           // holds a positive amount
	StakeClosed                           // written, amount back to zero
)

func (s StakeStatus) String() string {
	switch s {
	case StakeUninitialized:
		return "uninitialized"
	case StakeActive:
		return "active"
	case StakeClosed:
		return "closed"
	}
	return "unknown"
}

func stakeStatus(owner solana.PublicKey, amount uint64) StakeStatus {
	switch {
	case amount > 0:
		return StakeActive
	case owner.IsZero():
		return StakeUninitialized
	default:
		return StakeClosed
	}
}

// StakeAccount is a legacy stake, rewarded per epoch once mature.
type StakeAccount struct {
	Owner          solana.PublicKey
	Amount         uint64
	StartEpoch     uint64
	Period         uint64 // epochs
	RewardsClaimed uint64
	Bump           uint8
}

var _ Record = (*StakeAccount)(nil)

func (s *StakeAccount) Status() StakeStatus { return stakeStatus(s.Owner, s.Amount) }

func (s *StakeAccount) Size() int { return StakeAccountSize }

func (s *StakeAccount) MarshalWithEncoder(enc *bin.Encoder) error {
	w := layout.NewWriter(enc)
	w.PublicKey(s.Owner)
	w.U64(s.Amount)
	w.U64(s.StartEpoch)
	w.U64(s.Period)
	w.U64(s.RewardsClaimed)
	w.U8(s.Bump)
	return w.Err()
}

func (s *StakeAccount) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := layout.NewReader(dec)
	s.Owner = r.PublicKey()
	s.Amount = r.U64()
	s.StartEpoch = r.U64()
	s.Period = r.U64()
	s.RewardsClaimed = r.U64()
	s.Bump = r.U8()
	return r.Err()
}

// StakeEntry is an enhanced stake, rewarded per second and locked until
// LockTime.
type StakeEntry struct {
	Staker              solana.PublicKey
	Amount              uint64
	LastRewardTimestamp uint64
	StartEpoch          uint64
	Period              uint64 // epochs
	RewardsClaimed      uint64
	LockTime            uint64 // unix seconds
	Bump                uint8
}

var _ Record = (*StakeEntry)(nil)

func (s *StakeEntry) Status() StakeStatus { return stakeStatus(s.Staker, s.Amount) }

func (s *StakeEntry) Size() int { return StakeEntrySize }

func (s *StakeEntry) MarshalWithEncoder(enc *bin.Encoder) error {
	w := layout.NewWriter(enc)
	w.PublicKey(s.Staker)
	w.U64(s.Amount)
	w.U64(s.LastRewardTimestamp)
	w.U64(s.StartEpoch)
	w.U64(s.Period)
	w.U64(s.RewardsClaimed)
	w.U64(s.LockTime)
	w.U8(s.Bump)
	return w.Err()
}

func (s *StakeEntry) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := layout.NewReader(dec)
	s.Staker = r.PublicKey()
	s.Amount = r.U64()
	s.LastRewardTimestamp = r.U64()
	s.StartEpoch = r.U64()
	s.Period = r.U64()
	s.RewardsClaimed = r.U64()
	s.LockTime = r.U64()
	s.Bump = r.U8()
	return r.Err()
}
