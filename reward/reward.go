// Copyright (c) 2025 The E9th developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward computes staking rewards and the arithmetic around them.
// Products are taken in 256 bits and narrowed to u64 with saturation, so no
// input can overflow.
package reward

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/VltrnOne/E9th/e9th"
)

var (
	basisPoints        = uint256.NewInt(e9th.BasisPoints)
	basisPointsPerYear = new(uint256.Int).Mul(basisPoints, uint256.NewInt(e9th.SecondsPerYear))
)

// narrow converts v to u64, saturating at MaxUint64.
func narrow(v *uint256.Int) uint64 {
	if !v.IsUint64() {
		return math.MaxUint64
	}
	return v.Uint64()
}

// payable returns total - claimed floored at zero, saturated to u64.
func payable(total *uint256.Int, claimed uint64) uint64 {
	c := uint256.NewInt(claimed)
	if total.Cmp(c) <= 0 {
		return 0
	}
	return narrow(total.Sub(total, c))
}

// EpochRewards is the payable reward of a legacy stake at currentEpoch.
// Nothing is payable before the stake has run for period whole epochs;
// afterwards the full period is paid once, less what was claimed.
func EpochRewards(amount, startEpoch, period, rewardsClaimed, currentEpoch uint64, rate uint16) uint64 {
	if currentEpoch <= startEpoch || currentEpoch-startEpoch < period {
		return 0
	}
	perEpoch := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(uint64(rate)))
	perEpoch.Div(perEpoch, basisPoints)
	total := perEpoch.Mul(perEpoch, uint256.NewInt(period))
	return payable(total, rewardsClaimed)
}

// TimeRewards is the payable reward of an enhanced stake at now (unix
// seconds), accruing every second since lastRewardTimestamp.
func TimeRewards(amount, lastRewardTimestamp, rewardsClaimed, now uint64, rate uint16) uint64 {
	if now <= lastRewardTimestamp {
		return 0
	}
	perSecond := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(uint64(rate)))
	perSecond.Div(perSecond, basisPointsPerYear)
	total := perSecond.Mul(perSecond, uint256.NewInt(now-lastRewardTimestamp))
	return payable(total, rewardsClaimed)
}

// IsMature reports whether currentEpoch >= startEpoch + period.
func IsMature(startEpoch, period, currentEpoch uint64) bool {
	return currentEpoch >= startEpoch && currentEpoch-startEpoch >= period
}

// IsUnlocked reports whether now >= lockTime.
func IsUnlocked(lockTime, now uint64) bool {
	return now >= lockTime
}

// BurnAmount is the share of amount burnt at bps basis points.
func BurnAmount(amount uint64, bps uint16) uint64 {
	v := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(uint64(bps)))
	return narrow(v.Div(v, basisPoints))
}

// LockTime is the unlock time of a stake of period epochs opened at now.
func LockTime(now, period uint64) uint64 {
	v := new(uint256.Int).Mul(uint256.NewInt(period), uint256.NewInt(e9th.EpochDuration))
	return SaturatingAdd(now, narrow(v))
}

// Sum adds amounts, reporting false if the total does not fit in u64.
func Sum(amounts []uint64) (uint64, bool) {
	var total uint256.Int
	for _, a := range amounts {
		total.Add(&total, uint256.NewInt(a))
	}
	if !total.IsUint64() {
		return 0, false
	}
	return total.Uint64(), true
}

func SaturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
