// Copyright (c) 2025 The E9th developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpochRewards(t *testing.T) {
	// 1000 staked for 30 epochs from epoch 100 at 1% per epoch
	tests := []struct {
		current uint64
		claimed uint64
		want    uint64
	}{
		{90, 0, 0},
		{100, 0, 0},
		{129, 0, 0},
		{130, 0, 300},
		{500, 0, 300},
		{130, 100, 200},
		{130, 300, 0},
		{130, 1000, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EpochRewards(1000, 100, 30, tt.claimed, tt.current, 100), "current %d claimed %d", tt.current, tt.claimed)
	}
}

func TestEpochRewardsMonotonic(t *testing.T) {
	var last uint64
	for current := uint64(0); current < 200; current++ {
		got := EpochRewards(12345, 50, 20, 0, current, 333)
		assert.GreaterOrEqual(t, got, last)
		if current < 70 {
			assert.Zero(t, got)
		}
		last = got
	}
}

func TestEpochRewardsSaturates(t *testing.T) {
	got := EpochRewards(math.MaxUint64, 0, math.MaxUint64, 0, math.MaxUint64, math.MaxUint16)
	assert.Equal(t, uint64(math.MaxUint64), got)

	// period of zero pays nothing
	assert.Zero(t, EpochRewards(1000, 1, 0, 0, 5, 100))
}

func TestTimeRewards(t *testing.T) {
	// one token unit per second at 1%
	amount := uint64(3_153_600_000)
	assert.Equal(t, uint64(3600), TimeRewards(amount, 1000, 0, 4600, 100))
	assert.Equal(t, uint64(3500), TimeRewards(amount, 1000, 100, 4600, 100))
	assert.Zero(t, TimeRewards(amount, 1000, 0, 1000, 100))
	assert.Zero(t, TimeRewards(amount, 1000, 0, 999, 100))

	// small stakes round down to nothing
	assert.Zero(t, TimeRewards(1000, 1_640_995_200, 0, 1_640_995_200+3600, 100))

	got := TimeRewards(math.MaxUint64, 0, 0, math.MaxUint64, math.MaxUint16)
	assert.Equal(t, uint64(math.MaxUint64), got)
}

func TestMaturity(t *testing.T) {
	assert.False(t, IsMature(100, 30, 100))
	assert.False(t, IsMature(100, 30, 129))
	assert.True(t, IsMature(100, 30, 130))
	assert.True(t, IsMature(100, 30, 131))
	assert.False(t, IsMature(100, 30, 10))

	// start + period overflows u64
	assert.False(t, IsMature(math.MaxUint64-1, 10, math.MaxUint64))

	assert.False(t, IsUnlocked(100, 99))
	assert.True(t, IsUnlocked(100, 100))
	assert.True(t, IsUnlocked(100, 101))
}

func TestBurnAmount(t *testing.T) {
	assert.Equal(t, uint64(10), BurnAmount(1000, 100))
	assert.Equal(t, uint64(0), BurnAmount(99, 100))
	assert.Equal(t, uint64(1000), BurnAmount(1000, 10000))
	assert.Equal(t, uint64(math.MaxUint64), BurnAmount(math.MaxUint64, 10000))
}

func TestLockTime(t *testing.T) {
	assert.Equal(t, uint64(1000+2*172800), LockTime(1000, 2))
	assert.Equal(t, uint64(math.MaxUint64), LockTime(1, math.MaxUint64))
}

func TestSum(t *testing.T) {
	total, ok := Sum([]uint64{1, 2, 3})
	assert.True(t, ok)
	assert.Equal(t, uint64(6), total)

	_, ok = Sum([]uint64{math.MaxUint64, 1})
	assert.False(t, ok)

	total, ok = Sum(nil)
	assert.True(t, ok)
	assert.Zero(t, total)
}

func TestSaturating(t *testing.T) {
	assert.Equal(t, uint64(math.MaxUint64), SaturatingAdd(math.MaxUint64, 1))
	assert.Equal(t, uint64(3), SaturatingAdd(1, 2))
	assert.Equal(t, uint64(0), SaturatingSub(1, 2))
	assert.Equal(t, uint64(1), SaturatingSub(3, 2))
}
