// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package e9th

// Constants of the ledger program.
const (
	BasisPoints    uint64 = 10000             // denominator of every rate expressed in basis points.
	SecondsPerYear uint64 = 365 * 24 * 60 * 60 // used by the time based reward law.

	MinStakePeriodFloor uint64 = 1   // (unit: epoch) lowest accepted min_stake_period.
	MaxStakePeriodCap   uint64 = 365 // (unit: epoch) highest accepted max_stake_period.

	// EpochDuration is the length of an epoch used to turn a stake period
	// into an absolute lock time for enhanced stake entries.
	EpochDuration uint64 = 2 * 24 * 60 * 60

	BlacklistCapacity = 100 // max number of blacklisted identities.
)

// Defaults of a freshly initialized token config.
const (
	DefaultRewardRate     uint16 = 100 // 1% per epoch
	DefaultMinStakePeriod uint64 = 1
	DefaultMaxStakePeriod uint64 = 365
)

// Seeds of derived addresses.
var (
	SeedProgramState = []byte("program_state")
	SeedStake        = []byte("stake")
	SeedTokenConfig  = []byte("token_config")
	SeedBlacklist    = []byte("blacklist")
	SeedStakeEntry   = []byte("entry") // appended to the stake seeds of enhanced entries
)
