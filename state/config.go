// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/VltrnOne/E9th/e9th"
	"github.com/VltrnOne/E9th/layout"
)

const (
	LedgerConfigSize = 32 + 32 + 8 + 1 + 2 + 8 + 8 + 8 + 1
	TokenConfigSize  = 32 + 32 + 32 + 1 + 2 + 32 + 8 + 1 + 2 + 8 + 8 + 8 + 1
)

// Staking holds the staking parameters and aggregates shared by both
// config records.
type Staking struct {
	TotalSupply    uint64
	StakingEnabled bool
	RewardRate     uint16 // basis points per epoch
	MinStakePeriod uint64 // epochs
	MaxStakePeriod uint64 // epochs
	TotalStaked    uint64
}

// DefaultStaking returns the parameters of a freshly initialized config.
func DefaultStaking() Staking {
	return Staking{
		StakingEnabled: true,
		RewardRate:     e9th.DefaultRewardRate,
		MinStakePeriod: e9th.DefaultMinStakePeriod,
		MaxStakePeriod: e9th.DefaultMaxStakePeriod,
	}
}

// AcceptsPeriod reports whether period lies within [min, max].
func (s *Staking) AcceptsPeriod(period uint64) bool {
	return period >= s.MinStakePeriod && period <= s.MaxStakePeriod
}

// LedgerConfig is the legacy program state, governed by a single admin.
type LedgerConfig struct {
	Admin solana.PublicKey
	Mint  solana.PublicKey
	Staking
	Bump uint8
}

var _ Record = (*LedgerConfig)(nil)

func (c *LedgerConfig) Size() int { return LedgerConfigSize }

func (c *LedgerConfig) MarshalWithEncoder(enc *bin.Encoder) error {
	w := layout.NewWriter(enc)
	w.PublicKey(c.Admin)
	w.PublicKey(c.Mint)
	w.U64(c.TotalSupply)
	w.Bool(c.StakingEnabled)
	w.U16(c.RewardRate)
	w.U64(c.MinStakePeriod)
	w.U64(c.MaxStakePeriod)
	w.U64(c.TotalStaked)
	w.U8(c.Bump)
	return w.Err()
}

func (c *LedgerConfig) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := layout.NewReader(dec)
	c.Admin = r.PublicKey()
	c.Mint = r.PublicKey()
	c.TotalSupply = r.U64()
	c.StakingEnabled = r.Bool()
	c.RewardRate = r.U16()
	c.MinStakePeriod = r.U64()
	c.MaxStakePeriod = r.U64()
	c.TotalStaked = r.U64()
	c.Bump = r.U8()
	return r.Err()
}

// TokenConfig is the enhanced config with separate owner, operator and
// treasury roles.
type TokenConfig struct {
	Owner               solana.PublicKey
	Operator            solana.PublicKey
	Treasury            solana.PublicKey
	IsPaused            bool
	BurnRateBasisPoints uint16
	Mint                solana.PublicKey
	Staking
	Bump uint8
}

var _ Record = (*TokenConfig)(nil)

// NewTokenConfig returns a config with default staking parameters.
func NewTokenConfig(owner, operator, treasury, mint solana.PublicKey, burnRate uint16, bump uint8) *TokenConfig {
	return &TokenConfig{
		Owner:               owner,
		Operator:            operator,
		Treasury:            treasury,
		BurnRateBasisPoints: burnRate,
		Mint:                mint,
		Staking:             DefaultStaking(),
		Bump:                bump,
	}
}

// IsManager reports whether key is the owner or the operator.
func (c *TokenConfig) IsManager(key solana.PublicKey) bool {
	return key == c.Owner || key == c.Operator
}

func (c *TokenConfig) Size() int { return TokenConfigSize }

func (c *TokenConfig) MarshalWithEncoder(enc *bin.Encoder) error {
	w := layout.NewWriter(enc)
	w.PublicKey(c.Owner)
	w.PublicKey(c.Operator)
	w.PublicKey(c.Treasury)
	w.Bool(c.IsPaused)
	w.U16(c.BurnRateBasisPoints)
	w.PublicKey(c.Mint)
	w.U64(c.TotalSupply)
	w.Bool(c.StakingEnabled)
	w.U16(c.RewardRate)
	w.U64(c.MinStakePeriod)
	w.U64(c.MaxStakePeriod)
	w.U64(c.TotalStaked)
	w.U8(c.Bump)
	return w.Err()
}

func (c *TokenConfig) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := layout.NewReader(dec)
	c.Owner = r.PublicKey()
	c.Operator = r.PublicKey()
	c.Treasury = r.PublicKey()
	c.IsPaused = r.Bool()
	c.BurnRateBasisPoints = r.U16()
	c.Mint = r.PublicKey()
	c.TotalSupply = r.U64()
	c.StakingEnabled = r.Bool()
	c.RewardRate = r.U16()
	c.MinStakePeriod = r.U64()
	c.MaxStakePeriod = r.U64()
	c.TotalStaked = r.U64()
	c.Bump = r.U8()
	return r.Err()
}
