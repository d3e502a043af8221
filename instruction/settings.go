// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package instruction

import (
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/layout"
)

// FieldTag identifies a staking parameter in LegacyUpdateSettings.
type FieldTag uint8

const (
	TagRewardRate FieldTag = iota
	TagMinStakePeriod
	TagMaxStakePeriod
	TagStakingEnabled

	fieldTagCount
)

func (t FieldTag) String() string {
	switch t {
	case TagRewardRate:
		return "reward_rate"
	case TagMinStakePeriod:
		return "min_stake_period"
	case TagMaxStakePeriod:
		return "max_stake_period"
	case TagStakingEnabled:
		return "staking_enabled"
	}
	return "unknown"
}

// SettingField is one entry of a sparse settings update.
type SettingField interface {
	Tag() FieldTag

	marshal(w *layout.Writer)
	unmarshal(r *layout.Reader) SettingField
}

type (
	RewardRate     uint16 // basis points per epoch
	MinStakePeriod uint64 // epochs
	MaxStakePeriod uint64 // epochs
	StakingEnabled bool
)

func (RewardRate) Tag() FieldTag     { return TagRewardRate }
func (MinStakePeriod) Tag() FieldTag { return TagMinStakePeriod }
func (MaxStakePeriod) Tag() FieldTag { return TagMaxStakePeriod }
func (StakingEnabled) Tag() FieldTag { return TagStakingEnabled }

func (f RewardRate) marshal(w *layout.Writer)     { w.U16(uint16(f)) }
func (f MinStakePeriod) marshal(w *layout.Writer) { w.U64(uint64(f)) }
func (f MaxStakePeriod) marshal(w *layout.Writer) { w.U64(uint64(f)) }
func (f StakingEnabled) marshal(w *layout.Writer) { w.Bool(bool(f)) }

func (RewardRate) unmarshal(r *layout.Reader) SettingField     { return RewardRate(r.U16()) }
func (MinStakePeriod) unmarshal(r *layout.Reader) SettingField { return MinStakePeriod(r.U64()) }
func (MaxStakePeriod) unmarshal(r *layout.Reader) SettingField { return MaxStakePeriod(r.U64()) }
func (StakingEnabled) unmarshal(r *layout.Reader) SettingField { return StakingEnabled(r.Flag()) }

func newSettingField(tag FieldTag) (SettingField, error) {
	switch tag {
	case TagRewardRate:
		return RewardRate(0), nil
	case TagMinStakePeriod:
		return MinStakePeriod(0), nil
	case TagMaxStakePeriod:
		return MaxStakePeriod(0), nil
	case TagStakingEnabled:
		return StakingEnabled(false), nil
	}
	return nil, errors.Errorf("unknown settings field %d", uint8(tag))
}

func errDuplicateField(tag FieldTag) error {
	return errors.Errorf("settings field %v repeated", tag)
}
