// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/VltrnOne/E9th/bank"
	"github.com/VltrnOne/E9th/e9th"
	"github.com/VltrnOne/E9th/instruction"
)

// keyArg is an identity written as base58 or name:<label>.
type keyArg solana.PublicKey

func (k *keyArg) UnmarshalYAML(node *yaml.Node) error {
	key, err := e9th.ParseKey(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*k = keyArg(key)
	return nil
}

func keys(args []keyArg) []solana.PublicKey {
	out := make([]solana.PublicKey, len(args))
	for i, k := range args {
		out[i] = solana.PublicKey(k)
	}
	return out
}

// settingsArg is an ordered list of single entry mappings, e.g.
// [{reward_rate: 200}, {staking_enabled: false}].
type settingsArg []instruction.SettingField

func (s *settingsArg) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return errors.Errorf("line %d: settings must be a sequence", node.Line)
	}
	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			return errors.Errorf("line %d: setting must be a single entry mapping", item.Line)
		}
		field, err := settingField(item.Content[0].Value, item.Content[1])
		if err != nil {
			return err
		}
		*s = append(*s, field)
	}
	return nil
}

func settingField(name string, value *yaml.Node) (instruction.SettingField, error) {
	switch name {
	case instruction.TagRewardRate.String():
		var v uint16
		err := value.Decode(&v)
		return instruction.RewardRate(v), err
	case instruction.TagMinStakePeriod.String():
		var v uint64
		err := value.Decode(&v)
		return instruction.MinStakePeriod(v), err
	case instruction.TagMaxStakePeriod.String():
		var v uint64
		err := value.Decode(&v)
		return instruction.MaxStakePeriod(v), err
	case instruction.TagStakingEnabled.String():
		var v bool
		err := value.Decode(&v)
		return instruction.StakingEnabled(v), err
	}
	return nil, errors.Errorf("line %d: unknown setting %q", value.Line, name)
}

// instructionArgs is the union of every instruction's fields.
type instructionArgs struct {
	Amount         uint64      `yaml:"amount"`
	Period         uint64      `yaml:"period"`
	TotalSupply    uint64      `yaml:"total_supply"`
	RewardRate     uint16      `yaml:"reward_rate"`
	MinStakePeriod uint64      `yaml:"min_stake_period"`
	MaxStakePeriod uint64      `yaml:"max_stake_period"`
	Owner          keyArg      `yaml:"owner"`
	Operator       keyArg      `yaml:"operator"`
	Treasury       keyArg      `yaml:"treasury"`
	BurnRate       uint16      `yaml:"burn_rate"`
	Pause          bool        `yaml:"pause"`
	Account        keyArg      `yaml:"account"`
	Add            bool        `yaml:"add"`
	Recipients     []keyArg    `yaml:"recipients"`
	Amounts        []uint64    `yaml:"amounts"`
	Settings       settingsArg `yaml:"settings"`
	NewAdmin       keyArg      `yaml:"new_admin"`
}

// buildInstruction creates the named instruction from its YAML fields.
// Fields the instruction does not have are ignored.
func buildInstruction(name string, args *yaml.Node) (instruction.Instruction, error) {
	var a instructionArgs
	if args != nil && !args.IsZero() {
		if err := args.Decode(&a); err != nil {
			return nil, errors.Wrapf(err, "%s arguments", name)
		}
	}
	switch name {
	case "Initialize":
		return &instruction.Initialize{
			Owner:               solana.PublicKey(a.Owner),
			Operator:            solana.PublicKey(a.Operator),
			Treasury:            solana.PublicKey(a.Treasury),
			BurnRateBasisPoints: a.BurnRate,
		}, nil
	case "SetPause":
		return &instruction.SetPause{Pause: a.Pause}, nil
	case "ModifyBlacklist":
		return &instruction.ModifyBlacklist{Account: solana.PublicKey(a.Account), Add: a.Add}, nil
	case "Transfer":
		return &instruction.Transfer{Amount: a.Amount}, nil
	case "Airdrop":
		return &instruction.Airdrop{Recipients: keys(a.Recipients), Amounts: a.Amounts}, nil
	case "Stake":
		return &instruction.Stake{Amount: a.Amount}, nil
	case "Unstake":
		return &instruction.Unstake{Amount: a.Amount}, nil
	case "ClaimRewards":
		return &instruction.ClaimRewards{}, nil
	case "LegacyInitialize":
		return &instruction.LegacyInitialize{
			TotalSupply:    a.TotalSupply,
			RewardRate:     a.RewardRate,
			MinStakePeriod: a.MinStakePeriod,
			MaxStakePeriod: a.MaxStakePeriod,
		}, nil
	case "LegacyMint":
		return &instruction.LegacyMint{Amount: a.Amount}, nil
	case "LegacyBurn":
		return &instruction.LegacyBurn{Amount: a.Amount}, nil
	case "LegacyStake":
		return &instruction.LegacyStake{Amount: a.Amount, Period: a.Period}, nil
	case "LegacyUnstake":
		return &instruction.LegacyUnstake{}, nil
	case "LegacyClaimRewards":
		return &instruction.LegacyClaimRewards{}, nil
	case "LegacyUpdateSettings":
		return &instruction.LegacyUpdateSettings{Fields: a.Settings}, nil
	case "LegacyTransferAdmin":
		return &instruction.LegacyTransferAdmin{NewAdmin: solana.PublicKey(a.NewAdmin)}, nil
	}
	return nil, errors.Errorf("unknown instruction %q", name)
}

// parseMeta parses <key>[=s|w|sw].
func parseMeta(s string) (bank.Meta, error) {
	var m bank.Meta
	key, flags, _ := strings.Cut(s, "=")
	for _, f := range flags {
		switch f {
		case 's':
			m.IsSigner = true
		case 'w':
			m.IsWritable = true
		default:
			return bank.Meta{}, errors.Errorf("account %q: unknown access flag %q", s, f)
		}
	}
	k, err := e9th.ParseKey(key)
	if err != nil {
		return bank.Meta{}, err
	}
	m.Key = k
	return m, nil
}

func parseMetas(list []string) ([]bank.Meta, error) {
	metas := make([]bank.Meta, 0, len(list))
	for _, s := range list {
		m, err := parseMeta(s)
		if err != nil {
			return nil, err
		}
		metas = append(metas, m)
	}
	return metas, nil
}
