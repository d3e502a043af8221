// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package processor

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/builtin/reverts"
	"github.com/VltrnOne/E9th/e9th"
	"github.com/VltrnOne/E9th/instruction"
	"github.com/VltrnOne/E9th/state"
	"github.com/VltrnOne/E9th/test/testenv"
	"github.com/VltrnOne/E9th/tokenledger"
	"github.com/VltrnOne/E9th/xenv"
)

func mustEncode(t *testing.T, ins instruction.Instruction) []byte {
	data, err := instruction.Encode(ins)
	require.NoError(t, err)
	return data
}

func TestLegacyLifecycle(t *testing.T) {
	env := testenv.New()
	p := New(env.Environment)

	admin := testenv.Signer("admin")
	mint := env.MustMint("mint", admin.Key())
	cfg := testenv.Blank("config")
	user := testenv.Signer("user")
	stake := testenv.Provisioned("stake", state.StakeAccountSize)
	userToken := env.MustTokenAccount("user/token", mint.Key(), user.Key())

	initAccounts := testenv.Infos(cfg, admin, mint, testenv.SystemProgram(), testenv.TokenProgram())
	stakeAccounts := testenv.Infos(cfg, stake, user, userToken, testenv.TokenProgram())
	config := func() state.LedgerConfig {
		var c state.LedgerConfig
		require.NoError(t, state.Load(cfg, &c))
		return c
	}
	record := func() state.StakeAccount {
		var s state.StakeAccount
		require.NoError(t, state.Load(stake, &s))
		return s
	}

	initData := mustEncode(t, &instruction.LegacyInitialize{TotalSupply: 1_000_000, RewardRate: 100, MinStakePeriod: 1, MaxStakePeriod: 365})
	require.NoError(t, p.Process(initAccounts, initData))
	assert.Zero(t, config().TotalStaked)
	assert.True(t, config().StakingEnabled)

	err := p.Process(initAccounts, initData)
	assert.True(t, errors.Is(err, reverts.ErrAccountAlreadyInitialized))

	env.SetEpoch(100)
	require.NoError(t, p.Process(stakeAccounts, mustEncode(t, &instruction.LegacyStake{Amount: 1000, Period: 30})))
	assert.Equal(t, uint64(1000), config().TotalStaked)

	env.SetEpoch(129)
	err = p.Process(stakeAccounts, mustEncode(t, &instruction.LegacyUnstake{}))
	assert.True(t, errors.Is(err, reverts.ErrStakeNotMature))
	assert.Equal(t, uint64(1000), record().Amount)
	assert.Equal(t, uint64(1000), config().TotalStaked)

	env.SetEpoch(130)
	require.NoError(t, p.Process(stakeAccounts, mustEncode(t, &instruction.LegacyClaimRewards{})))
	assert.Equal(t, uint64(300), env.Tokens.Balance(userToken.Key()))
	assert.Equal(t, uint64(1_000_300), config().TotalSupply)

	require.NoError(t, p.Process(stakeAccounts, mustEncode(t, &instruction.LegacyUnstake{})))
	assert.Zero(t, record().Amount)
	assert.Zero(t, config().TotalStaked)

	settings := mustEncode(t, &instruction.LegacyUpdateSettings{Fields: []instruction.SettingField{instruction.StakingEnabled(false)}})
	require.NoError(t, p.Process(testenv.Infos(cfg, admin), settings))
	err = p.Process(stakeAccounts, mustEncode(t, &instruction.LegacyStake{Amount: 1, Period: 1}))
	assert.True(t, errors.Is(err, reverts.ErrInvalidStakePeriod))
	assert.ErrorContains(t, err, "staking disabled")
}

func TestCurrentLifecycleOverSPL(t *testing.T) {
	ledger := tokenledger.NewMemory()
	recorder := tokenledger.NewRecorder(ledger)
	clock := &xenv.FixedClock{TimestampValue: testenv.GenesisTimestamp}
	p := New(xenv.New(e9th.ProgramID, clock, xenv.DefaultRent(), xenv.SystemProvisioner{}, tokenledger.NewSPL(recorder)))

	owner := testenv.Signer("owner")
	alice := testenv.Signer("alice")
	mint := account.New(e9th.NamedKey("mint"), solana.TokenProgramID, 0, nil).AsWritable()
	aliceToken := account.New(e9th.NamedKey("alice/token"), solana.TokenProgramID, 0, nil).AsWritable()
	bobToken := account.New(e9th.NamedKey("bob/token"), solana.TokenProgramID, 0, nil).AsWritable()
	require.NoError(t, ledger.CreateMint(mint.Key(), owner.Key()))
	require.NoError(t, ledger.CreateAccount(aliceToken.Key(), mint.Key(), alice.Key()))
	require.NoError(t, ledger.CreateAccount(bobToken.Key(), mint.Key(), e9th.NamedKey("bob")))

	cfg, bl := testenv.Blank("token config"), testenv.Blank("blacklist")
	require.NoError(t, p.Process(testenv.Infos(cfg, bl, owner, mint, testenv.SystemProgram()), mustEncode(t, &instruction.Initialize{
		Owner:               owner.Key(),
		Operator:            owner.Key(),
		Treasury:            e9th.NamedKey("treasury"),
		BurnRateBasisPoints: 100,
	})))

	airdrop := &instruction.Airdrop{Recipients: []solana.PublicKey{aliceToken.Key()}, Amounts: []uint64{10_000}}
	require.NoError(t, p.Process(testenv.Infos(cfg, bl, owner, mint, testenv.TokenProgram()), mustEncode(t, airdrop)))

	transfer := mustEncode(t, &instruction.Transfer{Amount: 1_000})
	require.NoError(t, p.Process(testenv.Infos(cfg, bl, aliceToken, bobToken, alice, mint, testenv.TokenProgram()), transfer))

	assert.Equal(t, uint64(9_000), ledger.Balance(aliceToken.Key()))
	assert.Equal(t, uint64(990), ledger.Balance(bobToken.Key()))
	assert.Equal(t, uint64(9_990), ledger.Supply(mint.Key()))

	var c state.TokenConfig
	require.NoError(t, state.Load(cfg, &c))
	assert.Equal(t, uint64(9_990), c.TotalSupply)

	ixs := recorder.Instructions()
	require.Len(t, ixs, 3)
	for _, ix := range ixs {
		assert.Equal(t, solana.TokenProgramID, ix.ProgramID())
	}

	pause := mustEncode(t, &instruction.SetPause{Pause: true})
	require.NoError(t, p.Process(testenv.Infos(cfg, owner), pause))
	err := p.Process(testenv.Infos(cfg, bl, aliceToken, bobToken, alice, mint, testenv.TokenProgram()), transfer)
	assert.True(t, errors.Is(err, reverts.ErrTokenPaused))
}

func TestProcessRejects(t *testing.T) {
	p := New(testenv.New().Environment)

	for _, data := range [][]byte{nil, {0xff}, {3, 1, 2}} {
		err := p.Process(nil, data)
		assert.True(t, errors.Is(err, reverts.ErrInvalidInstruction), "%x: %v", data, err)
	}

	err := p.Process(nil, mustEncode(t, &instruction.ClaimRewards{}))
	assert.True(t, errors.Is(err, reverts.ErrInvalidAccountData))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", outcome(nil))
	assert.Equal(t, reverts.StakeNotMature.String(), outcome(errors.Wrap(reverts.ErrStakeNotMature, "ctx")))
	assert.Equal(t, "error", outcome(errors.New("boom")))
}
