// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math"
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
	"github.com/VltrnOne/E9th/test/datagen"
	"github.com/VltrnOne/E9th/test/testenv"
)

type tokenTest struct {
	*Token
	t        *testing.T
	env      *testenv.Env
	cfg      *account.Account
	bl       *account.Account
	owner    *account.Account
	operator *account.Account
	mint     *account.Account
}

func newTest(t *testing.T, burnRate uint16) *tokenTest {
	env := testenv.New()
	owner := testenv.Signer("owner")
	tt := &tokenTest{
		Token:    New(env.Environment),
		t:        t,
		env:      env,
		cfg:      testenv.Blank("token config"),
		bl:       testenv.Blank("blacklist"),
		owner:    owner,
		operator: testenv.Signer("operator"),
		mint:     env.MustMint("mint", owner.Key()),
	}
	require.NoError(t, tt.Initialize(tt.initAccounts(owner), &instruction.Initialize{
		Owner:               owner.Key(),
		Operator:            tt.operator.Key(),
		Treasury:            e9th.NamedKey("treasury"),
		BurnRateBasisPoints: burnRate,
	}))
	return tt
}

func (tt *tokenTest) initAccounts(payer *account.Account) []account.Info {
	return testenv.Infos(tt.cfg, tt.bl, payer, tt.mint, testenv.SystemProgram())
}

func (tt *tokenTest) config() state.TokenConfig {
	var cfg state.TokenConfig
	require.NoError(tt.t, state.Load(tt.cfg, &cfg))
	return cfg
}

func (tt *tokenTest) blacklist() state.Blacklist {
	var bl state.Blacklist
	require.NoError(tt.t, state.Load(tt.bl, &bl))
	return bl
}

// holder registers a funded token account owned by a new signer.
func (tt *tokenTest) holder(name string, balance uint64) (*account.Account, *account.Account) {
	wallet := testenv.Signer(name)
	tok := tt.env.MustTokenAccount(name+"/token", tt.mint.Key(), wallet.Key())
	if balance > 0 {
		require.NoError(tt.t, tt.env.Tokens.MintTo(tt.mint.Key(), tok.Key(), tt.owner.Key(), balance))
	}
	return wallet, tok
}

func (tt *tokenTest) setSupply(supply uint64) {
	cfg := tt.config()
	cfg.TotalSupply = supply
	require.NoError(tt.t, state.Store(tt.cfg, &cfg))
}

func (tt *tokenTest) blacklistAdd(key solana.PublicKey) {
	require.NoError(tt.t, tt.ModifyBlacklist(testenv.Infos(tt.cfg, tt.bl, tt.operator),
		&instruction.ModifyBlacklist{Account: key, Add: true}))
}

func (tt *tokenTest) transfer(src, dst, authority *account.Account, amount uint64) error {
	return tt.Transfer(testenv.Infos(tt.cfg, tt.bl, src, dst, authority, tt.mint, testenv.TokenProgram()),
		&instruction.Transfer{Amount: amount})
}

func (tt *tokenTest) airdrop(authority *account.Account, recipients []solana.PublicKey, amounts []uint64) error {
	return tt.Airdrop(testenv.Infos(tt.cfg, tt.bl, authority, tt.mint, testenv.TokenProgram()),
		&instruction.Airdrop{Recipients: recipients, Amounts: amounts})
}

func TestInitialize(t *testing.T) {
	tt := newTest(t, 250)

	cfg := tt.config()
	assert.Equal(t, tt.owner.Key(), cfg.Owner)
	assert.Equal(t, tt.operator.Key(), cfg.Operator)
	assert.Equal(t, e9th.NamedKey("treasury"), cfg.Treasury)
	assert.Equal(t, tt.mint.Key(), cfg.Mint)
	assert.Equal(t, uint16(250), cfg.BurnRateBasisPoints)
	assert.False(t, cfg.IsPaused)
	assert.Equal(t, state.DefaultStaking(), cfg.Staking)

	_, cfgBump, err := e9th.TokenConfigAddress(e9th.ProgramID)
	require.NoError(t, err)
	assert.Equal(t, cfgBump, cfg.Bump)

	bl := tt.blacklist()
	assert.Empty(t, bl.Accounts)
	_, blBump, err := e9th.BlacklistAddress(e9th.ProgramID)
	require.NoError(t, err)
	assert.Equal(t, blBump, bl.Bump)

	assert.Equal(t, state.TokenConfigSize, tt.cfg.DataLen())
	assert.Equal(t, state.BlacklistSize, tt.bl.DataLen())

	err = tt.Initialize(tt.initAccounts(tt.owner), &instruction.Initialize{})
	assert.True(t, errors.Is(err, reverts.ErrAccountAlreadyInitialized))
}

func TestInitializeRejects(t *testing.T) {
	env := testenv.New()
	tk := New(env.Environment)
	payer := testenv.Signer("payer")
	cfg, bl := testenv.Blank("token config"), testenv.Blank("blacklist")
	accounts := testenv.Infos(cfg, bl, payer, testenv.Ref("mint"), testenv.SystemProgram())

	err := tk.Initialize(accounts, &instruction.Initialize{BurnRateBasisPoints: 10_001})
	assert.True(t, errors.Is(err, reverts.ErrInvalidAmount))

	payer.WithAccess(false, true)
	err = tk.Initialize(accounts, &instruction.Initialize{})
	assert.True(t, errors.Is(err, reverts.ErrUnauthorized))
	payer.WithAccess(true, true)

	used := testenv.Provisioned("blacklist", state.BlacklistSize)
	err = tk.Initialize(testenv.Infos(cfg, used, payer, testenv.Ref("mint"), testenv.SystemProgram()), &instruction.Initialize{})
	assert.True(t, errors.Is(err, reverts.ErrAccountAlreadyInitialized))

	assert.True(t, cfg.DataIsEmpty())
	assert.Equal(t, uint64(testenv.PayerLamports), payer.Lamports())
}

func TestSetPause(t *testing.T) {
	tt := newTest(t, 0)

	err := tt.SetPause(testenv.Infos(tt.cfg, tt.operator), &instruction.SetPause{Pause: true})
	assert.True(t, errors.Is(err, reverts.ErrInvalidAdmin))

	require.NoError(t, tt.SetPause(testenv.Infos(tt.cfg, tt.owner), &instruction.SetPause{Pause: true}))
	assert.True(t, tt.config().IsPaused)

	wallet, src := tt.holder("alice", 100)
	_, dst := tt.holder("bob", 0)
	assert.True(t, errors.Is(tt.transfer(src, dst, wallet, 10), reverts.ErrTokenPaused))
	assert.True(t, errors.Is(tt.airdrop(tt.owner, []solana.PublicKey{dst.Key()}, []uint64{1}), reverts.ErrTokenPaused))

	require.NoError(t, tt.SetPause(testenv.Infos(tt.cfg, tt.owner), &instruction.SetPause{Pause: false}))
	require.NoError(t, tt.transfer(src, dst, wallet, 10))
}

func TestModifyBlacklist(t *testing.T) {
	tt := newTest(t, 0)
	key := datagen.RandKey()

	tt.blacklistAdd(key)
	tt.blacklistAdd(key)
	assert.Equal(t, []solana.PublicKey{key}, tt.blacklist().Accounts)

	remove := &instruction.ModifyBlacklist{Account: key}
	require.NoError(t, tt.ModifyBlacklist(testenv.Infos(tt.cfg, tt.bl, tt.owner), remove))
	require.NoError(t, tt.ModifyBlacklist(testenv.Infos(tt.cfg, tt.bl, tt.owner), remove))
	assert.Empty(t, tt.blacklist().Accounts)

	err := tt.ModifyBlacklist(testenv.Infos(tt.cfg, tt.bl, testenv.Signer("stranger")), remove)
	assert.True(t, errors.Is(err, reverts.ErrInvalidAdmin))

	unsigned := testenv.Signer("operator").WithAccess(false, false)
	err = tt.ModifyBlacklist(testenv.Infos(tt.cfg, tt.bl, unsigned), remove)
	assert.True(t, errors.Is(err, reverts.ErrUnauthorized))
}

func TestBlacklistCapacity(t *testing.T) {
	tt := newTest(t, 0)
	for _, key := range datagen.RandKeys(e9th.BlacklistCapacity) {
		tt.blacklistAdd(key)
	}
	before := tt.bl.Data()

	err := tt.ModifyBlacklist(testenv.Infos(tt.cfg, tt.bl, tt.owner),
		&instruction.ModifyBlacklist{Account: datagen.RandKey(), Add: true})
	assert.True(t, errors.Is(err, reverts.ErrBlacklistFull))
	assert.Equal(t, before, tt.bl.Data())
}

func TestTransferBurnSplit(t *testing.T) {
	tt := newTest(t, 250)
	tt.setSupply(10_000)
	wallet, src := tt.holder("alice", 10_000)
	_, dst := tt.holder("bob", 0)

	require.NoError(t, tt.transfer(src, dst, wallet, 1_000))
	assert.Equal(t, uint64(975), tt.env.Tokens.Balance(dst.Key()))
	assert.Equal(t, uint64(9_000), tt.env.Tokens.Balance(src.Key()))
	assert.Equal(t, uint64(9_975), tt.env.Tokens.Supply(tt.mint.Key()))
	assert.Equal(t, uint64(9_975), tt.config().TotalSupply)

	// below the burn granularity nothing is burned
	require.NoError(t, tt.transfer(src, dst, wallet, 39))
	assert.Equal(t, uint64(1_014), tt.env.Tokens.Balance(dst.Key()))
	assert.Equal(t, uint64(9_975), tt.config().TotalSupply)
}

func TestTransferRejects(t *testing.T) {
	tt := newTest(t, 0)
	wallet, src := tt.holder("alice", 100)
	_, dst := tt.holder("bob", 0)

	assert.True(t, errors.Is(tt.transfer(src, dst, wallet, 0), reverts.ErrInvalidAmount))
	assert.True(t, errors.Is(tt.transfer(src, dst, wallet, 101), reverts.ErrInsufficientFunds))
	assert.True(t, errors.Is(tt.transfer(src, dst, testenv.Signer("mallory"), 1), reverts.ErrUnauthorized))
	assert.True(t, errors.Is(tt.transfer(src, dst, wallet.Clone().WithAccess(false, true), 1), reverts.ErrUnauthorized))

	for _, key := range []solana.PublicKey{wallet.Key(), src.Key(), dst.Key()} {
		tt.blacklistAdd(key)
		assert.True(t, errors.Is(tt.transfer(src, dst, wallet, 1), reverts.ErrAccountBlacklisted))
		require.NoError(t, tt.ModifyBlacklist(testenv.Infos(tt.cfg, tt.bl, tt.owner), &instruction.ModifyBlacklist{Account: key}))
	}

	other := tt.env.MustMint("other mint", tt.owner.Key())
	err := tt.Transfer(testenv.Infos(tt.cfg, tt.bl, src, dst, wallet, other, testenv.TokenProgram()), &instruction.Transfer{Amount: 1})
	assert.True(t, errors.Is(err, reverts.ErrInvalidMint))

	assert.Equal(t, uint64(100), tt.env.Tokens.Balance(src.Key()))
}

func TestAirdrop(t *testing.T) {
	tt := newTest(t, 0)
	_, a := tt.holder("alice", 0)
	_, b := tt.holder("bob", 0)

	require.NoError(t, tt.airdrop(tt.operator, []solana.PublicKey{a.Key(), b.Key()}, []uint64{100, 250}))
	assert.Equal(t, uint64(100), tt.env.Tokens.Balance(a.Key()))
	assert.Equal(t, uint64(250), tt.env.Tokens.Balance(b.Key()))
	assert.Equal(t, uint64(350), tt.config().TotalSupply)
}

func TestAirdropValidatesFirst(t *testing.T) {
	tt := newTest(t, 0)
	_, a := tt.holder("alice", 0)
	_, b := tt.holder("bob", 0)
	recipients := []solana.PublicKey{a.Key(), b.Key()}

	tests := []struct {
		name       string
		authority  *account.Account
		recipients []solana.PublicKey
		amounts    []uint64
		want       error
	}{
		{"stranger", testenv.Signer("stranger"), recipients, []uint64{1, 1}, reverts.ErrInvalidAdmin},
		{"length mismatch", tt.owner, recipients, []uint64{1}, reverts.ErrInvalidInstruction},
		{"empty", tt.owner, nil, nil, reverts.ErrInvalidAmount},
		{"empty lists", tt.owner, []solana.PublicKey{}, []uint64{}, reverts.ErrInvalidAmount},
		{"zero amount", tt.owner, recipients, []uint64{1, 0}, reverts.ErrInvalidAmount},
		{"overflow", tt.owner, recipients, []uint64{math.MaxUint64, 1}, reverts.ErrMathOverflow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tt.airdrop(tc.authority, tc.recipients, tc.amounts)
			assert.True(t, errors.Is(err, tc.want), "%v", err)
		})
	}

	tt.blacklistAdd(b.Key())
	err := tt.airdrop(tt.owner, recipients, []uint64{1, 1})
	assert.True(t, errors.Is(err, reverts.ErrAccountBlacklisted))

	assert.Empty(t, tt.env.Tokens.Calls())
	assert.Zero(t, tt.config().TotalSupply)
}
