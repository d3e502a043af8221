// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/builtin/reverts"
	"github.com/VltrnOne/E9th/e9th"
	"github.com/VltrnOne/E9th/instruction"
	"github.com/VltrnOne/E9th/state"
	"github.com/VltrnOne/E9th/test/testenv"
)

type adminTest struct {
	*Admin
	t      *testing.T
	env    *testenv.Env
	cfg    *account.Account
	admin  *account.Account
	mint   *account.Account
	holder *account.Account
}

func newTest(t *testing.T) *adminTest {
	env := testenv.New()
	admin := testenv.Signer("admin")
	mint := env.MustMint("mint", admin.Key())
	return &adminTest{
		Admin:  New(env.Environment),
		t:      t,
		env:    env,
		cfg:    testenv.Blank("config"),
		admin:  admin,
		mint:   mint,
		holder: env.MustTokenAccount("holder", mint.Key(), e9th.NamedKey("holder")),
	}
}

func (at *adminTest) initialize(supply uint64) *adminTest {
	err := at.Initialize(at.initAccounts(), &instruction.LegacyInitialize{
		TotalSupply:    supply,
		RewardRate:     100,
		MinStakePeriod: 1,
		MaxStakePeriod: 365,
	})
	require.NoError(at.t, err)
	return at
}

func (at *adminTest) initAccounts() []account.Info {
	return testenv.Infos(at.cfg, at.admin, at.mint, testenv.SystemProgram(), testenv.TokenProgram())
}

func (at *adminTest) issueAccounts(admin *account.Account) []account.Info {
	return testenv.Infos(at.cfg, admin, at.mint, at.holder, testenv.TokenProgram())
}

func (at *adminTest) config() state.LedgerConfig {
	var cfg state.LedgerConfig
	require.NoError(at.t, state.Load(at.cfg, &cfg))
	return cfg
}

func TestInitialize(t *testing.T) {
	at := newTest(t).initialize(1_000_000)

	cfg := at.config()
	assert.Equal(t, at.admin.Key(), cfg.Admin)
	assert.Equal(t, at.mint.Key(), cfg.Mint)
	assert.Equal(t, uint64(1_000_000), cfg.TotalSupply)
	assert.True(t, cfg.StakingEnabled)
	assert.Equal(t, uint16(100), cfg.RewardRate)
	assert.Equal(t, uint64(1), cfg.MinStakePeriod)
	assert.Equal(t, uint64(365), cfg.MaxStakePeriod)
	assert.Zero(t, cfg.TotalStaked)

	_, bump, err := e9th.ProgramStateAddress(e9th.ProgramID)
	require.NoError(t, err)
	assert.Equal(t, bump, cfg.Bump)

	assert.Equal(t, e9th.ProgramID, at.cfg.Owner())
	assert.Equal(t, state.LedgerConfigSize, at.cfg.DataLen())
	assert.Equal(t, at.env.Rent().MinimumBalance(state.LedgerConfigSize), at.cfg.Lamports())
}

func TestInitializeTwice(t *testing.T) {
	at := newTest(t).initialize(1_000_000)
	before := at.cfg.Data()

	err := at.Initialize(at.initAccounts(), &instruction.LegacyInitialize{TotalSupply: 5, MinStakePeriod: 1, MaxStakePeriod: 2})
	assert.True(t, errors.Is(err, reverts.ErrAccountAlreadyInitialized))
	assert.Equal(t, before, at.cfg.Data())
}

func TestInitializeRejects(t *testing.T) {
	valid := &instruction.LegacyInitialize{MinStakePeriod: 1, MaxStakePeriod: 365}
	tests := []struct {
		name  string
		setup func(at *adminTest) []account.Info
		ins   *instruction.LegacyInitialize
		want  error
	}{
		{"config not writable", func(at *adminTest) []account.Info {
			at.cfg.WithAccess(false, false)
			return at.initAccounts()
		}, valid, reverts.ErrInvalidAccountData},
		{"admin not signer", func(at *adminTest) []account.Info {
			at.admin.WithAccess(false, true)
			return at.initAccounts()
		}, valid, reverts.ErrUnauthorized},
		{"missing accounts", func(at *adminTest) []account.Info {
			return at.initAccounts()[:3]
		}, valid, reverts.ErrInvalidAccountData},
		{"min too short", nil, &instruction.LegacyInitialize{MinStakePeriod: 0, MaxStakePeriod: 5}, reverts.ErrStakePeriodTooShort},
		{"max too long", nil, &instruction.LegacyInitialize{MinStakePeriod: 1, MaxStakePeriod: 366}, reverts.ErrStakePeriodTooLong},
		{"min above max", nil, &instruction.LegacyInitialize{MinStakePeriod: 10, MaxStakePeriod: 5}, reverts.ErrInvalidStakePeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := newTest(t)
			accounts := at.initAccounts()
			if tt.setup != nil {
				accounts = tt.setup(at)
			}
			err := at.Initialize(accounts, tt.ins)
			assert.True(t, errors.Is(err, tt.want), "%v", err)
			assert.True(t, at.cfg.DataIsEmpty())
		})
	}
}

func TestMintAndBurn(t *testing.T) {
	at := newTest(t).initialize(1_000)

	require.NoError(t, at.Mint(at.issueAccounts(at.admin), &instruction.LegacyMint{Amount: 500}))
	assert.Equal(t, uint64(1_500), at.config().TotalSupply)
	assert.Equal(t, uint64(500), at.env.Tokens.Balance(at.holder.Key()))

	adminTok := at.env.MustTokenAccount("admin/token", at.mint.Key(), at.admin.Key())
	require.NoError(t, at.env.Tokens.MintTo(at.mint.Key(), adminTok.Key(), at.admin.Key(), 200))

	burnAccounts := testenv.Infos(at.cfg, at.admin, at.mint, adminTok, testenv.TokenProgram())
	require.NoError(t, at.Burn(burnAccounts, &instruction.LegacyBurn{Amount: 150}))
	assert.Equal(t, uint64(1_350), at.config().TotalSupply)
	assert.Equal(t, uint64(50), at.env.Tokens.Balance(adminTok.Key()))
}

func TestBurnSaturates(t *testing.T) {
	at := newTest(t).initialize(10)
	adminTok := at.env.MustTokenAccount("admin/token", at.mint.Key(), at.admin.Key())
	require.NoError(t, at.env.Tokens.MintTo(at.mint.Key(), adminTok.Key(), at.admin.Key(), 100))

	burnAccounts := testenv.Infos(at.cfg, at.admin, at.mint, adminTok, testenv.TokenProgram())
	require.NoError(t, at.Burn(burnAccounts, &instruction.LegacyBurn{Amount: 50}))
	assert.Zero(t, at.config().TotalSupply)
}

func TestIssuanceRejects(t *testing.T) {
	at := newTest(t).initialize(1_000)
	before := at.cfg.Data()

	impostor := testenv.Signer("impostor")
	err := at.Mint(at.issueAccounts(impostor), &instruction.LegacyMint{Amount: 1})
	assert.True(t, errors.Is(err, reverts.ErrInvalidAdmin))

	unsigned := testenv.Signer("admin").WithAccess(false, true)
	err = at.Mint(at.issueAccounts(unsigned), &instruction.LegacyMint{Amount: 1})
	assert.True(t, errors.Is(err, reverts.ErrUnauthorized))

	err = at.Burn(at.issueAccounts(unsigned), &instruction.LegacyBurn{Amount: 1})
	assert.True(t, errors.Is(err, reverts.ErrUnauthorized))

	err = at.Mint(at.issueAccounts(at.admin), &instruction.LegacyMint{Amount: 0})
	assert.True(t, errors.Is(err, reverts.ErrInvalidAmount))

	otherMint := at.env.MustMint("other mint", at.admin.Key())
	err = at.Mint(testenv.Infos(at.cfg, at.admin, otherMint, at.holder, testenv.TokenProgram()), &instruction.LegacyMint{Amount: 1})
	assert.True(t, errors.Is(err, reverts.ErrInvalidMint))

	// ledger failures surface and leave the record alone
	err = at.Burn(at.issueAccounts(at.admin), &instruction.LegacyBurn{Amount: 1})
	assert.True(t, errors.Is(err, reverts.ErrUnauthorized))

	assert.Equal(t, before, at.cfg.Data())
	assert.Empty(t, at.env.Tokens.Calls())
}

func TestUpdateSettings(t *testing.T) {
	at := newTest(t).initialize(0)
	accounts := testenv.Infos(at.cfg, at.admin)

	err := at.UpdateSettings(accounts, &instruction.LegacyUpdateSettings{Fields: []instruction.SettingField{
		instruction.RewardRate(250),
		instruction.MaxStakePeriod(30),
		instruction.MinStakePeriod(7),
		instruction.StakingEnabled(false),
	}})
	require.NoError(t, err)

	cfg := at.config()
	assert.Equal(t, uint16(250), cfg.RewardRate)
	assert.Equal(t, uint64(7), cfg.MinStakePeriod)
	assert.Equal(t, uint64(30), cfg.MaxStakePeriod)
	assert.False(t, cfg.StakingEnabled)

	// empty update is a no-op
	require.NoError(t, at.UpdateSettings(accounts, &instruction.LegacyUpdateSettings{}))
	assert.Equal(t, cfg, at.config())
}

func TestUpdateSettingsCrossValidation(t *testing.T) {
	at := newTest(t).initialize(0)
	accounts := testenv.Infos(at.cfg, at.admin)
	require.NoError(t, at.UpdateSettings(accounts, &instruction.LegacyUpdateSettings{Fields: []instruction.SettingField{
		instruction.MaxStakePeriod(5),
	}}))
	before := at.cfg.Data()

	// the rate would be valid on its own, nothing is written
	err := at.UpdateSettings(accounts, &instruction.LegacyUpdateSettings{Fields: []instruction.SettingField{
		instruction.RewardRate(999),
		instruction.MinStakePeriod(10),
	}})
	assert.True(t, errors.Is(err, reverts.ErrInvalidStakePeriod))
	assert.Equal(t, before, at.cfg.Data())

	err = at.UpdateSettings(accounts, &instruction.LegacyUpdateSettings{Fields: []instruction.SettingField{
		instruction.RewardRate(999),
		instruction.MinStakePeriod(0),
	}})
	assert.True(t, errors.Is(err, reverts.ErrStakePeriodTooShort))

	err = at.UpdateSettings(accounts, &instruction.LegacyUpdateSettings{Fields: []instruction.SettingField{
		instruction.MaxStakePeriod(366),
	}})
	assert.True(t, errors.Is(err, reverts.ErrStakePeriodTooLong))
	assert.Equal(t, before, at.cfg.Data())

	// raising max then min in one payload is accepted
	require.NoError(t, at.UpdateSettings(accounts, &instruction.LegacyUpdateSettings{Fields: []instruction.SettingField{
		instruction.MaxStakePeriod(20),
		instruction.MinStakePeriod(10),
	}}))
	assert.Equal(t, uint64(10), at.config().MinStakePeriod)
}

func TestTransferAdmin(t *testing.T) {
	at := newTest(t).initialize(0)
	successor := testenv.Signer("successor")

	err := at.TransferAdmin(testenv.Infos(at.cfg, successor), &instruction.LegacyTransferAdmin{NewAdmin: successor.Key()})
	assert.True(t, errors.Is(err, reverts.ErrInvalidAdmin))

	require.NoError(t, at.TransferAdmin(testenv.Infos(at.cfg, at.admin), &instruction.LegacyTransferAdmin{NewAdmin: successor.Key()}))
	assert.Equal(t, successor.Key(), at.config().Admin)

	// the previous admin lost its powers
	err = at.UpdateSettings(testenv.Infos(at.cfg, at.admin), &instruction.LegacyUpdateSettings{})
	assert.True(t, errors.Is(err, reverts.ErrInvalidAdmin))
	require.NoError(t, at.UpdateSettings(testenv.Infos(at.cfg, successor), &instruction.LegacyUpdateSettings{}))
}

func TestConfigOwnerChecked(t *testing.T) {
	at := newTest(t).initialize(0)
	require.NoError(t, at.cfg.Assign(e9th.NamedKey("someone else")))

	err := at.TransferAdmin(testenv.Infos(at.cfg, at.admin), &instruction.LegacyTransferAdmin{})
	assert.True(t, errors.Is(err, reverts.ErrInvalidAccountOwner))
}
