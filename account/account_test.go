// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VltrnOne/E9th/builtin/reverts"
	"github.com/VltrnOne/E9th/e9th"
)

func newTestAccount(data []byte) *Account {
	return New(e9th.NamedKey("acc"), e9th.ProgramID, 1, data)
}

func TestFlags(t *testing.T) {
	acc := newTestAccount(nil)
	assert.False(t, acc.IsSigner())
	assert.False(t, acc.IsWritable())
	assert.True(t, acc.DataIsEmpty())

	acc.AsSigner().AsWritable()
	assert.True(t, acc.IsSigner())
	assert.True(t, acc.IsWritable())

	acc.WithAccess(false, true)
	assert.False(t, acc.IsSigner())
	assert.True(t, acc.IsWritable())
}

func TestBorrowDiscipline(t *testing.T) {
	acc := newTestAccount(make([]byte, 4))

	_, r1, err := acc.TryBorrowData()
	require.NoError(t, err)
	_, r2, err := acc.TryBorrowData()
	require.NoError(t, err)

	_, _, err = acc.TryBorrowMutData()
	assert.True(t, errors.Is(err, reverts.ErrAccountBorrowFailed))

	r1()
	r1() // releasing twice is harmless
	_, _, err = acc.TryBorrowMutData()
	assert.Error(t, err)
	r2()

	data, release, err := acc.TryBorrowMutData()
	require.NoError(t, err)
	data[0] = 9

	_, _, err = acc.TryBorrowData()
	assert.True(t, errors.Is(err, reverts.ErrAccountBorrowFailed))
	assert.Error(t, acc.Realloc(8))

	release()
	assert.Equal(t, []byte{9, 0, 0, 0}, acc.Data())
}

func TestRealloc(t *testing.T) {
	acc := newTestAccount([]byte{1, 2})
	require.NoError(t, acc.Realloc(4))
	assert.Equal(t, []byte{1, 2, 0, 0}, acc.Data())
	require.NoError(t, acc.Realloc(1))
	assert.Equal(t, []byte{1}, acc.Data())
	assert.Error(t, acc.Realloc(-1))
}

func TestClone(t *testing.T) {
	acc := newTestAccount([]byte{1})
	_, release, err := acc.TryBorrowMutData()
	require.NoError(t, err)
	defer release()

	c := acc.Clone()
	_, _, err = c.TryBorrowMutData()
	assert.NoError(t, err)

	require.NoError(t, c.SetLamports(5))
	assert.Equal(t, uint64(1), acc.Lamports())
}

func TestIter(t *testing.T) {
	a, b := newTestAccount(nil), newTestAccount(nil)
	it := NewIter([]Info{a, b})

	got, err := it.Next()
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = it.NextN(2)
	assert.True(t, errors.Is(err, reverts.ErrInvalidAccountData))
}

func TestRequire(t *testing.T) {
	acc := newTestAccount(nil)
	assert.True(t, errors.Is(RequireSigner(acc), reverts.ErrUnauthorized))
	assert.True(t, errors.Is(RequireWritable(acc), reverts.ErrInvalidAccountData))

	acc.AsSigner().AsWritable()
	assert.NoError(t, RequireSigner(acc))
	assert.NoError(t, RequireWritable(acc))
}
