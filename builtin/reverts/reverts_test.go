// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCodeNumbering(t *testing.T) {
	assert.Equal(t, Code(0), InvalidInstruction)
	assert.Equal(t, Code(11), StakeNotMature)
	assert.Equal(t, Code(14), MathOverflow)
	assert.Equal(t, Code(18), RewardCalculationFailed)
	for c := InvalidInstruction; c <= AccountBorrowFailed; c++ {
		assert.NotEmpty(t, codeMessages[c], "code %d has no message", c)
	}
	assert.Equal(t, "unknown error 999", Code(999).String())
}

func TestParseCode(t *testing.T) {
	c, ok := ParseCode("stake not mature")
	assert.True(t, ok)
	assert.Equal(t, StakeNotMature, c)

	_, ok = ParseCode("nope")
	assert.False(t, ok)
}

func TestWrappedReverts(t *testing.T) {
	err := errors.Wrap(ErrInvalidAmount, "mint")
	assert.True(t, errors.Is(err, ErrInvalidAmount))
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "mint: invalid amount", err.Error())

	code, ok := CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, InvalidAmount, code)

	assert.True(t, IsRevertErr(err))
	assert.True(t, IsRevertErr(New(StakeLocked)))
	assert.False(t, IsRevertErr(errors.New("plain")))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr("string"))
}
