// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/builtin/reverts"
)

// Iter walks the positional account list of an instruction.
type Iter struct {
	accounts []Info
	pos      int
}

func NewIter(accounts []Info) *Iter {
	return &Iter{accounts: accounts}
}

// Next returns the next account, failing with InvalidAccountData when the
// list is exhausted.
func (it *Iter) Next() (Info, error) {
	if it.pos >= len(it.accounts) {
		return nil, errors.Wrapf(reverts.ErrInvalidAccountData, "not enough accounts: want #%d, have %d", it.pos+1, len(it.accounts))
	}
	acc := it.accounts[it.pos]
	it.pos++
	return acc, nil
}

// NextN returns the next n accounts.
func (it *Iter) NextN(n int) ([]Info, error) {
	out := make([]Info, 0, n)
	for range n {
		acc, err := it.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, nil
}
