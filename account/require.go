// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/builtin/reverts"
)

// RequireSigner fails with Unauthorized unless acc signed the instruction.
func RequireSigner(acc Info) error {
	if !acc.IsSigner() {
		return errors.Wrapf(reverts.ErrUnauthorized, "account %v must sign", acc.Key())
	}
	return nil
}

// RequireWritable fails with InvalidAccountData unless acc is writable.
func RequireWritable(acc Info) error {
	if !acc.IsWritable() {
		return errors.Wrapf(reverts.ErrInvalidAccountData, "account %v must be writable", acc.Key())
	}
	return nil
}
