// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	mathrand "math/rand/v2"
)

// RandAmount returns a token amount in [1, max].
func RandAmount(max uint64) uint64 {
	return mathrand.Uint64N(max) + 1 //#nosec G404
}
