// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package e9th

import (
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// ProgramID is the default identity the ledger program runs under.
var ProgramID = NamedKey("e9th/token-program")

// NamedKey deterministically maps a human readable name onto an identity.
// It's meant for local tooling and tests, the result has no private key.
func NamedKey(name string) solana.PublicKey {
	return solana.PublicKeyFromBytes(crypto.Keccak256([]byte(name)))
}

// ParseKey parses a base58 identity, or a "name:<label>" alias resolved by NamedKey.
func ParseKey(s string) (solana.PublicKey, error) {
	if label, ok := strings.CutPrefix(s, "name:"); ok {
		if label == "" {
			return solana.PublicKey{}, errors.New("empty key name")
		}
		return NamedKey(label), nil
	}
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "parse key %q", s)
	}
	return key, nil
}

// ProgramStateAddress derives the canonical legacy config address.
func ProgramStateAddress(program solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{SeedProgramState}, program)
}

// StakeAddress derives the canonical stake record address of owner.
// seed distinguishes multiple stakes of the same owner and may be empty.
func StakeAddress(program, owner solana.PublicKey, seed []byte) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{SeedStake, owner[:], seed}, program)
}

// TokenConfigAddress derives the canonical enhanced config address.
func TokenConfigAddress(program solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{SeedTokenConfig}, program)
}

// BlacklistAddress derives the canonical blacklist address.
func BlacklistAddress(program solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{SeedBlacklist}, program)
}
