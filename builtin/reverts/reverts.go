// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the tagged errors an instruction aborts with.
package reverts

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code identifies the reason an instruction was rejected. The numbering is
// part of the program's public surface and must stay stable.
type Code uint32

const (
	InvalidInstruction Code = iota
	InvalidAccountOwner
	InvalidAccountData
	InsufficientFunds
	AccountNotInitialized
	AccountAlreadyInitialized
	InvalidMint
	InvalidTokenAccount
	InvalidStakeAccount
	StakeAccountNotFound
	InvalidStakePeriod
	StakeNotMature
	Unauthorized
	InvalidAdmin
	MathOverflow
	InvalidAmount
	StakePeriodTooShort
	StakePeriodTooLong
	RewardCalculationFailed
	StakeLocked
	TokenPaused
	AccountBlacklisted
	BlacklistFull
	AccountBorrowFailed
)

var codeMessages = [...]string{
	InvalidInstruction:        "invalid instruction",
	InvalidAccountOwner:       "invalid account owner",
	InvalidAccountData:        "invalid account data",
	InsufficientFunds:         "insufficient funds",
	AccountNotInitialized:     "account not initialized",
	AccountAlreadyInitialized: "account already initialized",
	InvalidMint:               "invalid mint",
	InvalidTokenAccount:       "invalid token account",
	InvalidStakeAccount:       "invalid stake account",
	StakeAccountNotFound:      "stake account not found",
	InvalidStakePeriod:        "invalid stake period",
	StakeNotMature:            "stake not mature",
	Unauthorized:              "unauthorized",
	InvalidAdmin:              "invalid admin",
	MathOverflow:              "math overflow",
	InvalidAmount:             "invalid amount",
	StakePeriodTooShort:       "stake period too short",
	StakePeriodTooLong:        "stake period too long",
	RewardCalculationFailed:   "reward calculation failed",
	StakeLocked:               "stake locked",
	TokenPaused:               "token paused",
	AccountBlacklisted:        "account blacklisted",
	BlacklistFull:             "blacklist full",
	AccountBorrowFailed:       "account borrow failed",
}

func (c Code) String() string {
	if int(c) < len(codeMessages) {
		return codeMessages[c]
	}
	return fmt.Sprintf("unknown error %d", uint32(c))
}

// ParseCode resolves a code from its message, e.g. "stake not mature".
func ParseCode(s string) (Code, bool) {
	for i, msg := range codeMessages {
		if msg == s {
			return Code(i), true
		}
	}
	return 0, false
}

// ErrRevert is the error an instruction aborts with.
type ErrRevert struct {
	code Code
}

func New(code Code) *ErrRevert {
	return &ErrRevert{code: code}
}

func (e *ErrRevert) Error() string {
	return e.code.String()
}

func (e *ErrRevert) Code() Code {
	return e.code
}

// Is reports whether target carries the same code, so wrapped reverts
// match the package level sentinels.
func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	return ok && t != nil && t.code == e.code
}

var (
	ErrInvalidInstruction        = New(InvalidInstruction)
	ErrInvalidAccountOwner       = New(InvalidAccountOwner)
	ErrInvalidAccountData        = New(InvalidAccountData)
	ErrInsufficientFunds         = New(InsufficientFunds)
	ErrAccountNotInitialized     = New(AccountNotInitialized)
	ErrAccountAlreadyInitialized = New(AccountAlreadyInitialized)
	ErrInvalidMint               = New(InvalidMint)
	ErrInvalidTokenAccount       = New(InvalidTokenAccount)
	ErrInvalidStakeAccount       = New(InvalidStakeAccount)
	ErrStakeAccountNotFound      = New(StakeAccountNotFound)
	ErrInvalidStakePeriod        = New(InvalidStakePeriod)
	ErrStakeNotMature            = New(StakeNotMature)
	ErrUnauthorized              = New(Unauthorized)
	ErrInvalidAdmin              = New(InvalidAdmin)
	ErrMathOverflow              = New(MathOverflow)
	ErrInvalidAmount             = New(InvalidAmount)
	ErrStakePeriodTooShort       = New(StakePeriodTooShort)
	ErrStakePeriodTooLong        = New(StakePeriodTooLong)
	ErrRewardCalculationFailed   = New(RewardCalculationFailed)
	ErrStakeLocked               = New(StakeLocked)
	ErrTokenPaused               = New(TokenPaused)
	ErrAccountBlacklisted        = New(AccountBlacklisted)
	ErrBlacklistFull             = New(BlacklistFull)
	ErrAccountBorrowFailed       = New(AccountBorrowFailed)
)

// CodeOf extracts the revert code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	var re *ErrRevert
	if errors.As(err, &re) && re != nil {
		return re.code, true
	}
	return 0, false
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	_, ok = CodeOf(e)
	return ok
}
