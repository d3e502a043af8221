// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package instruction implements the two wire dialects the program accepts.
//
// A payload is one opcode byte followed by little-endian fields. The
// current dialect covers the enhanced config operations; the legacy
// dialect covers the single-admin ledger. Decoding is strict: a payload
// must be consumed exactly, which keeps the two opcode spaces disjoint.
package instruction

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/builtin/reverts"
	"github.com/VltrnOne/E9th/layout"
)

// Dialect is an instruction encoding generation.
type Dialect uint8

const (
	Current Dialect = iota
	Legacy
)

func (d Dialect) String() string {
	switch d {
	case Current:
		return "current"
	case Legacy:
		return "legacy"
	}
	return "unknown"
}

// Instruction is a decoded command. The set of implementations is closed.
type Instruction interface {
	Dialect() Dialect
	// Opcode is the leading byte within the instruction's dialect.
	Opcode() uint8
	Name() string

	marshal(w *layout.Writer)
	unmarshal(r *layout.Reader)
}

var (
	currentOps = [...]func() Instruction{
		func() Instruction { return &Initialize{} },
		func() Instruction { return &SetPause{} },
		func() Instruction { return &ModifyBlacklist{} },
		func() Instruction { return &Transfer{} },
		func() Instruction { return &Airdrop{} },
		func() Instruction { return &Stake{} },
		func() Instruction { return &Unstake{} },
		func() Instruction { return &ClaimRewards{} },
	}
	legacyOps = [...]func() Instruction{
		func() Instruction { return &LegacyInitialize{} },
		func() Instruction { return &LegacyMint{} },
		func() Instruction { return &LegacyBurn{} },
		func() Instruction { return &LegacyStake{} },
		func() Instruction { return &LegacyUnstake{} },
		func() Instruction { return &LegacyClaimRewards{} },
		func() Instruction { return &LegacyUpdateSettings{} },
		func() Instruction { return &LegacyTransferAdmin{} },
	}
)

func decode(data []byte, ops []func() Instruction, dialect Dialect) (Instruction, error) {
	if len(data) == 0 {
		return nil, errors.Wrapf(reverts.ErrInvalidInstruction, "%v: empty payload", dialect)
	}
	if int(data[0]) >= len(ops) {
		return nil, errors.Wrapf(reverts.ErrInvalidInstruction, "%v: unknown opcode %d", dialect, data[0])
	}
	ins := ops[data[0]]()
	r := layout.NewReader(bin.NewBinDecoder(data[1:]))
	ins.unmarshal(r)
	if err := r.Err(); err != nil {
		return nil, errors.Wrapf(reverts.ErrInvalidInstruction, "%v %s: %v", dialect, ins.Name(), err)
	}
	if r.Remaining() != 0 {
		return nil, errors.Wrapf(reverts.ErrInvalidInstruction, "%v %s: %d trailing bytes", dialect, ins.Name(), r.Remaining())
	}
	return ins, nil
}

// DecodeCurrent decodes a current dialect payload.
func DecodeCurrent(data []byte) (Instruction, error) {
	return decode(data, currentOps[:], Current)
}

// DecodeLegacy decodes a legacy dialect payload.
func DecodeLegacy(data []byte) (Instruction, error) {
	return decode(data, legacyOps[:], Legacy)
}

// Decode tries the current dialect first and falls back to the legacy one.
func Decode(data []byte) (Instruction, error) {
	ins, err := DecodeCurrent(data)
	if err == nil {
		return ins, nil
	}
	ins, legacyErr := DecodeLegacy(data)
	if legacyErr == nil {
		return ins, nil
	}
	return nil, errors.Wrapf(reverts.ErrInvalidInstruction, "undecodable payload [%v] [%v]", err, legacyErr)
}

func encode(ins Instruction) ([]byte, error) {
	var buf bytes.Buffer
	w := layout.NewWriter(bin.NewBinEncoder(&buf))
	w.U8(ins.Opcode())
	ins.marshal(w)
	if err := w.Err(); err != nil {
		return nil, errors.Wrapf(reverts.ErrInvalidInstruction, "encode %s: %v", ins.Name(), err)
	}
	return buf.Bytes(), nil
}

// EncodeCurrent encodes a current dialect instruction. Legacy
// instructions are handed over to EncodeLegacy.
func EncodeCurrent(ins Instruction) ([]byte, error) {
	if ins.Dialect() == Legacy {
		return EncodeLegacy(ins)
	}
	return encode(ins)
}

// EncodeLegacy encodes a legacy dialect instruction.
func EncodeLegacy(ins Instruction) ([]byte, error) {
	if ins.Dialect() != Legacy {
		return nil, errors.Wrapf(reverts.ErrInvalidInstruction, "%s is not a legacy instruction", ins.Name())
	}
	return encode(ins)
}

// Encode encodes ins in its own dialect.
func Encode(ins Instruction) ([]byte, error) {
	return EncodeCurrent(ins)
}
