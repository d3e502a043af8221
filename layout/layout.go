// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package layout reads and writes the little-endian fixed layouts shared by
// instructions and account records. Both helpers keep the first error and
// turn every later call into a no-op, so field lists read top to bottom.
package layout

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// Reader wraps a bin.Decoder with a sticky error.
type Reader struct {
	dec *bin.Decoder
	err error
}

func NewReader(dec *bin.Decoder) *Reader {
	return &Reader{dec: dec}
}

func (r *Reader) Err() error { return r.err }

// Remaining returns the count of unread bytes.
func (r *Reader) Remaining() int { return r.dec.Remaining() }

// Fail records err unless an earlier error is already held.
func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) fail(err error, what string) {
	if r.err == nil {
		r.err = errors.Wrapf(err, "read %s", what)
	}
}

func (r *Reader) U8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadByte()
	if err != nil {
		r.fail(err, "u8")
	}
	return v
}

func (r *Reader) U16() uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint16(bin.LE)
	if err != nil {
		r.fail(err, "u16")
	}
	return v
}

func (r *Reader) U32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint32(bin.LE)
	if err != nil {
		r.fail(err, "u32")
	}
	return v
}

func (r *Reader) U64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint64(bin.LE)
	if err != nil {
		r.fail(err, "u64")
	}
	return v
}

// Flag reads a bool byte the lenient way: any non-zero byte is true.
func (r *Reader) Flag() bool {
	return r.U8() != 0
}

// Bool reads a canonical bool byte, rejecting anything but 0 and 1.
func (r *Reader) Bool() bool {
	b := r.U8()
	if r.err == nil && b > 1 {
		r.err = errors.Errorf("read bool: invalid byte %d", b)
	}
	return b == 1
}

func (r *Reader) PublicKey() (key solana.PublicKey) {
	if r.err != nil {
		return
	}
	b, err := r.dec.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		r.fail(err, "public key")
		return
	}
	copy(key[:], b)
	return
}

// Len reads a u32 element count and checks that count elements of elemSize
// bytes can still be read, so hostile counts never drive an allocation.
func (r *Reader) Len(elemSize int) int {
	n := r.U32()
	if r.err != nil {
		return 0
	}
	if uint64(n)*uint64(elemSize) > uint64(r.dec.Remaining()) {
		r.err = errors.Errorf("read length: %d elements of %d bytes exceed %d remaining", n, elemSize, r.dec.Remaining())
		return 0
	}
	return int(n)
}

// Writer wraps a bin.Encoder with a sticky error.
type Writer struct {
	enc *bin.Encoder
	err error
}

func NewWriter(enc *bin.Encoder) *Writer {
	return &Writer{enc: enc}
}

func (w *Writer) Err() error { return w.err }

// Fail records err unless an earlier error is already held. Later writes
// are dropped.
func (w *Writer) Fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) fail(err error, what string) {
	if w.err == nil && err != nil {
		w.err = errors.Wrapf(err, "write %s", what)
	}
}

func (w *Writer) U8(v uint8) {
	if w.err == nil {
		w.fail(w.enc.WriteByte(v), "u8")
	}
}

func (w *Writer) U16(v uint16) {
	if w.err == nil {
		w.fail(w.enc.WriteUint16(v, bin.LE), "u16")
	}
}

func (w *Writer) U32(v uint32) {
	if w.err == nil {
		w.fail(w.enc.WriteUint32(v, bin.LE), "u32")
	}
}

func (w *Writer) U64(v uint64) {
	if w.err == nil {
		w.fail(w.enc.WriteUint64(v, bin.LE), "u64")
	}
}

func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

func (w *Writer) PublicKey(key solana.PublicKey) {
	if w.err == nil {
		w.fail(w.enc.WriteBytes(key[:], false), "public key")
	}
}
