// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenledger

import (
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/xenv"
)

// Invoker executes a cross-program instruction on behalf of the program.
type Invoker interface {
	Invoke(ix solana.Instruction) error
}

// SPL turns ledger operations into SPL token program instructions and
// hands them to an Invoker.
type SPL struct {
	invoker Invoker
}

var _ xenv.TokenLedger = (*SPL)(nil)

func NewSPL(invoker Invoker) *SPL {
	return &SPL{invoker: invoker}
}

func (s *SPL) invoke(b interface {
	ValidateAndBuild() (*token.Instruction, error)
}) error {
	ix, err := b.ValidateAndBuild()
	if err != nil {
		return errors.Wrap(err, "build token instruction")
	}
	return s.invoker.Invoke(ix)
}

func (s *SPL) MintTo(mint, destination, authority solana.PublicKey, amount uint64) error {
	return s.invoke(token.NewMintToInstruction(amount, mint, destination, authority, nil))
}

func (s *SPL) Burn(source, mint, authority solana.PublicKey, amount uint64) error {
	return s.invoke(token.NewBurnInstruction(amount, source, mint, authority, nil))
}

func (s *SPL) Transfer(source, destination, authority solana.PublicKey, amount uint64) error {
	return s.invoke(token.NewTransferInstruction(amount, source, destination, authority, nil))
}

// Invoke executes an SPL token instruction against the ledger.
func (m *Memory) Invoke(ix solana.Instruction) error {
	if ix.ProgramID() != solana.TokenProgramID {
		return errors.Errorf("unsupported program %v", ix.ProgramID())
	}
	data, err := ix.Data()
	if err != nil {
		return errors.Wrap(err, "instruction data")
	}
	decoded, err := token.DecodeInstruction(ix.Accounts(), data)
	if err != nil {
		return errors.Wrap(err, "decode token instruction")
	}
	switch impl := decoded.Impl.(type) {
	case *token.MintTo:
		return m.MintTo(impl.GetMintAccount().PublicKey, impl.GetDestinationAccount().PublicKey, impl.GetAuthorityAccount().PublicKey, *impl.Amount)
	case *token.Burn:
		return m.Burn(impl.GetSourceAccount().PublicKey, impl.GetMintAccount().PublicKey, impl.GetOwnerAccount().PublicKey, *impl.Amount)
	case *token.Transfer:
		return m.Transfer(impl.GetSourceAccount().PublicKey, impl.GetDestinationAccount().PublicKey, impl.GetOwnerAccount().PublicKey, *impl.Amount)
	}
	return errors.Errorf("unsupported token instruction %T", decoded.Impl)
}

// Recorder is an Invoker keeping every instruction it receives, optionally
// forwarding it to another Invoker.
type Recorder struct {
	mu   sync.Mutex
	next Invoker
	ixs  []solana.Instruction
}

func NewRecorder(next Invoker) *Recorder {
	return &Recorder{next: next}
}

func (r *Recorder) Invoke(ix solana.Instruction) error {
	if r.next != nil {
		if err := r.next.Invoke(ix); err != nil {
			return err
		}
	}
	r.mu.Lock()
	r.ixs = append(r.ixs, ix)
	r.mu.Unlock()
	return nil
}

// Instructions returns the recorded instructions.
func (r *Recorder) Instructions() []solana.Instruction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]solana.Instruction(nil), r.ixs...)
}
