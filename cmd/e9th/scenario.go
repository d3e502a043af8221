// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/bank"
	"github.com/VltrnOne/E9th/builtin/reverts"
	"github.com/VltrnOne/E9th/e9th"
	"github.com/VltrnOne/E9th/instruction"
	"github.com/VltrnOne/E9th/processor"
	"github.com/VltrnOne/E9th/xenv"
)

// Scenario is a replayable script of accounts and instructions.
type Scenario struct {
	Program  *keyArg `yaml:"program"`
	Accounts []struct {
		Key      keyArg  `yaml:"key"`
		Owner    *keyArg `yaml:"owner"`
		Lamports uint64  `yaml:"lamports"`
		Data     string  `yaml:"data"`
	} `yaml:"accounts"`
	Mints []struct {
		Key       keyArg `yaml:"key"`
		Authority keyArg `yaml:"authority"`
	} `yaml:"mints"`
	TokenAccounts []struct {
		Key    keyArg `yaml:"key"`
		Mint   keyArg `yaml:"mint"`
		Owner  keyArg `yaml:"owner"`
		Amount uint64 `yaml:"amount"`
	} `yaml:"token_accounts"`
	Steps []Step `yaml:"steps"`
}

// Step runs one instruction. Epoch and Timestamp stick for later steps.
type Step struct {
	Epoch       *uint64   `yaml:"epoch"`
	Timestamp   *uint64   `yaml:"timestamp"`
	Instruction string    `yaml:"instruction"`
	Args        yaml.Node `yaml:"args"`
	Accounts    []string  `yaml:"accounts"`
	ExpectError string    `yaml:"expect_error"`
}

// StepResult reports how a step ended.
type StepResult struct {
	Instruction string `yaml:"instruction"`
	Outcome     string `yaml:"outcome"`
	Error       string `yaml:"error,omitempty"`
}

// AccountDump is the final state of an account.
type AccountDump struct {
	Key      string `yaml:"key"`
	Owner    string `yaml:"owner"`
	Lamports uint64 `yaml:"lamports"`
	Kind     string `yaml:"kind,omitempty"`
	Data     string `yaml:"data"`
}

// TokenDump is the final balance of a token account.
type TokenDump struct {
	Key    string `yaml:"key"`
	Mint   string `yaml:"mint"`
	Amount uint64 `yaml:"amount"`
}

// Report is what replay prints.
type Report struct {
	Steps    []StepResult  `yaml:"steps"`
	Accounts []AccountDump `yaml:"accounts"`
	Tokens   []TokenDump   `yaml:"tokens"`
}

// LoadScenario parses a YAML scenario.
func LoadScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "parse scenario")
	}
	return &s, nil
}

// Replay runs s against b. It stops at the first step whose outcome
// differs from the expected one.
func (s *Scenario) Replay(b *bank.Bank) (*Report, error) {
	program := e9th.ProgramID
	if s.Program != nil {
		program = solana.PublicKey(*s.Program)
	}
	for _, a := range s.Accounts {
		owner := solana.SystemProgramID
		if a.Owner != nil {
			owner = solana.PublicKey(*a.Owner)
		}
		data, err := hex.DecodeString(a.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "account %v data", solana.PublicKey(a.Key))
		}
		if err := b.Put(solana.PublicKey(a.Key), &bank.Record{Owner: owner, Lamports: a.Lamports, Data: data}); err != nil {
			return nil, err
		}
	}
	ledger := b.Ledger()
	for _, m := range s.Mints {
		if err := ledger.CreateMint(solana.PublicKey(m.Key), solana.PublicKey(m.Authority)); err != nil {
			return nil, err
		}
	}
	for _, t := range s.TokenAccounts {
		key, mint := solana.PublicKey(t.Key), solana.PublicKey(t.Mint)
		if err := ledger.CreateAccount(key, mint, solana.PublicKey(t.Owner)); err != nil {
			return nil, err
		}
		if t.Amount > 0 {
			authority, err := mintAuthority(b, mint)
			if err != nil {
				return nil, err
			}
			if err := ledger.MintTo(mint, key, authority, t.Amount); err != nil {
				return nil, err
			}
		}
	}
	if err := b.Commit(); err != nil {
		return nil, err
	}

	clock := &xenv.FixedClock{}
	proc := processor.New(xenv.New(program, clock, xenv.DefaultRent(), xenv.SystemProvisioner{}, ledger))

	report := &Report{}
	for i, step := range s.Steps {
		if step.Epoch != nil {
			clock.EpochValue = *step.Epoch
		}
		if step.Timestamp != nil {
			clock.TimestampValue = *step.Timestamp
		}
		result, err := runStep(b, proc, &step)
		if err != nil {
			return report, errors.Wrapf(err, "step %d", i)
		}
		report.Steps = append(report.Steps, result)
		if want := expectedOutcome(step.ExpectError); result.Outcome != want {
			return report, errors.Errorf("step %d %s: outcome %s, want %s", i, step.Instruction, result.Outcome, want)
		}
	}
	if err := dump(b, report); err != nil {
		return report, err
	}
	return report, nil
}

func expectedOutcome(expect string) string {
	if expect == "" {
		return "ok"
	}
	return expect
}

func mintAuthority(b *bank.Bank, mint solana.PublicKey) (solana.PublicKey, error) {
	for _, m := range b.Ledger().Mints() {
		if m.Key == mint {
			return m.Authority, nil
		}
	}
	return solana.PublicKey{}, errors.Errorf("unknown mint %v", mint)
}

func runStep(b *bank.Bank, proc *processor.Processor, step *Step) (StepResult, error) {
	ins, err := buildInstruction(step.Instruction, &step.Args)
	if err != nil {
		return StepResult{}, err
	}
	metas, err := parseMetas(step.Accounts)
	if err != nil {
		return StepResult{}, err
	}
	err = b.Execute(metas, func(accounts []account.Info) error {
		return proc.Execute(accounts, ins)
	})
	result := StepResult{Instruction: ins.Name(), Outcome: "ok"}
	if err != nil {
		result.Outcome = "error"
		if code, ok := reverts.CodeOf(err); ok {
			result.Outcome = code.String()
		}
		result.Error = err.Error()
	}
	return result, nil
}

func dump(b *bank.Bank, report *Report) error {
	keys, err := b.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		r, err := b.Get(key)
		if err != nil {
			return err
		}
		d := AccountDump{
			Key:      key.String(),
			Owner:    r.Owner.String(),
			Lamports: r.Lamports,
			Data:     hex.EncodeToString(r.Data),
		}
		if kind, ok := kindBySize(len(r.Data)); ok && len(r.Data) > 0 {
			d.Kind = kind
		}
		report.Accounts = append(report.Accounts, d)
	}
	for _, t := range b.Ledger().Accounts() {
		report.Tokens = append(report.Tokens, TokenDump{Key: t.Key.String(), Mint: t.Mint.String(), Amount: t.Amount})
	}
	return nil
}

// Print writes the report as YAML.
func (r *Report) Print(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func (r StepResult) String() string {
	if r.Error == "" {
		return fmt.Sprintf("%s: %s", r.Instruction, r.Outcome)
	}
	return fmt.Sprintf("%s: %s (%s)", r.Instruction, r.Outcome, r.Error)
}

// instructionName is used by decode to label payloads.
func instructionName(ins instruction.Instruction) string {
	return fmt.Sprintf("%v/%s", ins.Dialect(), ins.Name())
}
